// Package provider defines the generic collaborator abstraction used for
// every outbound dependency: a RequestResponse[I, O] with a name, an
// availability check and one Execute call.
//
// Cross-cutting behavior is layered with Middleware and composed by Chain:
//
//	completer := provider.Chain(
//	    provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](log),
//	    provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse]("oasisdoc"),
//	    provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics),
//	    provider.WithBulkhead[llm.CompletionRequest, llm.CompletionResponse](bulkhead),
//	    provider.WithTimeout[llm.CompletionRequest, llm.CompletionResponse](60*time.Second),
//	)(adapter)
//
// Intercept turns a single around-call function into a Middleware. Adapt
// maps a backend provider's types onto domain types, and Func turns a plain
// function into a provider, which is how tests supply fakes.
package provider
