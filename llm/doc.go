// Package llm provides a config-driven completion client built on the
// httpclient package.
//
// Providers plug in through the [Dialect] interface, much like database/sql
// drivers. Import a dialect package for its side-effect registration and
// build an adapter from config:
//
//	import _ "github.com/kbukum/oasisdoc/llm/openai"
//
//	adapter, err := llm.New(llm.Config{Model: "gpt-4o"})
//	text, err := llm.Complete(ctx, adapter, system, user, 500)
//
// [Adapter] satisfies provider.RequestResponse, so it composes with the
// provider middleware chain.
package llm
