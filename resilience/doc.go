// Package resilience bounds how much concurrent load the service puts on a
// collaborator.
//
// A Bulkhead caps in-flight calls; callers over the cap queue until a slot
// frees, their context ends or MaxWait elapses:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "openai-llm", MaxConcurrent: 4})
//	err := bh.Execute(ctx, func() error { return call(ctx) })
package resilience
