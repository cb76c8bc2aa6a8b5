package provider

import (
	"context"

	"github.com/kbukum/oasisdoc/resilience"
)

// WithBulkhead runs each call inside b, queueing callers over its limit.
// A nil b returns the provider unchanged.
func WithBulkhead[I, O any](b *resilience.Bulkhead) Middleware[I, O] {
	if b == nil {
		return func(inner RequestResponse[I, O]) RequestResponse[I, O] { return inner }
	}
	return Intercept(func(ctx context.Context, next RequestResponse[I, O], input I) (O, error) {
		return resilience.ExecuteWithResult(ctx, b, func() (O, error) {
			return next.Execute(ctx, input)
		})
	})
}
