package provider

import (
	"context"
	"time"

	"github.com/kbukum/oasisdoc/observability"
)

// WithMetrics records call count, duration and errors per provider. A nil
// metrics records nothing.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return Intercept(func(ctx context.Context, next RequestResponse[I, O], input I) (O, error) {
		start := time.Now()
		output, err := next.Execute(ctx, input)

		status := "ok"
		if err != nil {
			status = "error"
			metrics.RecordError(ctx, "execute", next.Name())
		}
		metrics.RecordOperation(ctx, next.Name(), "execute", status, time.Since(start))
		return output, err
	})
}
