package provider

import (
	"context"
	"time"

	"github.com/kbukum/oasisdoc/logger"
)

// WithLogging logs each call with the provider name and duration. Failures
// log at warn; callers decide whether they are fatal.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return Intercept(func(ctx context.Context, next RequestResponse[I, O], input I) (O, error) {
		start := time.Now()
		output, err := next.Execute(ctx, input)

		fields := logger.DurationFields("execute", time.Since(start))
		fields[logger.FieldProvider] = next.Name()
		if err != nil {
			fields[logger.FieldError] = err.Error()
			log.WithContext(ctx).Warn("provider execute failed", fields)
		} else {
			log.WithContext(ctx).Debug("provider execute ok", fields)
		}
		return output, err
	})
}
