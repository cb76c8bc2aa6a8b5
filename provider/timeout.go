package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is wrapped into errors returned when WithTimeout's bound elapses.
var ErrTimeout = errors.New("provider: call timed out")

// WithTimeout bounds each call by d. A non-positive d returns the provider
// unchanged. Caller-side cancellation passes through; only the
// middleware's own deadline maps to ErrTimeout.
func WithTimeout[I, O any](d time.Duration) Middleware[I, O] {
	if d <= 0 {
		return func(inner RequestResponse[I, O]) RequestResponse[I, O] { return inner }
	}
	return Intercept(func(ctx context.Context, next RequestResponse[I, O], input I) (O, error) {
		callCtx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		output, err := next.Execute(callCtx, input)
		if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return output, fmt.Errorf("%w after %s: %w", ErrTimeout, d, err)
		}
		return output, err
	})
}
