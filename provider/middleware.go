package provider

import "context"

// Middleware wraps a RequestResponse with cross-cutting behavior.
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes middlewares. The first one is outermost:
// Chain(a, b, c)(p) is a(b(c(p))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Interceptor is one Execute around next.
type Interceptor[I, O any] func(ctx context.Context, next RequestResponse[I, O], input I) (O, error)

// Intercept builds a Middleware from an Interceptor. The wrapped provider
// keeps the inner provider's name and availability.
func Intercept[I, O any](fn Interceptor[I, O]) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &intercepted[I, O]{inner: inner, fn: fn}
	}
}

type intercepted[I, O any] struct {
	inner RequestResponse[I, O]
	fn    Interceptor[I, O]
}

func (w *intercepted[I, O]) Name() string                         { return w.inner.Name() }
func (w *intercepted[I, O]) IsAvailable(ctx context.Context) bool { return w.inner.IsAvailable(ctx) }

func (w *intercepted[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return w.fn(ctx, w.inner, input)
}
