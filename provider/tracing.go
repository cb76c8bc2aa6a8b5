package provider

import (
	"context"

	"github.com/kbukum/oasisdoc/observability"
)

// WithTracing wraps each call in a span named "{serviceName}.{provider}".
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return Intercept(func(ctx context.Context, next RequestResponse[I, O], input I) (O, error) {
		ctx, span := observability.StartSpan(ctx, serviceName+"."+next.Name())
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrServiceName, serviceName)
		observability.SetSpanAttribute(ctx, observability.AttrOperationName, next.Name())

		output, err := next.Execute(ctx, input)
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
		return output, err
	})
}
