package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler. The server applies the stack around the
// whole mux, so it covers every route.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware with the first one outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, m := range slices.Backward(middlewares) {
			h = m(h)
		}
		return h
	}
}
