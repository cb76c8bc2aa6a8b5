// Package server provides the HTTP server for oasisd: a Gin engine mounted
// under a root ServeMux and served with h2c.
//
// Every request passes through the middleware in server/middleware, outermost
// first: panic recovery, request id, request logging, CORS and the body size
// limit. Handlers reply with RespondOK, which wraps the payload as
// {"data": ...}, or RespondWithError, which writes the errors.AppError
// envelope.
//
// server/endpoint provides the /health and /info handlers.
package server
