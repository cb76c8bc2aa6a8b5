package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxBodyInMessage bounds how much of an error body lands in Error.Message.
const maxBodyInMessage = 256

// Kind classifies a failed call.
type Kind string

const (
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindRateLimit  Kind = "rate_limit"
	KindServer     Kind = "server"

	// KindRejected covers other 4xx replies and requests that could not be built.
	KindRejected Kind = "rejected"
)

// Error is a classified client error.
type Error struct {
	Kind       Kind
	StatusCode int // 0 when no reply was received

	// Message is a trimmed snippet of the reply body, or the transport error.
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("httpclient: ")
	b.WriteString(string(e.Kind))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil && e.StatusCode == 0 {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether repeating the call could succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnection, KindRateLimit, KindServer:
		return true
	}
	return false
}

func transportError(ctx context.Context, err error) *Error {
	kind := KindConnection
	if ctx.Err() != nil || isTimeout(err) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// statusError classifies a reply status. 2xx returns nil.
func statusError(status int, body []byte) *Error {
	var kind Kind
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status >= 400 && status < 500:
		kind = KindRejected
	default:
		kind = KindServer
	}
	return &Error{Kind: kind, StatusCode: status, Message: snippet(body), Body: body}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInMessage {
		s = s[:maxBodyInMessage] + "..."
	}
	return s
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsTimeout(err error) bool     { return kindOf(err) == KindTimeout }
func IsAuth(err error) bool        { return kindOf(err) == KindAuth }
func IsServerError(err error) bool { return kindOf(err) == KindServer }

// IsRetryable reports whether err is an *Error worth retrying.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
