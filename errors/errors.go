package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the service's error type. It carries everything needed to
// render the error envelope.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`

	// HTTPStatus is the status the envelope is sent with.
	HTTPStatus int `json:"-"`
	// Cause is logged but never sent to clients.
	Cause error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError whose retryability follows its code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// newWith is New plus alternating detail key-value pairs.
func newWith(code ErrorCode, status int, message string, kv ...any) *AppError {
	e := New(code, message, status)
	for i := 0; i+1 < len(kv); i += 2 {
		e.WithDetail(kv[i].(string), kv[i+1])
	}
	return e
}

func Timeout(operation string) *AppError {
	return newWith(ErrCodeTimeout, http.StatusGatewayTimeout,
		"The request took too long. Please try again.", "operation", operation)
}

// ServiceUnavailable reports a collaborator that is not ready.
func ServiceUnavailable(service string) *AppError {
	return newWith(ErrCodeServiceUnavailable, http.StatusServiceUnavailable,
		fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service), "service", service)
}

// InvalidInput reports a request that could not be decoded. An empty field
// leaves the detail out.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason, http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

func MissingField(field string) *AppError {
	return newWith(ErrCodeMissingField, http.StatusBadRequest,
		"Missing required field: "+field, "field", field)
}

func InvalidFormat(field, expectedFormat string) *AppError {
	return newWith(ErrCodeInvalidFormat, http.StatusBadRequest,
		fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		"field", field, "expected_format", expectedFormat)
}

// PayloadTooLarge reports a body over limit, given in display form ("25MB").
func PayloadTooLarge(limit string) *AppError {
	return newWith(ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Request body exceeds the %s limit.", limit), "limit", limit)
}

func NotFound(resource string) *AppError {
	return newWith(ErrCodeNotFound, http.StatusNotFound,
		fmt.Sprintf("The requested %s was not found.", resource), "resource", resource)
}

// TranscriptionFailed reports audio the transcription service rejected or
// could not be reached for.
func TranscriptionFailed(cause error) *AppError {
	msg := "Transcription failed"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return New(ErrCodeTranscriptionFailed, msg, http.StatusInternalServerError).WithCause(cause)
}

func ExternalServiceError(service string, cause error) *AppError {
	return newWith(ErrCodeExternalService, http.StatusBadGateway,
		fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		"service", service).WithCause(cause)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.",
		http.StatusInternalServerError).WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromError returns err as an AppError. Existing AppErrors pass through,
// context deadlines become Timeout and anything else becomes Internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout("request").WithCause(err)
	}
	return Internal(err)
}
