// Package errors provides the structured error type used at the service
// boundary: machine-readable codes, HTTP status mapping, retryable
// detection and the JSON error envelope.
package errors
