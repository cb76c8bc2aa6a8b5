package errors

// ErrorResponse is the envelope every failed request returns:
//
//	{"error": {"code": "MISSING_FIELD", "message": "...", "retryable": false, "details": {...}}}
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// ToResponse wraps e in the error envelope. Cause and HTTPStatus are not
// serialized.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e}
}
