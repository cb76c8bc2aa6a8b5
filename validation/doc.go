// Package validation checks request structs with go-playground/validator
// struct tags and reports failures as AppErrors.
//
//	type GenerateRequest struct {
//	    Transcript *string `json:"transcript" validate:"required"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    server.RespondWithError(c, err)
//	}
package validation
