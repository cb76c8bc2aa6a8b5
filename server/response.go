package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/oasisdoc/errors"
	"github.com/kbukum/oasisdoc/util"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes err as the error envelope. AppErrors keep their
// status and code, oversized bodies become 413 and anything else goes
// through apperrors.FromError.
func RespondWithError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		err = apperrors.PayloadTooLarge(util.FormatSize(maxErr.Limit)).WithCause(err)
	}
	appErr := apperrors.FromError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
