package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/oasisdoc/errors"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/oasis"
	"github.com/kbukum/oasisdoc/server"
	"github.com/kbukum/oasisdoc/transcription"
	"github.com/kbukum/oasisdoc/util"
	"github.com/kbukum/oasisdoc/validation"
)

// Service is the subset of oasis.Service the handlers call.
type Service interface {
	GenerateDocumentation(ctx context.Context, transcript string) *oasis.Result
	Transcribe(ctx context.Context, req transcription.Request) (*oasis.TranscriptionResult, error)
	Elements() []oasis.Element
}

// GenerateRequest is the body of POST /generate_documentation. The field
// must be present but may be empty.
type GenerateRequest struct {
	Transcript *string `json:"transcript" validate:"required"`
}

// Handler serves the documentation routes.
type Handler struct {
	service Service
	log     *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(service Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{service: service, log: log.WithComponent("api")}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/generate_documentation", h.GenerateDocumentation)
	r.POST("/transcribe", h.Transcribe)
	r.GET("/elements", h.Elements)
}

// GenerateDocumentation runs the extraction pipeline over a transcript.
func (h *Handler) GenerateDocumentation(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, bindError(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result := h.service.GenerateDocumentation(c.Request.Context(), *req.Transcript)
	if len(result.Errors) > 0 {
		h.log.WithContext(c.Request.Context()).Warn("documentation generated with errors",
			logger.Fields("errors", len(result.Errors), "elements", len(result.Status)))
	}
	server.RespondOK(c, result)
}

// Transcribe converts an uploaded audio file to text split by speaker.
func (h *Handler) Transcribe(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			server.RespondWithError(c, err)
			return
		}
		server.RespondWithError(c, apperrors.MissingField("file"))
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		server.RespondWithError(c, apperrors.InvalidFormat("file", "audio/*"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer closeFile(f)

	result, err := h.service.Transcribe(c.Request.Context(), transcription.Request{
		Audio:       f,
		FileName:    util.SanitizeString(fh.Filename),
		ContentType: contentType,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

// Elements lists the element catalogue in extraction order.
func (h *Handler) Elements(c *gin.Context) {
	server.RespondOK(c, h.service.Elements())
}

func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err)
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
