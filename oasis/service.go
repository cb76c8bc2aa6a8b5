package oasis

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/oasisdoc/errors"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/observability"
	"github.com/kbukum/oasisdoc/transcription"
)

// ErrNoTranscriber is returned by Transcribe when no backend is configured.
var ErrNoTranscriber = stderrors.New("no transcription backend configured")

// TranscriptionResult is an audio transcription split by speaker role.
type TranscriptionResult struct {
	Transcript  string      `json:"transcript"`
	Diarization Diarization `json:"diarization"`
}

// Diarization holds the per-role streams of a transcription.
type Diarization struct {
	Clinician string `json:"clinician"`
	Patient   string `json:"patient"`
}

// Service is the documentation use-case layer shared by the HTTP server and
// the CLI.
type Service struct {
	pipeline    *Pipeline
	transcriber transcription.Provider
	log         *logger.Logger
}

// NewService creates a service. transcriber may be nil, in which case
// Transcribe always fails.
func NewService(pipeline *Pipeline, transcriber transcription.Provider, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		pipeline:    pipeline,
		transcriber: transcriber,
		log:         log.WithComponent("documentation"),
	}
}

// GenerateDocumentation runs the pipeline over transcript.
func (s *Service) GenerateDocumentation(ctx context.Context, transcript string) *Result {
	return s.pipeline.Run(ctx, transcript)
}

// Elements returns the element catalogue in extraction order.
func (s *Service) Elements() []Element {
	return s.pipeline.registry.Elements()
}

// Transcribe converts audio to text and splits it by speaker role. Any
// failure is reported as a TRANSCRIPTION_FAILED AppError.
func (s *Service) Transcribe(ctx context.Context, req transcription.Request) (*TranscriptionResult, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscription)
	defer span.End()

	if s.transcriber == nil {
		observability.SetSpanError(ctx, ErrNoTranscriber)
		return nil, errors.TranscriptionFailed(ErrNoTranscriber)
	}

	resp, err := s.transcriber.Transcribe(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Error("transcription failed", logger.ErrorFields("transcribe", err))
		return nil, errors.TranscriptionFailed(err)
	}

	t := s.pipeline.segmenter.Segment(resp.Text)
	return &TranscriptionResult{
		Transcript:  resp.Text,
		Diarization: Diarization{Clinician: t.Clinician, Patient: t.Patient},
	}, nil
}
