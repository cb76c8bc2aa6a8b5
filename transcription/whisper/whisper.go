// Package whisper implements transcription.Provider against a
// faster-whisper HTTP sidecar.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kbukum/oasisdoc/httpclient"
	"github.com/kbukum/oasisdoc/transcription"
	"github.com/kbukum/oasisdoc/util"
)

// ProviderName is the name the provider reports.
const ProviderName = "whisper"

const defaultFileName = "audio.wav"

// ErrNoAudio is returned when a request carries no audio.
var ErrNoAudio = errors.New("whisper: request has no audio")

// Provider uploads audio to the sidecar's /transcribe endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a Whisper provider.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper: create http client: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the sidecar answers its health endpoint.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.StatusCode == http.StatusOK
}

// Transcribe sends the audio to the sidecar and returns the transcription.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	if req.Data == nil && req.Audio == nil {
		return nil, ErrNoAudio
	}

	model := util.Coalesce(req.Model, p.cfg.Model)
	lang := util.Coalesce(req.Language, p.cfg.Language)
	name := util.Coalesce(req.FileName, defaultFileName)

	body := &httpclient.MultipartBody{
		Fields: map[string]string{"model": model},
		Files: []httpclient.FileField{{
			FieldName:   "audio",
			FileName:    name,
			ContentType: req.ContentType,
			Data:        req.Data,
			Reader:      req.Audio,
		}},
	}
	if lang != "" {
		body.Fields["language"] = lang
	}

	resp, err := httpclient.PostMultipart[whisperResponse](ctx, p.client, "/transcribe", body)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	return toResponse(&resp.Data), nil
}

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func toResponse(resp *whisperResponse) *transcription.Response {
	segments := make([]transcription.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}

	var duration float64
	if n := len(resp.Segments); n > 0 {
		duration = resp.Segments[n-1].End
	}

	return &transcription.Response{
		Text:     resp.Text,
		Segments: segments,
		Duration: duration,
		Language: resp.Language,
	}
}
