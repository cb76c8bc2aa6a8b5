package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/kbukum/oasisdoc/diarization"
	"github.com/kbukum/oasisdoc/llm"
	_ "github.com/kbukum/oasisdoc/llm/openai"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/oasis"
	"github.com/kbukum/oasisdoc/observability"
	"github.com/kbukum/oasisdoc/provider"
	"github.com/kbukum/oasisdoc/resilience"
	"github.com/kbukum/oasisdoc/transcription"
	"github.com/kbukum/oasisdoc/transcription/whisper"
	"github.com/kbukum/oasisdoc/util"
)

type transcriptionRR = provider.RequestResponse[transcription.Request, *transcription.Response]

// deps is the wired object graph shared by serve and generate.
type deps struct {
	metrics       *observability.Metrics
	llm           *llm.Adapter
	whisper       *whisper.Provider
	transcription transcriptionRR
	service       *oasis.Service
}

func buildDeps(cfg *Config, log *logger.Logger) (*deps, error) {
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	registry, err := oasis.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("element registry: %w", err)
	}

	adapter, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("llm: api key is required in production")
		}
		log.Warn("No completion API key configured; set LLM_API_KEY or OPENAI_API_KEY")
	}
	// Queueing for a slot happens outside the per-call timeout.
	completions := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          adapter.Name(),
		MaxConcurrent: cfg.Extraction.MaxConcurrentCalls,
	})
	completer := provider.Chain(
		provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](log),
		provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse](cfg.Name),
		provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics),
		provider.WithBulkhead[llm.CompletionRequest, llm.CompletionResponse](completions),
		provider.WithTimeout[llm.CompletionRequest, llm.CompletionResponse](cfg.Extraction.Timeout),
	)(adapter)

	wp, err := whisper.NewProvider(cfg.Transcription)
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}
	transcriber := provider.Chain(
		provider.WithLogging[transcription.Request, *transcription.Response](log),
		provider.WithTracing[transcription.Request, *transcription.Response](cfg.Name),
		provider.WithMetrics[transcription.Request, *transcription.Response](metrics),
	)(transcription.AsRequestResponse(wp))

	segmenter := diarization.New(diarization.Config{PatientCues: cfg.Extraction.PatientCues})
	pipeline := oasis.NewPipeline(registry,
		oasis.NewExtractor(completer, cfg.Extraction.MaxTokens, log),
		oasis.WithSegmenter(segmenter),
		oasis.WithMetrics(metrics),
		oasis.WithLogger(log),
	)

	log.Info("Collaborators configured", logger.Fields(
		"llm_provider", adapter.Name(),
		"llm_base_url", cfg.LLM.BaseURL,
		"llm_model", adapter.Model(),
		"llm_api_key", util.MaskSecret(cfg.LLM.APIKey, 4),
		"transcription_url", cfg.Transcription.URL,
		"elements", registry.Len(),
	))

	return &deps{
		metrics:       metrics,
		llm:           adapter,
		whisper:       wp,
		transcription: transcriber,
		service:       oasis.NewService(pipeline, transcription.FromRequestResponse(transcriber), log),
	}, nil
}

// audioFileTranscriber turns the transcription chain into a path -> text
// provider for `generate --audio`.
func audioFileTranscriber(rr transcriptionRR) provider.RequestResponse[string, string] {
	return provider.Adapt(rr, "audio-file",
		func(_ context.Context, path string) (transcription.Request, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return transcription.Request{}, err
			}
			return transcription.Request{
				Data:        data,
				FileName:    filepath.Base(path),
				ContentType: mime.TypeByExtension(filepath.Ext(path)),
			}, nil
		},
		func(resp *transcription.Response) (string, error) {
			return resp.Text, nil
		},
	)
}
