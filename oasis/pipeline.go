package oasis

import (
	"context"
	"time"

	"github.com/kbukum/oasisdoc/diarization"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/observability"
)

// Pipeline walks the registry in order and extracts every element from one
// transcript. It holds no per-run state, so concurrent runs are safe.
type Pipeline struct {
	registry  *Registry
	segmenter *diarization.Segmenter
	extractor *Extractor
	metrics   *observability.Metrics
	log       *logger.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *diarization.Segmenter) PipelineOption {
	return func(p *Pipeline) { p.segmenter = s }
}

// WithMetrics records extraction metrics.
func WithMetrics(m *observability.Metrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *logger.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = l }
}

// NewPipeline creates a pipeline over registry using extractor.
func NewPipeline(registry *Registry, extractor *Extractor, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		registry:  registry,
		segmenter: diarization.New(diarization.Config{}),
		extractor: extractor,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("pipeline")
	return p
}

// Run extracts every registry element from transcript. It always returns a
// complete Result; element failures are recorded, never returned.
func (p *Pipeline) Run(ctx context.Context, transcript string) *Result {
	ctx, span := observability.StartSpan(ctx, observability.SpanDocumentation)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrElementCount, p.registry.Len())

	log := p.log.WithContext(ctx)
	combined := p.segmenter.Segment(transcript).Combined()

	start := time.Now()
	result := newResult(p.registry.Len())
	for _, el := range p.registry.elements {
		out := p.runElement(ctx, combined, el, dependencyContext(el, result))
		result.record(el.ID, out)
	}

	log.Info("documentation run finished", logger.Fields(
		"elements", p.registry.Len(),
		"failed", len(result.Errors),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return result
}

func (p *Pipeline) runElement(ctx context.Context, transcript string, el Element, deps map[string]map[string]any) Outcome {
	ctx, span := observability.StartSpan(ctx, observability.SpanElement)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrElementID, el.ID)

	start := time.Now()
	out := p.extractor.Extract(ctx, transcript, el, deps)
	elapsed := time.Since(start)

	observability.SetSpanAttribute(ctx, observability.AttrElementStatus, string(out.Status))
	p.metrics.RecordExtraction(ctx, el.ID, string(out.Status), elapsed)

	fields := logger.Fields(
		logger.FieldElementID, el.ID,
		logger.FieldStatus, string(out.Status),
		logger.FieldDuration, elapsed.Milliseconds(),
	)
	log := p.log.WithContext(ctx)
	if out.Status.Failed() {
		observability.SetSpanError(ctx, extractionError(out.Diagnostic))
		fields[logger.FieldError] = out.Diagnostic
		log.Warn("element extraction failed", fields)
	} else {
		log.Info("element extracted", fields)
	}
	return out
}

// dependencyContext holds the resolved outputs of el's declared
// dependencies and nothing else.
func dependencyContext(el Element, result *Result) map[string]map[string]any {
	deps := make(map[string]map[string]any, len(el.DependsOn))
	for id, v := range result.Elements {
		if v != nil && el.DependsOnID(id) {
			deps[id] = v
		}
	}
	return deps
}

type extractionError string

func (e extractionError) Error() string { return string(e) }
