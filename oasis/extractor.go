package oasis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/oasisdoc/llm"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/provider"
)

// SystemPrompt is sent with every extraction request.
const SystemPrompt = "You are a medical documentation assistant that outputs only valid JSON, with no markdown or code fences."

// Completer is the completion collaborator.
type Completer = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// Extractor turns one element plus transcript into an Outcome.
type Extractor struct {
	completer Completer
	maxTokens int
	log       *logger.Logger
}

// NewExtractor creates an extractor. maxTokens <= 0 uses DefaultMaxTokens.
func NewExtractor(completer Completer, maxTokens int, log *logger.Logger) *Extractor {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{completer: completer, maxTokens: maxTokens, log: log.WithComponent("extractor")}
}

// Extract asks the model for el's fields. It never returns an error: every
// failure is folded into the Outcome.
func (x *Extractor) Extract(ctx context.Context, transcript string, el Element, deps map[string]map[string]any) Outcome {
	log := x.log.WithContext(ctx)

	prompt, err := BuildPrompt(transcript, el, deps)
	if err != nil {
		return CollaboratorFailed(fmt.Sprintf("Error processing element %s: %v", el.Name, err))
	}

	raw, err := llm.Complete(ctx, x.completer, SystemPrompt, prompt, x.maxTokens)
	if err != nil {
		return CollaboratorFailed(fmt.Sprintf("Error processing element %s: %v", el.Name, err))
	}
	log.Debug("raw completion", logger.Fields(logger.FieldElementID, el.ID, "raw", raw))

	out := parseReply(el, raw)
	if out.Status == StatusResolved {
		if extra := unknownKeys(el, out.Fields); len(extra) > 0 {
			log.Warn("reply carries undeclared fields", logger.Fields(
				logger.FieldElementID, el.ID,
				"fields", extra,
			))
		}
	}
	return out
}

func parseReply(el Element, raw string) Outcome {
	cleaned := llm.StripFences(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return ParseFailed(fmt.Sprintf("JSON parsing error for %s: %v, raw content: %s", el.Name, err, raw))
	}

	switch obj := v.(type) {
	case nil:
		return Insufficient()
	case map[string]any:
		if len(obj) == 0 {
			return Insufficient()
		}
		return Resolved(obj)
	default:
		return ParseFailed(fmt.Sprintf("JSON parsing error for %s: expected a JSON object, got %s, raw content: %s",
			el.Name, jsonKind(v), raw))
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func unknownKeys(el Element, fields map[string]any) []string {
	declared := el.Display.Keys()
	var extra []string
	for k := range fields {
		if !slices.Contains(declared, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return extra
}

// BuildPrompt renders the extraction request for el.
func BuildPrompt(transcript string, el Element, deps map[string]map[string]any) (string, error) {
	if deps == nil {
		deps = map[string]map[string]any{}
	}
	ctxJSON, err := json.MarshalIndent(deps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode dependency context: %w", err)
	}

	format := el.Shape.Contract
	if el.Shape.Example != "" {
		format += ", e.g., " + el.Shape.Example
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Extract information from the following transcript relevant to %s (%s):\n", el.Name, el.Description)
	fmt.Fprintf(&b, "Transcript: %s\n\n", transcript)
	fmt.Fprintf(&b, "Previous results for context: %s\n\n", ctxJSON)
	b.WriteString("Rules:\n")
	b.WriteString("- Extract only information explicitly present in the transcript. Do not infer or add data not mentioned.\n")
	fmt.Fprintf(&b, "- Return a valid JSON object matching the format: %s.\n", format)
	b.WriteString("- If there is insufficient information, return an empty object {}.\n")
	b.WriteString("- Output only JSON, with no markdown, code fences, or additional text.\n\n")
	b.WriteString("Examples:\n")
	b.WriteString(`- For Risk for Hospitalization: {"risk_factors": ["history of falls"]} or {}` + "\n")
	b.WriteString(`- For Vital Signs: {"heart_rate": 78, "blood_pressure": "118/72", "respiratory_rate": 14, "blood_sugar": 130} or {}` + "\n")
	b.WriteString("- For insufficient information: {}\n")
	return b.String(), nil
}
