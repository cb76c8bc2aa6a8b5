// Package openai implements the llm.Dialect for the OpenAI chat completions
// API. Importing it registers the "openai" dialect.
package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/kbukum/oasisdoc/llm"
)

// DialectName is the registry name of this dialect.
const DialectName = "openai"

// ErrNoChoices is returned when the response carries no completion choice.
var ErrNoChoices = errors.New("openai: response has no choices")

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm types to the /chat/completions wire format.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

func (d *Dialect) Name() string       { return DialectName }
func (d *Dialect) ChatPath() string   { return "/chat/completions" }
func (d *Dialect) HealthPath() string { return "/models" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      llm.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage llm.Usage `json:"usage"`
}

// BuildRequest maps a CompletionRequest to the chat completions body. The
// system prompt becomes the first message. Extra keys are merged into the
// top-level object without overriding the mapped fields.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if req.Model == "" {
		return nil, errors.New("openai: model is required")
	}

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, req.Messages...)

	body := chatRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != 0 {
		t := req.Temperature
		body.Temperature = &t
	}

	if len(req.Extra) == 0 {
		return body, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	extra := maps.Clone(req.Extra)
	maps.DeleteFunc(extra, func(k string, _ any) bool {
		_, taken := merged[k]
		return taken
	})
	maps.Copy(merged, extra)
	return merged, nil
}

// ParseResponse returns the first choice's message content.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}
