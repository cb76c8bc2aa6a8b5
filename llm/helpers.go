package llm

import (
	"context"
	"strings"

	"github.com/kbukum/oasisdoc/provider"
)

// Complete sends system and user prompts and returns the text response.
// It accepts any RequestResponse so middleware-wrapped adapters work too.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string, maxTokens int) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: RoleUser, Content: user}},
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

const (
	fence    = "```"
	fenceTag = "json"
)

// StripFences removes a leading "```" fence (with an optional "json" tag in
// any case) and a trailing "```" fence from model output, then trims
// surrounding whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, fence); ok {
		if len(rest) >= len(fenceTag) && strings.EqualFold(rest[:len(fenceTag)], fenceTag) {
			rest = rest[len(fenceTag):]
		}
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), fence)
	return strings.TrimSpace(s)
}
