package oasis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/oasisdoc/llm"
	"github.com/kbukum/oasisdoc/provider"
)

// scriptedCompleter answers each element by name and records the
// dependency context every prompt carried.
type scriptedCompleter struct {
	t       *testing.T
	replies map[string]string
	fail    map[string]error

	mu       sync.Mutex
	contexts map[string]map[string]map[string]any
	requests []llm.CompletionRequest
}

func newScripted(t *testing.T) *scriptedCompleter {
	return &scriptedCompleter{
		t:        t,
		replies:  map[string]string{},
		fail:     map[string]error{},
		contexts: map[string]map[string]map[string]any{},
	}
}

func (s *scriptedCompleter) completer() Completer {
	return provider.Func("scripted", s.execute)
}

func (s *scriptedCompleter) execute(_ context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	prompt := req.Messages[len(req.Messages)-1].Content
	name := elementName(prompt)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.contexts[name] = promptContext(s.t, prompt)
	s.mu.Unlock()

	if err := s.fail[name]; err != nil {
		return llm.CompletionResponse{}, err
	}
	reply, ok := s.replies[name]
	if !ok {
		reply = "{}"
	}
	return llm.CompletionResponse{Content: reply}, nil
}

func elementName(prompt string) string {
	const marker = "relevant to "
	i := strings.Index(prompt, marker)
	if i < 0 {
		return ""
	}
	rest := prompt[i+len(marker):]
	if j := strings.Index(rest, " ("); j >= 0 {
		return rest[:j]
	}
	return rest
}

func promptContext(t *testing.T, prompt string) map[string]map[string]any {
	t.Helper()
	const start, end = "Previous results for context: ", "\n\nRules:"
	i := strings.Index(prompt, start)
	j := strings.Index(prompt, end)
	if i < 0 || j < i {
		t.Fatalf("prompt has no context block:\n%s", prompt)
	}
	var ctx map[string]map[string]any
	if err := json.Unmarshal([]byte(prompt[i+len(start):j]), &ctx); err != nil {
		t.Fatalf("context block is not JSON: %v", err)
	}
	return ctx
}

var errUpstream = errors.New("upstream unavailable")

func testElement(id string, deps ...string) Element {
	return Element{
		ID:          id,
		Name:        "Element " + id,
		Description: "test element " + id,
		DependsOn:   deps,
		Display:     DisplayFormat{Type: DisplayText, Field: "value"},
		Shape:       Shape{Contract: `A JSON object with a "value" string`, Example: `{"value": "x"}`},
	}
}

func mustRegistry(t *testing.T, elements ...Element) *Registry {
	t.Helper()
	r, err := NewRegistry(elements)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}
