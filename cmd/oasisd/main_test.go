package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/oasis"
)

// fakeOpenAI answers chat completions with "{}" except for the vitals
// element, which gets a concrete reply.
type fakeOpenAI struct {
	mu      sync.Mutex
	auth    []string
	prompts []string
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	user := req.Messages[len(req.Messages)-1].Content

	f.mu.Lock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.prompts = append(f.prompts, user)
	f.mu.Unlock()

	content := "{}"
	if strings.Contains(user, "relevant to Vital Signs (") {
		content = "```json\n{\"pulse\": \"72\"}\n```"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":   "gpt-4o",
		"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": content}}},
	})
}

func writeConfig(t *testing.T, llmURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := "name: oasisd\nlogging:\n  level: error\n  format: json\nllm:\n  base_url: " + llmURL + "\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-from-env")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := loadConfig(writeConfig(t, "http://llm.internal/v1"), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.LLM.APIKey != "sk-from-env" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.LLM.BaseURL != "http://llm.internal/v1" || cfg.LLM.Model != "gpt-4o" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Extraction.MaxTokens != oasis.DefaultMaxTokens || cfg.Extraction.Timeout != oasis.DefaultTimeout ||
		cfg.Extraction.MaxConcurrentCalls != oasis.DefaultMaxConcurrentCalls {
		t.Errorf("extraction = %+v", cfg.Extraction)
	}
	if cfg.Observability.ServiceName != "oasisd" {
		t.Errorf("observability service = %q", cfg.Observability.ServiceName)
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := loadConfig("config.yml", "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("shipped config.yml does not validate: %v", err)
	}
	if cfg.Server.WriteTimeout != 6*time.Minute {
		t.Errorf("write timeout = %v", cfg.Server.WriteTimeout)
	}
	if diff := cmp.Diff([]string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins); diff != "" {
		t.Errorf("origins (-want +got):\n%s", diff)
	}
}

func TestGenerate(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	fake := &fakeOpenAI{}
	llm := httptest.NewServer(fake)
	defer llm.Close()

	out, err := execute(t, "Clinician checked pulse. Patient says they feel dizzy.",
		"generate", "--config", writeConfig(t, llm.URL))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var result oasis.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not a Result: %v (%s)", err, out)
	}
	if diff := cmp.Diff(map[string]any{"pulse": "72"}, result.Elements["vitals"]); diff != "" {
		t.Errorf("vitals (-want +got):\n%s", diff)
	}
	if result.Status["M1800"] != oasis.StatusInsufficient || result.Elements["M1800"] != nil {
		t.Errorf("M1800 = %v / %s", result.Elements["M1800"], result.Status["M1800"])
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors %v", result.Errors)
	}

	if len(fake.prompts) != 5 {
		t.Fatalf("expected one completion per element, got %d", len(fake.prompts))
	}
	if !strings.Contains(fake.prompts[0], "Patient says they feel dizzy.") {
		t.Errorf("transcript missing from prompt: %s", fake.prompts[0])
	}
	if fake.auth[0] != "Bearer sk-test" {
		t.Errorf("auth header = %q", fake.auth[0])
	}
}

func TestGenerate_FileAndAudioExclusive(t *testing.T) {
	_, err := execute(t, "", "generate", "--file", "a.txt", "--audio", "a.wav")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("expected exclusivity error, got %v", err)
	}
}

func TestElementsCommand(t *testing.T) {
	out, err := execute(t, "", "elements", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var elements []oasis.Element
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatal(err)
	}
	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		ids = append(ids, el.ID)
	}
	if diff := cmp.Diff([]string{"M1033", "M1800", "M1830", "vitals", "summary"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	table, err := execute(t, "", "elements")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table, "summary") || !strings.Contains(table, "M1033,M1800,M1830,vitals") {
		t.Errorf("table output:\n%s", table)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "oasisd ") {
		t.Errorf("version output = %q", out)
	}
}

func TestBuildDeps_APIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			cfg := &Config{}
			cfg.Name, cfg.Environment = serviceName, env
			cfg.ApplyDefaults()

			_, err := buildDeps(cfg, logger.NewNop())
			if wantErr := env == "production"; (err != nil) != wantErr {
				t.Errorf("buildDeps() error = %v, wantErr %v", err, wantErr)
			}
		})
	}
}
