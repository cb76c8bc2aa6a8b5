package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, cfg Config, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	if cfg.BaseURL == "" {
		cfg.BaseURL = srv.URL
	} else {
		cfg.BaseURL = srv.URL + cfg.BaseURL
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "http" {
		t.Errorf("default name = %q", c.Name())
	}
	if c.IsAvailable(context.Background()) {
		t.Error("client without base URL should not report available")
	}

	for _, bad := range []string{"ftp://llm.internal", "://nope"} {
		if _, err := New(Config{BaseURL: bad}); err == nil {
			t.Errorf("expected error for base url %q", bad)
		}
	}
}

func TestDoResolvesURLAndHeaders(t *testing.T) {
	c := newTestClient(t, Config{BaseURL: "/v1/", Headers: map[string]string{"X-Default": "d", "X-Both": "client"}},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/models" {
				t.Errorf("path = %q", r.URL.Path)
			}
			if r.Header.Get("X-Default") != "d" || r.Header.Get("X-Both") != "request" {
				t.Errorf("headers = %v", r.Header)
			}
			_, _ = w.Write([]byte("ok"))
		})

	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/models",
		Headers: map[string]string{"X-Both": "request"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != "ok" {
		t.Errorf("unexpected response %d %q", resp.StatusCode, resp.Body)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		req   map[string]string
		want  string
	}{
		{"configured", "sk-test", nil, "Bearer sk-test"},
		{"none", "", nil, ""},
		{"request overrides", "sk-test", map[string]string{"Authorization": "Bearer other"}, "Bearer other"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, Config{BearerToken: tc.token}, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != tc.want {
					t.Errorf("Authorization = %q, want %q", got, tc.want)
				}
			})
			if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/", Headers: tc.req}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPostJSON(t *testing.T) {
	type reply struct {
		Echo string `json:"echo"`
	}
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(reply{Echo: in["msg"]})
	})

	resp, err := PostJSON[reply](context.Background(), c, "/echo", map[string]string{"msg": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data.Echo != "hi" {
		t.Errorf("echo = %q", resp.Data.Echo)
	}
}

func TestGetJSON_DecodeError(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	_, err := GetJSON[map[string]any](context.Background(), c, "/")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestDoClassifiesStatus(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/"})
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if resp == nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected response alongside error, got %+v", resp)
	}
	if !IsServerError(err) || !IsRetryable(err) {
		t.Errorf("expected retryable server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected body snippet in message, got %v", err)
	}

	if _, err := GetJSON[map[string]any](context.Background(), c, "/"); !IsServerError(err) {
		t.Errorf("GetJSON should surface the status error, got %v", err)
	}
}

func TestDoTimeout(t *testing.T) {
	c := newTestClient(t, Config{}, func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) || !IsRetryable(err) {
		t.Fatalf("expected retryable timeout error, got %v", err)
	}
}

func TestDoConnectionError(t *testing.T) {
	c, _ := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Execute(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if kindOf(err) != KindConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestDoRejectsUnencodableBody(t *testing.T) {
	c, _ := New(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: func() {}})
	if kindOf(err) != KindRejected || IsRetryable(err) {
		t.Fatalf("expected non-retryable rejected error, got %v", err)
	}
}
