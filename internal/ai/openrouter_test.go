package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func chatServer(t *testing.T, statuses []int, headers []http.Header, reply string) (*ipv4Server, *int32) {
	t.Helper()
	var calls int32
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		i := int(atomic.AddInt32(&calls, 1)) - 1
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		if i < len(headers) {
			for k, vals := range headers[i] {
				for _, v := range vals {
					w.Header().Add(k, v)
				}
			}
		}
		w.WriteHeader(statuses[i])
		if statuses[i] >= 200 && statuses[i] < 300 {
			_ = json.NewEncoder(w).Encode(GenerateResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: reply}}}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "nope", "code": "some_code"}})
	}))
	return srv, &calls
}

func TestGenerateRetriesOn429(t *testing.T) {
	srv, calls := chatServer(t, []int{429, 200}, []http.Header{{"Retry-After": {"0"}}}, "0.4")
	c := NewClientWithBaseURL("test", 2*time.Second, 3, 10*time.Millisecond, 100*time.Millisecond, srv.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if resp.Text() != "0.4" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if n := atomic.LoadInt32(calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestGenerateSendsZeroTemperature(t *testing.T) {
	var body map[string]any
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(GenerateResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: "0"}}}})
	}))
	c := NewClientWithBaseURL("test", 2*time.Second, 1, 0, 0, srv.URL)
	req := GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}, Temperature: Float(0)}
	if _, err := c.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if v, ok := body["temperature"]; !ok || v != float64(0) {
		t.Fatalf("temperature 0 missing from request body: %v", body)
	}

	req.Temperature = nil
	if _, err := c.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, ok := body["temperature"]; ok {
		t.Fatalf("unset temperature should be omitted: %v", body)
	}
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	srv, calls := chatServer(t, []int{503}, nil, "")
	c := NewClientWithBaseURL("test", 2*time.Second, 2, time.Millisecond, 5*time.Millisecond, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if n := atomic.LoadInt32(calls); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestErrorIncludesRequestID(t *testing.T) {
	srv, calls := chatServer(t, []int{400}, []http.Header{{"X-Request-Id": {"req_test_123"}}}, "")
	c := NewClientWithBaseURL("test", 2*time.Second, 3, time.Millisecond, 5*time.Millisecond, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	var bre *BadRequestError
	if !errors.As(err, &bre) {
		t.Fatalf("expected BadRequestError, got %v", err)
	}
	if !strings.Contains(err.Error(), "req_test_123") {
		t.Fatalf("expected request id in error, got: %v", err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Fatalf("400 must not be retried, calls = %d", n)
	}
}

func TestAuthErrorAndMissingKey(t *testing.T) {
	srv, _ := chatServer(t, []int{401}, nil, "")
	c := NewClientWithBaseURL("bad", time.Second, 1, 0, 0, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Messages: []Message{{Role: "user", Content: "hi"}}})
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}

	_, err = NewClient("", 0, 0, 0, 0).Generate(context.Background(), GenerateRequest{Model: "m"})
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestNewRuntime(t *testing.T) {
	if _, err := NewRuntime("OpenRouter", RuntimeConfig{APIKey: "k"}); err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	rt, err := NewRuntime("ollama", RuntimeConfig{})
	if err != nil {
		t.Fatalf("ollama: %v", err)
	}
	if oc, ok := rt.(*OllamaClient); !ok || oc.host != "http://127.0.0.1:11434" {
		t.Fatalf("unexpected ollama runtime: %#v", rt)
	}
	if _, err := NewRuntime("gpt", RuntimeConfig{}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestParseRetryAfter(t *testing.T) {
	d, err := parseRetryAfter("2")
	if err != nil || d != 2*time.Second {
		t.Fatalf("got %v, %v", d, err)
	}
	if _, err := parseRetryAfter("soon"); err == nil {
		t.Fatalf("expected error")
	}
}
