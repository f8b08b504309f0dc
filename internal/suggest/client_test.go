package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Generate(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"### Day 1: Arrival\n\n# Local Food\n- Tasca: petiscos\n"}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "test-model", WithBaseURL(srv.URL+"/"), WithMaxTokens(1500))
	defer c.Close()

	lines, err := c.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"### Day 1: Arrival", "# Local Food", "- Tasca: petiscos"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, lines)
	}
	if got.Model != "test-model" || got.MaxTokens != 1500 || got.System != SystemPrompt {
		t.Errorf("unexpected request: %+v", got)
	}
	if c.Model() != "test-model" {
		t.Errorf("expected model name to be reported")
	}
	if snap := c.Stats.Snapshot(); snap.Calls != 1 || snap.Failures != 0 {
		t.Errorf("expected one successful call recorded, got %+v", snap)
	}
}

func TestClient_GenerateRetryableStatus(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte(`{"error":{"type":"overloaded_error","message":"busy"}}`))
		}))
		c := NewClient("key", "m", WithBaseURL(srv.URL))
		_, err := c.Generate(context.Background(), validRequest())
		srv.Close()

		var retryErr *RetryableError
		if !errors.As(err, &retryErr) {
			t.Fatalf("status %d: expected RetryableError, got %v", code, err)
		}
		if retryErr.StatusCode != code {
			t.Errorf("expected status %d, got %d", code, retryErr.StatusCode)
		}
		if snap := c.Stats.Snapshot(); snap.Failures != 1 {
			t.Errorf("expected failure recorded, got %+v", snap)
		}
	}
}

func TestClient_GeneratePermanentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("key", "m", WithBaseURL(srv.URL)).Generate(context.Background(), validRequest())
	var retryErr *RetryableError
	if err == nil || errors.As(err, &retryErr) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
}

func TestClient_GenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"  \n \n"}]}`))
	}))
	defer srv.Close()

	if _, err := NewClient("key", "m", WithBaseURL(srv.URL)).Generate(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestResponseLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "### Day 1: A\n\n# Food\r\n- one", []string{"### Day 1: A", "# Food", "- one"}},
		{"fenced", "```markdown\n### Day 1: A\n- one\n```", []string{"### Day 1: A", "- one"}},
		{"blank", "\n   \n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResponseLines(tt.input)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
