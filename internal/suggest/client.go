package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.anthropic.com"

// Client calls the Anthropic Messages API to generate itinerary text.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client

	Stats *LLMStats
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		model:     model,
		baseURL:   defaultBaseURL,
		maxTokens: 4096,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewLLMStats(time.Hour),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for an itinerary and returns its non-blank lines.
func (c *Client) Generate(ctx context.Context, req TripRequest) ([]string, error) {
	reqBody := anthropicRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
		System:      SystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildPrompt(req)},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.Stats.RecordFailure(time.Since(start).Milliseconds())
		return nil, fmt.Errorf("llm api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		c.Stats.RecordFailure(elapsed)
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.Stats.RecordFailure(elapsed)
	} else {
		c.Stats.Record(elapsed)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("llm error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	lines := ResponseLines(sb.String())
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty response from llm")
	}
	return lines, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:markdown|md|text)?\\s*(.*?)\\s*```$")

// ResponseLines unwraps a fenced response and splits it into lines,
// dropping blank ones.
func ResponseLines(text string) []string {
	text = strings.TrimSpace(text)
	if m := codeBlockRe.FindStringSubmatch(text); len(m) > 1 {
		text = m[1]
	}
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
