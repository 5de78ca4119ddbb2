package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"goeda/internal/config"
	"goeda/internal/errors"
)

// StreamingClient talks to the inference service's chat-completions endpoint
// with streaming enabled and hands the line stream to an aggregator.
type StreamingClient struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewStreamingClient creates a client from AI configuration
func NewStreamingClient(cfg config.AIConfig) *StreamingClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &StreamingClient{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: timeout,
	}
}

// StreamCompletion sends the prompt and aggregates the streamed response.
// The sink receives the running accumulated text per content fragment.
// Transport-level failures (connection, HTTP status, timeout) return an
// error; malformed stream lines do not.
func (c *StreamingClient) StreamCompletion(ctx context.Context, prompt string, sink ProgressSink) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Messages []message `json:"messages"`
		Model    string    `json:"model"`
		Stream   bool      `json:"stream"`
	}

	raw, err := json.Marshal(reqBody{
		Messages: []message{{Role: "user", Content: prompt}},
		Model:    c.Model,
		Stream:   true,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := &http.Client{Timeout: c.Timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", errors.ExternalServiceError("inference", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.ExternalServiceError("inference",
			fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	aggregator := NewStreamAggregator(sink)
	if err := aggregator.Consume(resp.Body); err != nil {
		// Mid-stream transport failure: the error message replaces any
		// partial text, matching the documented failure semantics
		return "", errors.ExternalServiceError("inference", err)
	}
	return aggregator.Result(), nil
}
