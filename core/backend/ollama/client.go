// Package ollama drives a local Ollama server for one-shot chat
// generation.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vnrtumu/VenkyAI/core/backend"
)

const (
	defaultURL     = "http://localhost:11434"
	defaultModel   = "llama3"
	requestTimeout = 120 * time.Second
)

type Client struct {
	baseURL string
	model   string

	httpClient *http.Client
}

type ClientOption func(*Client)

// WithBaseURL overrides the default Ollama server address.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithModel overrides the default model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		baseURL: defaultURL,
		model:   defaultModel,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   requestTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type chatRequest struct {
	Model    string            `json:"model"`
	Messages []backend.Message `json:"messages"`
	Stream   bool              `json:"stream"`
}

type chatResponse struct {
	Message *backend.Message `json:"message"`
}

// Generate sends a non-streaming chat request with the system prompt
// composed from the generation context.
func (c *Client) Generate(ctx context.Context, question string, generationContext backend.Context) (backend.Response, error) {
	requestBodyBytes, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []backend.Message{
			{Role: "system", Content: backend.BuildSystemPrompt(generationContext)},
			{Role: "user", Content: question},
		},
		Stream: false,
	})
	if err != nil {
		return backend.Response{}, fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return backend.Response{}, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return backend.Response{}, fmt.Errorf("ollama request failed: %w (is Ollama running?)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return backend.Response{}, fmt.Errorf("ollama api error (%s): %s", resp.Status, string(body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return backend.Response{}, fmt.Errorf("failed to parse ollama response: %w", err)
	}

	content := "No response from Ollama"
	if chat.Message != nil {
		content = chat.Message.Content
	}

	return backend.Response{
		Content:   content,
		Model:     c.model,
		Provider:  "Ollama",
		Timestamp: time.Now().UTC(),
	}, nil
}
