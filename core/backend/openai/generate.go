package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vnrtumu/VenkyAI/core/backend"
)

type completionRequestBody struct {
	Model    string            `json:"model"`
	Messages []backend.Message `json:"messages"`
}

type completionChoice struct {
	Message backend.Message `json:"message"`
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
}

// Generate sends a one-shot chat-completions request with the system
// prompt composed from the generation context.
func (c *Client) Generate(ctx context.Context, question string, generationContext backend.Context) (backend.Response, error) {
	if c.apiKey == "" {
		return backend.Response{}, fmt.Errorf("openai api key not configured")
	}

	requestBodyBytes, err := json.Marshal(completionRequestBody{
		Model: c.model,
		Messages: []backend.Message{
			{Role: roleSystem, Content: backend.BuildSystemPrompt(generationContext)},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return backend.Response{}, fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatCompletionsURL, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return backend.Response{}, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return backend.Response{}, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return backend.Response{}, fmt.Errorf("openai api error (%s): %s", resp.Status, string(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return backend.Response{}, fmt.Errorf("failed to parse openai response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return backend.Response{}, fmt.Errorf("openai response contained no choices")
	}

	return backend.Response{
		Content:   completion.Choices[0].Message.Content,
		Model:     c.model,
		Provider:  "OpenAI",
		Timestamp: time.Now().UTC(),
	}, nil
}
