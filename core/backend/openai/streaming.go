package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/events"
)

const (
	chunkPrefix   = "data:"
	doneSentinel  = "[DONE]"
	roleSystem    = "system"
	streamEnabled = true
)

type streamRequestBody struct {
	Model    string            `json:"model"`
	Messages []backend.Message `json:"messages"`
	Stream   bool              `json:"stream"`
}

type streamDelta struct {
	Content *string `json:"content"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

// StreamChat sends a streaming chat-completions request. Each token is
// emitted as a generation event while it arrives; the assembled payload
// is emitted as the final event and returned.
func (c *Client) StreamChat(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai api key not configured")
	}

	apiMessages := make([]backend.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		apiMessages = append(apiMessages, backend.Message{Role: roleSystem, Content: systemPrompt})
	}
	apiMessages = append(apiMessages, messages...)

	requestBodyBytes, err := json.Marshal(streamRequestBody{
		Model:    c.model,
		Messages: apiMessages,
		Stream:   streamEnabled,
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatCompletionsURL, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return "", fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}

	c.emitEvent(events.NewGenerationStarted())

	var fullResponse strings.Builder
	finish := func() string {
		payload := fullResponse.String()
		c.emitEvent(events.NewGenerationFinal(payload))
		return payload
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, chunkPrefix) {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, chunkPrefix))
		if data == doneSentinel {
			return finish(), nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content != nil && *choice.Delta.Content != "" {
				fullResponse.WriteString(*choice.Delta.Content)
				c.emitEvent(events.NewGenerationToken(*choice.Delta.Content))
			}
			if choice.FinishReason != nil {
				return finish(), nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		payload := finish()
		return payload, fmt.Errorf("stream read failed: %w", err)
	}

	return finish(), nil
}
