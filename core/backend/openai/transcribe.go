package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe sends WAV audio to the Whisper API and returns the
// recognized text.
func (c *Client) Transcribe(ctx context.Context, audioWAV []byte) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai api key not configured")
	}

	var requestBody bytes.Buffer
	form := multipart.NewWriter(&requestBody)

	if err := form.WriteField("model", whisperModel); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := form.WriteField("language", "en"); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := form.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}

	filePart, err := form.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := filePart.Write(audioWAV); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transcriptionsURL, &requestBody)
	if err != nil {
		return "", fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("whisper api error (%s): %s", resp.Status, string(body))
	}

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse whisper response: %w", err)
	}

	return result.Text, nil
}
