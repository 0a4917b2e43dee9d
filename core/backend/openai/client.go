// Package openai drives the OpenAI chat-completions and Whisper APIs
// for streaming generation, one-shot generation, and audio
// transcription.
package openai

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vnrtumu/VenkyAI/core/events"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	transcriptionsURL  = "https://api.openai.com/v1/audio/transcriptions"

	defaultModel   = "gpt-4o"
	whisperModel   = "whisper-1"
	requestTimeout = 120 * time.Second
)

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

type Client struct {
	apiKey string
	model  string

	httpClient *http.Client
	emitEvent  eventEmitter
}

type ClientOption func(*Client)

// WithModel overrides the default chat model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	client := &Client{
		apiKey: apiKey,
		model:  defaultModel,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   requestTimeout,
		},
		emitEvent: noopEventEmitter,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetEventEmitter wires the side channel that receives generation
// stream events. Passing nil restores the no-op emitter.
func (c *Client) SetEventEmitter(emitEvent func(events.Event)) {
	if c == nil {
		return
	}
	if emitEvent != nil {
		c.emitEvent = emitEvent
	} else {
		c.emitEvent = noopEventEmitter
	}
}
