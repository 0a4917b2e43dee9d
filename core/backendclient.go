package orchestration

import (
	"context"
	"fmt"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

var errBackendNotConfigured = fmt.Errorf("backend client not configured")

// backendClient wraps the configured backend command surface so that
// an unconfigured client degrades to well-defined failures instead of
// nil dereferences.
type backendClient struct {
	// client stores the configured backend implementation.
	client backend.Client
}

func newBackendClient(client backend.Client) *backendClient {
	return &backendClient{client: client}
}

func (b *backendClient) set(client backend.Client) {
	if b != nil {
		b.client = client
	}
}

func (b *backendClient) isConfigured() bool {
	return b != nil && b.client != nil
}

func (b *backendClient) CreateSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error) {
	if !b.isConfigured() {
		return sessions.Session{}, errBackendNotConfigured
	}

	return b.client.CreateSession(ctx, title, purpose, sessionContext)
}

func (b *backendClient) EndSession(ctx context.Context) error {
	if !b.isConfigured() {
		return errBackendNotConfigured
	}

	return b.client.EndSession(ctx)
}

func (b *backendClient) StartAudioCapture(ctx context.Context) error {
	if !b.isConfigured() {
		return errBackendNotConfigured
	}

	return b.client.StartAudioCapture(ctx)
}

func (b *backendClient) StopAudioCapture(ctx context.Context) error {
	if !b.isConfigured() {
		return nil
	}

	return b.client.StopAudioCapture(ctx)
}

func (b *backendClient) StartSystemAudioCapture(ctx context.Context) error {
	if !b.isConfigured() {
		return errBackendNotConfigured
	}

	return b.client.StartSystemAudioCapture(ctx)
}

func (b *backendClient) StopSystemAudioCapture(ctx context.Context) error {
	if !b.isConfigured() {
		return nil
	}

	return b.client.StopSystemAudioCapture(ctx)
}

func (b *backendClient) TranscribeAudio(ctx context.Context) (string, error) {
	if !b.isConfigured() {
		return "", errBackendNotConfigured
	}

	return b.client.TranscribeAudio(ctx)
}

func (b *backendClient) CaptureScreen(ctx context.Context) error {
	if !b.isConfigured() {
		return errBackendNotConfigured
	}

	return b.client.CaptureScreen(ctx)
}

func (b *backendClient) StreamChat(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error) {
	if !b.isConfigured() {
		return "", errBackendNotConfigured
	}

	return b.client.StreamChat(ctx, messages, systemPrompt)
}

func (b *backendClient) AddTranscriptEntry(ctx context.Context, speaker sessions.Role, text string) error {
	if !b.isConfigured() {
		return nil
	}

	return b.client.AddTranscriptEntry(ctx, speaker, text)
}
