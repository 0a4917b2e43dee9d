package orchestration

import (
	"context"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

type stubBackend struct {
	createSession      func(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error)
	endSession         func(ctx context.Context) error
	startAudio         func(ctx context.Context) error
	stopAudio          func(ctx context.Context) error
	startSystemAudio   func(ctx context.Context) error
	stopSystemAudio    func(ctx context.Context) error
	transcribeAudio    func(ctx context.Context) (string, error)
	captureScreen      func(ctx context.Context) error
	streamChat         func(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error)
	addTranscriptEntry func(ctx context.Context, speaker sessions.Role, text string) error
}

func (s *stubBackend) CreateSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error) {
	if s.createSession == nil {
		return sessions.New(title, purpose), nil
	}
	return s.createSession(ctx, title, purpose, sessionContext)
}

func (s *stubBackend) EndSession(ctx context.Context) error {
	if s.endSession == nil {
		return nil
	}
	return s.endSession(ctx)
}

func (s *stubBackend) StartAudioCapture(ctx context.Context) error {
	if s.startAudio == nil {
		return nil
	}
	return s.startAudio(ctx)
}

func (s *stubBackend) StopAudioCapture(ctx context.Context) error {
	if s.stopAudio == nil {
		return nil
	}
	return s.stopAudio(ctx)
}

func (s *stubBackend) StartSystemAudioCapture(ctx context.Context) error {
	if s.startSystemAudio == nil {
		return nil
	}
	return s.startSystemAudio(ctx)
}

func (s *stubBackend) StopSystemAudioCapture(ctx context.Context) error {
	if s.stopSystemAudio == nil {
		return nil
	}
	return s.stopSystemAudio(ctx)
}

func (s *stubBackend) TranscribeAudio(ctx context.Context) (string, error) {
	if s.transcribeAudio == nil {
		return "", nil
	}
	return s.transcribeAudio(ctx)
}

func (s *stubBackend) CaptureScreen(ctx context.Context) error {
	if s.captureScreen == nil {
		return nil
	}
	return s.captureScreen(ctx)
}

func (s *stubBackend) StreamChat(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error) {
	if s.streamChat == nil {
		return "", nil
	}
	return s.streamChat(ctx, messages, systemPrompt)
}

func (s *stubBackend) AddTranscriptEntry(ctx context.Context, speaker sessions.Role, text string) error {
	if s.addTranscriptEntry == nil {
		return nil
	}
	return s.addTranscriptEntry(ctx, speaker, text)
}
