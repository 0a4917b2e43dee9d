package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/capture"
	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
	"github.com/vnrtumu/VenkyAI/core/speechtotext"
	"github.com/vnrtumu/VenkyAI/core/speechtotext/deepgram"
)

// chatStreamer is the slice of the generation provider the backend
// delegates streaming chat and one-shot transcription to.
type chatStreamer interface {
	StreamChat(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error)
	Transcribe(ctx context.Context, audioWAV []byte) (string, error)
}

type localBackendConfig struct {
	Store            *sessions.Store
	Chat             chatStreamer
	Microphone       capture.Client
	SystemAudio      capture.Client
	LiveTranscriber  *deepgram.TranscriptionClient
	ScreenCaptureCmd string
	Logger           *slog.Logger
}

// localBackend composes the concrete collaborators into the backend
// command surface the orchestrator drives.
type localBackend struct {
	store           *sessions.Store
	chat            chatStreamer
	microphone      capture.Client
	systemAudio     capture.Client
	liveTranscriber *deepgram.TranscriptionClient

	micBuffer    *capture.Buffer
	systemBuffer *capture.Buffer

	screenCaptureCmd string
	logger           *slog.Logger

	emitEvent func(events.Event)

	mu      sync.Mutex
	current *sessions.Session
	state   capture.State
}

func newLocalBackend(cfg localBackendConfig) (*localBackend, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Chat == nil {
		return nil, fmt.Errorf("chat provider is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	lb := &localBackend{
		store:            cfg.Store,
		chat:             cfg.Chat,
		microphone:       cfg.Microphone,
		systemAudio:      cfg.SystemAudio,
		liveTranscriber:  cfg.LiveTranscriber,
		screenCaptureCmd: cfg.ScreenCaptureCmd,
		logger:           cfg.Logger,
		emitEvent:        func(events.Event) {},
	}
	if cfg.Microphone != nil {
		lb.micBuffer = capture.NewBuffer(cfg.Microphone.EncodingInfo())
	}
	if cfg.SystemAudio != nil {
		lb.systemBuffer = capture.NewBuffer(cfg.SystemAudio.EncodingInfo())
	}
	return lb, nil
}

// SetEventEmitter routes transcription chunks into the orchestrator's
// event feed.
func (lb *localBackend) SetEventEmitter(emitEvent func(events.Event)) {
	if emitEvent != nil {
		lb.emitEvent = emitEvent
	}
}

func (lb *localBackend) CreateSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error) {
	session := sessions.New(title, purpose)
	if err := lb.store.SaveSession(ctx, session, nil); err != nil {
		return sessions.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	lb.mu.Lock()
	lb.current = &session
	lb.mu.Unlock()

	return session, nil
}

func (lb *localBackend) EndSession(ctx context.Context) error {
	lb.mu.Lock()
	current := lb.current
	lb.mu.Unlock()

	if current == nil {
		return fmt.Errorf("no session to end")
	}

	now := time.Now()
	current.Status = sessions.StatusEnded
	current.EndTime = &now

	transcript, err := lb.store.Transcript(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("failed to load transcript for session end: %w", err)
	}
	if err := lb.store.SaveSession(ctx, *current, transcript); err != nil {
		return fmt.Errorf("failed to persist ended session: %w", err)
	}

	lb.mu.Lock()
	lb.current = nil
	lb.mu.Unlock()

	return nil
}

func (lb *localBackend) StartAudioCapture(ctx context.Context) error {
	if lb.microphone == nil {
		return fmt.Errorf("no microphone capture client configured")
	}

	lb.mu.Lock()
	if lb.state.IsRecordingAudio {
		lb.mu.Unlock()
		return nil
	}
	lb.state.IsRecordingAudio = true
	lb.mu.Unlock()

	if lb.liveTranscriber != nil {
		err := lb.liveTranscriber.Transcribe(ctx,
			speechtotext.WithEncodingInfo(lb.microphone.EncodingInfo()),
			speechtotext.WithChunkCallback(func(text string) {
				lb.emitEvent(events.NewTranscriptionChunk(text))
			}),
		)
		if err != nil {
			lb.logger.Warn("live transcription unavailable, capturing audio only", "error", err)
		}
	}

	if err := lb.microphone.StartCapture(ctx, func(audio []byte) {
		lb.micBuffer.Append(audio)
		if lb.liveTranscriber != nil {
			if err := lb.liveTranscriber.SendAudio(audio); err != nil {
				lb.logger.Debug("failed to forward audio to live transcription", "error", err)
			}
		}
	}); err != nil {
		lb.mu.Lock()
		lb.state.IsRecordingAudio = false
		lb.mu.Unlock()
		return fmt.Errorf("failed to start microphone capture: %w", err)
	}

	return nil
}

func (lb *localBackend) StopAudioCapture(ctx context.Context) error {
	if lb.microphone == nil {
		return nil
	}

	lb.mu.Lock()
	lb.state.IsRecordingAudio = false
	lb.mu.Unlock()

	if lb.liveTranscriber != nil {
		if err := lb.liveTranscriber.Close(ctx); err != nil {
			lb.logger.Warn("failed to close live transcription", "error", err)
		}
	}

	if err := lb.microphone.StopCapture(); err != nil {
		return fmt.Errorf("failed to stop microphone capture: %w", err)
	}
	return nil
}

func (lb *localBackend) StartSystemAudioCapture(ctx context.Context) error {
	if lb.systemAudio == nil {
		return fmt.Errorf("no system audio capture client configured")
	}

	lb.mu.Lock()
	if lb.state.IsRecordingSystemAudio {
		lb.mu.Unlock()
		return nil
	}
	lb.state.IsRecordingSystemAudio = true
	lb.mu.Unlock()

	if err := lb.systemAudio.StartCapture(ctx, lb.systemBuffer.Append); err != nil {
		lb.mu.Lock()
		lb.state.IsRecordingSystemAudio = false
		lb.mu.Unlock()
		return fmt.Errorf("failed to start system audio capture: %w", err)
	}
	return nil
}

func (lb *localBackend) StopSystemAudioCapture(context.Context) error {
	if lb.systemAudio == nil {
		return nil
	}

	lb.mu.Lock()
	lb.state.IsRecordingSystemAudio = false
	lb.mu.Unlock()

	if err := lb.systemAudio.StopCapture(); err != nil {
		return fmt.Errorf("failed to stop system audio capture: %w", err)
	}
	return nil
}

// TranscribeAudio drains the captured microphone audio and runs it
// through the one-shot transcription provider.
func (lb *localBackend) TranscribeAudio(ctx context.Context) (string, error) {
	if lb.micBuffer == nil {
		return "", fmt.Errorf("no microphone capture client configured")
	}

	audioWAV, err := lb.micBuffer.Drain()
	if err != nil {
		return "", fmt.Errorf("failed to assemble captured audio: %w", err)
	}

	text, err := lb.chat.Transcribe(ctx, audioWAV)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return text, nil
}

// CaptureScreen runs the configured screen capture command, if any,
// and stamps the capture state.
func (lb *localBackend) CaptureScreen(ctx context.Context) error {
	if lb.screenCaptureCmd != "" {
		if err := exec.CommandContext(ctx, "sh", "-c", lb.screenCaptureCmd).Run(); err != nil {
			return fmt.Errorf("screen capture command failed: %w", err)
		}
	}

	lb.mu.Lock()
	lb.state.LastScreenCapture = time.Now().UTC().Format(time.RFC3339)
	lb.mu.Unlock()
	return nil
}

func (lb *localBackend) StreamChat(ctx context.Context, messages []backend.Message, systemPrompt string) (string, error) {
	return lb.chat.StreamChat(ctx, messages, systemPrompt)
}

func (lb *localBackend) AddTranscriptEntry(ctx context.Context, speaker sessions.Role, text string) error {
	lb.mu.Lock()
	current := lb.current
	lb.mu.Unlock()

	if current == nil {
		return fmt.Errorf("no session to record transcript against")
	}

	entry := sessions.NewTranscriptEntry(speaker, text)
	if err := lb.store.AppendTranscriptEntry(ctx, current.ID, entry); err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// CaptureState reports the capture flags and last screen capture time.
func (lb *localBackend) CaptureState() capture.State {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.state
}

// HasActiveSession feeds the meeting detector's adoption decision.
func (lb *localBackend) HasActiveSession() bool {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.current != nil && lb.current.Status == sessions.StatusActive
}
