// Package orchestration owns the session lifecycle of the assistant
// and reconciles its concurrent event streams (token-by-token
// generation, chunked transcription, auto-detected session starts,
// visibility toggles) into one consistent state model. All
// asynchronous signals enter through a single queued event loop;
// user-initiated actions enter as imperative commands issued to the
// configured backend.
package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

type Orchestrator struct {
	// backend is the command-surface facade used to handle optional
	// client wiring.
	backend      *backendClient
	generator    backend.Generator
	store        *sessionStore
	conversation *conversationLog
	aggregator   *streamAggregator
	ingestor     *transcriptionIngestor
	scheduler    *captureScheduler
	loop         *eventLoop

	isRecording            atomic.Bool
	isSystemAudioRecording atomic.Bool
	captureActive          atomic.Bool
	visible                atomic.Bool

	closeOnce sync.Once

	emitEvent          eventEmitter
	orchestrateOptions OrchestrateOptions
	baseContext        context.Context
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	store := newSessionStore()
	conversation := newConversationLog()

	o := &Orchestrator{
		backend:      newBackendClient(nil),
		store:        store,
		conversation: conversation,
		aggregator:   newStreamAggregator(conversation),
		loop:         newEventLoop(),
		emitEvent:    noopEventEmitter,
		baseContext:  context.Background(),
	}
	o.ingestor = newTranscriptionIngestor(store, o.backend)
	o.scheduler = newCaptureScheduler(o.backend.CaptureScreen)
	o.visible.Store(true)

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Orchestrate starts the event loop that reconciles the external event
// feed. ctx is the base context for background work; cancelling it
// closes the orchestrator.
//
// Contract: call Orchestrate at most once per orchestrator instance.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) {
	if !o.loop.CanIngest() {
		logger.Warn("orchestrator already closed, skipping Orchestrate")
		return
	}

	o.orchestrateOptions = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOptions)
	}

	o.baseContext = ctx
	o.emitEvent = newCallbackEventEmitter(o.orchestrateOptions)
	o.ingestor.configure(ctx)

	if started := o.loop.Start(ctx, o.routeEvent); started {
		go func() {
			<-ctx.Done()
			o.Close()
		}()
	}
}

// Close tears down the event loop and the capture schedule. No handler
// fires after Close begins; Close blocks until the loop drains.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.loop.Stop()
		o.scheduler.Stop()
		o.loop.AwaitDone()
	})
}

// StartRecording issues the audio capture start command, marking
// recording active on success.
func (o *Orchestrator) StartRecording() error {
	if err := o.backend.StartAudioCapture(o.baseContext); err != nil {
		return fmt.Errorf("failed to start audio capture: %w", err)
	}
	o.isRecording.Store(true)
	return nil
}

// StopRecording clears the recording flag before issuing the stop
// command so a failed stop cannot leave the state stuck on recording.
func (o *Orchestrator) StopRecording() error {
	o.isRecording.Store(false)
	if err := o.backend.StopAudioCapture(o.baseContext); err != nil {
		return fmt.Errorf("failed to stop audio capture: %w", err)
	}
	return nil
}

func (o *Orchestrator) StartSystemAudioRecording() error {
	if err := o.backend.StartSystemAudioCapture(o.baseContext); err != nil {
		return fmt.Errorf("failed to start system audio capture: %w", err)
	}
	o.isSystemAudioRecording.Store(true)
	return nil
}

func (o *Orchestrator) StopSystemAudioRecording() error {
	o.isSystemAudioRecording.Store(false)
	if err := o.backend.StopSystemAudioCapture(o.baseContext); err != nil {
		return fmt.Errorf("failed to stop system audio capture: %w", err)
	}
	return nil
}

// StartCapture begins the periodic screen-capture schedule. A start
// while a schedule is already running reports ErrCaptureAlreadyActive
// and leaves the running schedule untouched.
func (o *Orchestrator) StartCapture(interval time.Duration) error {
	if err := o.scheduler.Start(o.baseContext, interval); err != nil {
		return err
	}
	o.captureActive.Store(true)
	return nil
}

// StopCapture cancels the capture schedule. Idempotent.
func (o *Orchestrator) StopCapture() {
	o.captureActive.Store(false)
	o.scheduler.Stop()
}

// SendChatMessage records the user's message and issues a streaming
// generation request. Tokens and the final payload come back through
// the event feed; a command failure is surfaced both as an error
// conversation item and to the caller.
func (o *Orchestrator) SendChatMessage(ctx context.Context, text string) error {
	ctx, span := tracer.Start(ctx, "send chat message")
	defer span.End()

	o.conversation.Append(ItemKindUser, text)

	messages := o.chatMessages()
	systemPrompt := backend.BuildSystemPrompt(backend.Context{
		Transcript: flattenTranscript(o.store.Transcript()),
	})

	if _, err := o.backend.StreamChat(ctx, messages, systemPrompt); err != nil {
		recordedErr := fmt.Errorf("failed to stream chat: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		o.conversation.Append(ItemKindError, err.Error())
		return recordedErr
	}
	return nil
}

// TranscribeNow runs a one-shot transcription of the captured audio
// and records the result through the manual ingest path, whose
// persistence failure propagates to the caller.
func (o *Orchestrator) TranscribeNow(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "transcribe now")
	defer span.End()

	text, err := o.backend.TranscribeAudio(ctx)
	if err != nil {
		recordedErr := fmt.Errorf("failed to transcribe audio: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return "", recordedErr
	}

	if err := o.ingestor.OnManualTranscription(ctx, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return text, err
	}
	return text, nil
}

// AskAI runs a one-shot generation with the current transcript as
// context, without touching the conversation log.
func (o *Orchestrator) AskAI(ctx context.Context, question string) (backend.Response, error) {
	if o.generator == nil {
		return backend.Response{}, fmt.Errorf("generation provider not configured")
	}

	ctx, span := tracer.Start(ctx, "ask ai")
	defer span.End()

	response, err := o.generator.Generate(ctx, question, backend.Context{
		Transcript: flattenTranscript(o.store.Transcript()),
	})
	if err != nil {
		recordedErr := fmt.Errorf("failed to generate answer: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return backend.Response{}, recordedErr
	}
	return response, nil
}

// GenerateSummary flattens the transcript into a summarization prompt
// and stores the result on the current session.
func (o *Orchestrator) GenerateSummary(ctx context.Context) (string, error) {
	if o.generator == nil {
		return "", fmt.Errorf("summary generator not configured")
	}
	if _, ok := o.store.Snapshot(); !ok {
		return "", fmt.Errorf("no session to summarize")
	}

	ctx, span := tracer.Start(ctx, "generate session summary")
	defer span.End()

	response, err := o.generator.Generate(ctx,
		"Please provide a concise summary of this conversation session, highlighting key points, decisions, and action items.",
		backend.Context{Transcript: flattenTranscript(o.store.Transcript())},
	)
	if err != nil {
		recordedErr := fmt.Errorf("failed to generate summary: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return "", recordedErr
	}

	o.store.SetSummary(response.Content)
	return response.Content, nil
}

// ToggleVisibility flips the overlay visibility flag and re-broadcasts
// the change through the event feed.
func (o *Orchestrator) ToggleVisibility() bool {
	visible := !o.visible.Load()
	o.visible.Store(visible)
	o.Dispatch(events.NewOverlayVisibilityChanged(visible))
	return visible
}

func (o *Orchestrator) IsVisible() bool { return o.visible.Load() }

func (o *Orchestrator) IsRecording() bool { return o.isRecording.Load() }

func (o *Orchestrator) IsSystemAudioRecording() bool { return o.isSystemAudioRecording.Load() }

func (o *Orchestrator) IsCapturing() bool { return o.captureActive.Load() }

// PendingResponse returns the partial generation assembled so far.
func (o *Orchestrator) PendingResponse() string { return o.aggregator.Pending() }

// Conversation returns a snapshot of the chat/suggestion log.
func (o *Orchestrator) Conversation() []ConversationItem { return o.conversation.Items() }

// CurrentSession returns a snapshot of the current session, if any.
func (o *Orchestrator) CurrentSession() (sessions.Session, bool) { return o.store.Snapshot() }

// Transcript returns a snapshot of the current session's transcript
// log.
func (o *Orchestrator) Transcript() []sessions.TranscriptEntry { return o.store.Transcript() }

// chatMessages projects the conversation log onto the chat wire
// roles. Error items stay local, they are not part of the exchange.
func (o *Orchestrator) chatMessages() []backend.Message {
	items := o.conversation.Items()
	messages := make([]backend.Message, 0, len(items))
	for _, item := range items {
		switch item.Kind {
		case ItemKindUser:
			messages = append(messages, backend.Message{Role: "user", Content: item.Text})
		case ItemKindAssistant:
			messages = append(messages, backend.Message{Role: "assistant", Content: item.Text})
		}
	}
	return messages
}

func flattenTranscript(transcript []sessions.TranscriptEntry) string {
	lines := make([]string, 0, len(transcript))
	for _, entry := range transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Role, entry.Content))
	}
	return strings.Join(lines, "\n")
}
