package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

func awaitSignal(t *testing.T, signal <-chan struct{}, description string) {
	t.Helper()
	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", description)
	}
}

func TestManualSessionFlow(t *testing.T) {
	client := &stubBackend{}
	orchestrator := NewOrchestrator(WithBackendClient(client))
	defer orchestrator.Close()

	finalized := make(chan struct{}, 1)
	orchestrator.Orchestrate(context.Background(),
		WithResponseCallback(func(string) { finalized <- struct{}{} }),
	)

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("expected session start to succeed, got %v", err)
	}
	if transcript := orchestrator.Transcript(); len(transcript) != 0 {
		t.Fatalf("expected empty transcript after start, got %v", transcript)
	}

	orchestrator.Dispatch(events.NewTranscriptionChunk("hello"))
	orchestrator.Dispatch(events.NewGenerationStarted())
	orchestrator.Dispatch(events.NewGenerationToken("Hi"))
	orchestrator.Dispatch(events.NewGenerationToken(" there"))
	orchestrator.Dispatch(events.NewGenerationFinal("Hi there"))

	awaitSignal(t, finalized, "generation final delivery")

	transcript := orchestrator.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("expected one transcript entry, got %v", transcript)
	}
	if transcript[0].Role != sessions.RoleTranscription || transcript[0].Content != "hello" {
		t.Fatalf("unexpected transcript entry: %+v", transcript[0])
	}

	items := orchestrator.Conversation()
	if len(items) != 1 {
		t.Fatalf("expected one conversation item, got %v", items)
	}
	if items[0].Kind != ItemKindAssistant || items[0].Text != "Hi there" {
		t.Fatalf("unexpected conversation item: %+v", items[0])
	}
	if pending := orchestrator.PendingResponse(); pending != "" {
		t.Fatalf("expected buffer reset after final payload, got %q", pending)
	}
}

func TestAutoStartedSessionIsAdoptedWithoutCaptureCommands(t *testing.T) {
	var startAudioCalls int
	client := &stubBackend{
		startAudio: func(context.Context) error {
			startAudioCalls++
			return nil
		},
	}
	orchestrator := NewOrchestrator(WithBackendClient(client))
	defer orchestrator.Close()

	adopted := make(chan struct{}, 1)
	orchestrator.Orchestrate(context.Background(),
		WithSessionAutoStartedCallback(func(sessions.Session) { adopted <- struct{}{} }),
	)

	announced := sessions.Session{ID: "s1", Title: "Standup", Purpose: sessions.PurposeMeeting}
	orchestrator.Dispatch(events.NewSessionAutoStarted(announced))

	awaitSignal(t, adopted, "auto-start adoption")

	current, ok := orchestrator.CurrentSession()
	if !ok {
		t.Fatalf("expected an adopted session")
	}
	if current.ID != "s1" {
		t.Fatalf("expected session s1, got %q", current.ID)
	}
	if current.Source != sessions.SourceAutoAdopted {
		t.Fatalf("expected auto-adopted provenance, got %q", current.Source)
	}
	if current.Status != sessions.StatusActive {
		t.Fatalf("expected active status, got %q", current.Status)
	}
	if transcript := orchestrator.Transcript(); len(transcript) != 0 {
		t.Fatalf("expected empty transcript after adoption, got %v", transcript)
	}

	if !orchestrator.IsRecording() || !orchestrator.IsCapturing() {
		t.Fatalf("expected recording and capture flags active after adoption")
	}
	if startAudioCalls != 0 {
		t.Fatalf("expected no capture start commands during adoption, got %d", startAudioCalls)
	}
}

func TestConsecutiveGenerationStartsDiscardPartialOutput(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))
	defer orchestrator.Close()

	started := make(chan struct{}, 2)
	orchestrator.Orchestrate(context.Background(),
		WithGenerationStartedCallback(func() { started <- struct{}{} }),
	)

	orchestrator.Dispatch(events.NewGenerationStarted())
	orchestrator.Dispatch(events.NewGenerationToken("partial"))
	orchestrator.Dispatch(events.NewGenerationStarted())

	awaitSignal(t, started, "first generation start")
	awaitSignal(t, started, "second generation start")

	if pending := orchestrator.PendingResponse(); pending != "" {
		t.Fatalf("expected second start to reset the buffer, got %q", pending)
	}
	if items := orchestrator.Conversation(); len(items) != 0 {
		t.Fatalf("expected no conversation item from the discarded stream, got %v", items)
	}
}

func TestVisibilityEventsUpdateOverlayState(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))
	defer orchestrator.Close()

	changed := make(chan struct{}, 1)
	orchestrator.Orchestrate(context.Background(),
		WithVisibilityChangedCallback(func(bool) { changed <- struct{}{} }),
	)

	orchestrator.Dispatch(events.NewOverlayVisibilityChanged(false))
	awaitSignal(t, changed, "visibility change delivery")

	if orchestrator.IsVisible() {
		t.Fatalf("expected overlay hidden after visibility event")
	}
}

func TestNoHandlerFiresAfterClose(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))

	delivered := make(chan struct{}, 16)
	orchestrator.Orchestrate(context.Background(),
		WithEventCallback(func(events.Event) { delivered <- struct{}{} }),
	)

	orchestrator.Dispatch(events.NewGenerationStarted())
	awaitSignal(t, delivered, "event delivery before close")

	orchestrator.Close()
	orchestrator.Dispatch(events.NewGenerationToken("late"))

	select {
	case <-delivered:
		t.Fatalf("expected no delivery after close")
	case <-time.After(50 * time.Millisecond):
	}
	if pending := orchestrator.PendingResponse(); pending != "" {
		t.Fatalf("expected no state change after close, got %q", pending)
	}
}

func TestLiveSuggestionIsForwardedNotLogged(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))
	defer orchestrator.Close()

	suggestions := make(chan string, 1)
	orchestrator.Orchestrate(context.Background(),
		WithSuggestionCallback(func(text string) { suggestions <- text }),
	)

	orchestrator.Dispatch(events.NewLiveSuggestion("mention the roadmap"))

	select {
	case text := <-suggestions:
		if text != "mention the roadmap" {
			t.Fatalf("unexpected suggestion: %q", text)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for suggestion delivery")
	}

	if items := orchestrator.Conversation(); len(items) != 0 {
		t.Fatalf("expected live suggestions to stay out of the conversation log, got %v", items)
	}
}
