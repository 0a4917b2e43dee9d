package orchestration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

func TestStartSessionReplacesStateOnSuccess(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))
	orchestrator.store.AppendTranscript(sessions.NewTranscriptEntry(sessions.RoleTranscription, "stale"))

	session, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, "")
	if err != nil {
		t.Fatalf("expected session start to succeed, got %v", err)
	}
	if session.Status != sessions.StatusActive {
		t.Fatalf("expected active status, got %q", session.Status)
	}

	if transcript := orchestrator.Transcript(); len(transcript) != 0 {
		t.Fatalf("expected transcript log cleared on start, got %v", transcript)
	}

	current, ok := orchestrator.CurrentSession()
	if !ok {
		t.Fatalf("expected a current session")
	}
	if current.ID != session.ID || current.Source != sessions.SourceManual {
		t.Fatalf("unexpected current session: %+v", current)
	}
}

func TestStartSessionFailureLeavesNoSession(t *testing.T) {
	client := &stubBackend{
		createSession: func(context.Context, string, sessions.Purpose, string) (sessions.Session, error) {
			return sessions.Session{}, fmt.Errorf("backend unavailable")
		},
	}
	orchestrator := NewOrchestrator(WithBackendClient(client))

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err == nil {
		t.Fatalf("expected session start to fail")
	}
	if _, ok := orchestrator.CurrentSession(); ok {
		t.Fatalf("expected no session after failed start")
	}
}

func TestEndSessionMarksEndedOnSuccess(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("expected session start to succeed, got %v", err)
	}

	if err := orchestrator.EndSession(context.Background()); err != nil {
		t.Fatalf("expected session end to succeed, got %v", err)
	}

	current, ok := orchestrator.CurrentSession()
	if !ok {
		t.Fatalf("expected the ended session to remain current")
	}
	if current.Status != sessions.StatusEnded {
		t.Fatalf("expected ended status, got %q", current.Status)
	}
	if current.EndTime == nil {
		t.Fatalf("expected end time to be stamped")
	}
}

func TestEndSessionCleansUpEvenWhenEndCommandFails(t *testing.T) {
	var stopAudioCalled, stopSystemCalled bool
	client := &stubBackend{
		endSession: func(context.Context) error { return fmt.Errorf("backend unavailable") },
		stopAudio: func(context.Context) error {
			stopAudioCalled = true
			return fmt.Errorf("device busy")
		},
		stopSystemAudio: func(context.Context) error {
			stopSystemCalled = true
			return nil
		},
	}
	orchestrator := NewOrchestrator(WithBackendClient(client))

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("expected session start to succeed, got %v", err)
	}
	if err := orchestrator.StartRecording(); err != nil {
		t.Fatalf("expected recording to start, got %v", err)
	}
	if err := orchestrator.StartCapture(time.Minute); err != nil {
		t.Fatalf("expected capture schedule to start, got %v", err)
	}
	orchestrator.conversation.Append(ItemKindUser, "hello")
	orchestrator.aggregator.OnStreamStart()
	orchestrator.aggregator.OnToken("partial")

	if err := orchestrator.EndSession(context.Background()); err == nil {
		t.Fatalf("expected end command failure to surface")
	}

	if orchestrator.IsRecording() {
		t.Fatalf("expected recording flag cleared despite end failure")
	}
	if orchestrator.IsCapturing() || orchestrator.scheduler.IsActive() {
		t.Fatalf("expected capture schedule cancelled despite end failure")
	}
	if !stopAudioCalled || !stopSystemCalled {
		t.Fatalf("expected both capture stops attempted independently, audio=%t system=%t", stopAudioCalled, stopSystemCalled)
	}
	if items := orchestrator.Conversation(); len(items) != 0 {
		t.Fatalf("expected conversation log cleared, got %v", items)
	}
	if pending := orchestrator.PendingResponse(); pending != "" {
		t.Fatalf("expected streaming buffer cleared, got %q", pending)
	}

	current, ok := orchestrator.CurrentSession()
	if !ok {
		t.Fatalf("expected the session to remain current")
	}
	if current.Status != sessions.StatusActive {
		t.Fatalf("expected status unchanged when end command fails, got %q", current.Status)
	}
}

func TestStopRecordingClearsFlagEvenOnFailure(t *testing.T) {
	client := &stubBackend{
		stopAudio: func(context.Context) error { return fmt.Errorf("device busy") },
	}
	orchestrator := NewOrchestrator(WithBackendClient(client))

	if err := orchestrator.StartRecording(); err != nil {
		t.Fatalf("expected recording to start, got %v", err)
	}
	if err := orchestrator.StopRecording(); err == nil {
		t.Fatalf("expected stop failure to surface")
	}
	if orchestrator.IsRecording() {
		t.Fatalf("expected recording flag cleared before the stop command")
	}
}

func TestSendChatMessageFailureBecomesErrorItem(t *testing.T) {
	client := &stubBackend{
		streamChat: func(context.Context, []backend.Message, string) (string, error) {
			return "", fmt.Errorf("provider unavailable")
		},
	}
	orchestrator := NewOrchestrator(WithBackendClient(client))

	if err := orchestrator.SendChatMessage(context.Background(), "help me"); err == nil {
		t.Fatalf("expected chat failure to surface")
	}

	items := orchestrator.Conversation()
	if len(items) != 2 {
		t.Fatalf("expected user item plus error item, got %v", items)
	}
	if items[0].Kind != ItemKindUser || items[0].Text != "help me" {
		t.Fatalf("unexpected user item: %+v", items[0])
	}
	if items[1].Kind != ItemKindError {
		t.Fatalf("expected an error item, got %+v", items[1])
	}
}
