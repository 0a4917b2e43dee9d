package orchestration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vnrtumu/VenkyAI/core/sessions"
)

func TestChunkAppendsLocallyAndMirrorsToBackend(t *testing.T) {
	persisted := make(chan string, 1)
	client := &stubBackend{
		addTranscriptEntry: func(_ context.Context, speaker sessions.Role, text string) error {
			if speaker != sessions.RoleTranscription {
				t.Errorf("expected transcription role, got %q", speaker)
			}
			persisted <- text
			return nil
		},
	}

	store := newSessionStore()
	ingestor := newTranscriptionIngestor(store, newBackendClient(client))

	ingestor.OnChunk("hello")

	transcript := store.Transcript()
	if len(transcript) != 1 || transcript[0].Content != "hello" {
		t.Fatalf("expected local transcript entry, got %v", transcript)
	}
	if transcript[0].Role != sessions.RoleTranscription {
		t.Fatalf("expected transcription role, got %q", transcript[0].Role)
	}

	select {
	case text := <-persisted:
		if text != "hello" {
			t.Fatalf("expected %q persisted, got %q", "hello", text)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected background persistence to fire")
	}
}

func TestChunkPersistFailureKeepsLocalEntry(t *testing.T) {
	persistAttempted := make(chan struct{}, 1)
	client := &stubBackend{
		addTranscriptEntry: func(context.Context, sessions.Role, string) error {
			persistAttempted <- struct{}{}
			return fmt.Errorf("store unavailable")
		},
	}

	store := newSessionStore()
	ingestor := newTranscriptionIngestor(store, newBackendClient(client))

	ingestor.OnChunk("kept locally")

	select {
	case <-persistAttempted:
	case <-time.After(time.Second):
		t.Fatalf("expected persistence attempt")
	}

	if transcript := store.Transcript(); len(transcript) != 1 {
		t.Fatalf("expected local entry to survive persist failure, got %v", transcript)
	}
}

func TestManualTranscriptionSkipsPersistenceWithoutActiveSession(t *testing.T) {
	client := &stubBackend{
		addTranscriptEntry: func(context.Context, sessions.Role, string) error {
			t.Errorf("unexpected persistence without an active session")
			return nil
		},
	}

	store := newSessionStore()
	ingestor := newTranscriptionIngestor(store, newBackendClient(client))

	if err := ingestor.OnManualTranscription(context.Background(), "note"); err != nil {
		t.Fatalf("expected no error without a session, got %v", err)
	}
	if transcript := store.Transcript(); len(transcript) != 1 {
		t.Fatalf("expected transcript to grow regardless, got %v", transcript)
	}
}

func TestManualTranscriptionPersistsSynchronouslyWhenActive(t *testing.T) {
	var persistedText string
	client := &stubBackend{
		addTranscriptEntry: func(_ context.Context, _ sessions.Role, text string) error {
			persistedText = text
			return nil
		},
	}

	store := newSessionStore()
	store.Replace(sessions.New("Sync", sessions.PurposeMeeting))

	ingestor := newTranscriptionIngestor(store, newBackendClient(client))

	if err := ingestor.OnManualTranscription(context.Background(), "deliberate"); err != nil {
		t.Fatalf("expected manual transcription to persist, got %v", err)
	}
	if persistedText != "deliberate" {
		t.Fatalf("expected synchronous persistence, got %q", persistedText)
	}
}

func TestManualTranscriptionFailurePropagates(t *testing.T) {
	client := &stubBackend{
		addTranscriptEntry: func(context.Context, sessions.Role, string) error {
			return fmt.Errorf("store unavailable")
		},
	}

	store := newSessionStore()
	store.Replace(sessions.New("Sync", sessions.PurposeMeeting))

	ingestor := newTranscriptionIngestor(store, newBackendClient(client))

	if err := ingestor.OnManualTranscription(context.Background(), "deliberate"); err == nil {
		t.Fatalf("expected manual persistence failure to propagate")
	}
	if transcript := store.Transcript(); len(transcript) != 1 {
		t.Fatalf("expected local entry to survive, got %v", transcript)
	}
}
