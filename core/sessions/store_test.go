package sessions

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(StoreConfig{
		Path:     filepath.Join(t.TempDir(), "sessions.db"),
		PoolSize: 1,
	})
	if err != nil {
		t.Fatalf("expected store to open, got %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenStoreSeedsDefaultTemplates(t *testing.T) {
	store := openTestStore(t)

	templates, err := store.PromptTemplates(context.Background())
	if err != nil {
		t.Fatalf("expected templates to load, got %v", err)
	}
	if len(templates) != len(defaultTemplates) {
		t.Fatalf("expected %d seeded templates, got %d", len(defaultTemplates), len(templates))
	}
	for _, template := range templates {
		if template.ID == "" || template.Template == "" {
			t.Fatalf("expected seeded template to have id and body, got %+v", template)
		}
	}
}

func TestSaveSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := New("Quarterly sync", PurposeMeeting)
	endTime := session.StartTime.Add(30 * time.Minute)
	session.Status = StatusEnded
	session.EndTime = &endTime
	session.Summary = "Discussed roadmap."

	transcript := []TranscriptEntry{
		NewTranscriptEntry(RoleTranscription, "hello everyone"),
		NewTranscriptEntry(RoleUser, "what did I miss?"),
	}

	if err := store.SaveSession(ctx, session, transcript); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	summaries, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one stored session, got %d", len(summaries))
	}
	if summaries[0].ID != session.ID || summaries[0].Title != "Quarterly sync" {
		t.Fatalf("unexpected summary %+v", summaries[0])
	}
	if summaries[0].Summary != "Discussed roadmap." {
		t.Fatalf("expected summary text to round-trip, got %q", summaries[0].Summary)
	}

	stored, err := store.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("expected transcript to load, got %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected two transcript entries, got %d", len(stored))
	}
	if stored[0].Role != RoleTranscription || stored[0].Content != "hello everyone" {
		t.Fatalf("unexpected first entry %+v", stored[0])
	}
	if stored[1].Role != RoleUser || stored[1].Content != "what did I miss?" {
		t.Fatalf("unexpected second entry %+v", stored[1])
	}
}

func TestSaveSessionReplacesTranscript(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := New("Standup", PurposeMeeting)
	first := []TranscriptEntry{NewTranscriptEntry(RoleTranscription, "first")}
	if err := store.SaveSession(ctx, session, first); err != nil {
		t.Fatalf("expected first save to succeed, got %v", err)
	}

	second := []TranscriptEntry{
		NewTranscriptEntry(RoleTranscription, "first"),
		NewTranscriptEntry(RoleTranscription, "second"),
	}
	if err := store.SaveSession(ctx, session, second); err != nil {
		t.Fatalf("expected second save to succeed, got %v", err)
	}

	stored, err := store.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("expected transcript to load, got %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected replaced transcript with two entries, got %d", len(stored))
	}
}

func TestAppendTranscriptEntryMirrorsLiveSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := New("Interview", PurposeInterview)
	if err := store.SaveSession(ctx, session, nil); err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}

	entry := NewTranscriptEntry(RoleTranscription, "tell me about yourself")
	if err := store.AppendTranscriptEntry(ctx, session.ID, entry); err != nil {
		t.Fatalf("expected append to succeed, got %v", err)
	}

	stored, err := store.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("expected transcript to load, got %v", err)
	}
	if len(stored) != 1 || stored[0].Content != "tell me about yourself" {
		t.Fatalf("expected mirrored entry, got %+v", stored)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	session := New("Sync", PurposeMeeting)

	if session.ID == "" {
		t.Fatalf("expected a generated session ID")
	}
	if session.Status != StatusActive {
		t.Fatalf("expected new session to be active, got %q", session.Status)
	}
	if session.Source != SourceManual {
		t.Fatalf("expected new session to be manual, got %q", session.Source)
	}
	if session.EndTime != nil {
		t.Fatalf("expected no end time on a new session")
	}
}
