// Package sessions holds the session domain model and its SQLite store.
package sessions

import (
	"time"

	"github.com/google/uuid"
)

// Purpose classifies what kind of conversation a session assists.
type Purpose string

const (
	PurposeMeeting   Purpose = "meeting"
	PurposeInterview Purpose = "interview"
	PurposeSales     Purpose = "sales"
	PurposeCasual    Purpose = "casual"
)

// Status is the lifecycle state of a session. A session transitions
// Active -> Ended exactly once and never back.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusEnded  Status = "ended"
)

// Source records how a session came to be the current one. Auto-adopted
// sessions are created by the meeting detector with capture already
// running, so the controller never issues start-capture commands for
// them.
type Source string

const (
	SourceManual      Source = "manual"
	SourceAutoAdopted Source = "auto_adopted"
)

// Session is one bounded interval of assistance scoped to a single
// conversation.
type Session struct {
	ID        string
	Title     string
	Purpose   Purpose
	Status    Status
	Source    Source
	StartTime time.Time
	EndTime   *time.Time
	Summary   string
}

// New creates an active manual session with a fresh ID.
func New(title string, purpose Purpose) Session {
	return Session{
		ID:        uuid.NewString(),
		Title:     title,
		Purpose:   purpose,
		Status:    StatusActive,
		Source:    SourceManual,
		StartTime: time.Now().UTC(),
	}
}

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleTranscription Role = "transcription"
	RoleUser          Role = "user"
	RoleAssistant     Role = "assistant"
)

// TranscriptEntry is one immutable line of the session transcript.
// Entries are append-only and cleared only when a new session replaces
// the current one.
type TranscriptEntry struct {
	Role      Role
	Content   string
	Timestamp string
}

// NewTranscriptEntry stamps a transcript entry with the current time.
func NewTranscriptEntry(role Role, content string) TranscriptEntry {
	return TranscriptEntry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
