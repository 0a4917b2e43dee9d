package orchestration

import (
	"sync"
	"time"

	"github.com/jinzhu/copier"

	"github.com/vnrtumu/VenkyAI/core/sessions"
)

// sessionStore holds the current session and its transcript log.
// Exactly one session is current at a time; replacing it discards the
// previous in-memory state.
type sessionStore struct {
	mu         sync.RWMutex
	session    *sessions.Session
	transcript []sessions.TranscriptEntry
}

func newSessionStore() *sessionStore {
	return &sessionStore{}
}

// Replace installs a new current session and clears the transcript
// log.
func (s *sessionStore) Replace(session sessions.Session) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.session = &session
	s.transcript = nil
	s.mu.Unlock()
}

func (s *sessionStore) Clear() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.session = nil
	s.transcript = nil
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current session, or false when
// no session is current.
func (s *sessionStore) Snapshot() (sessions.Session, bool) {
	if s == nil {
		return sessions.Session{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return sessions.Session{}, false
	}

	snapshot := sessions.Session{}
	if err := copier.CopyWithOption(&snapshot, s.session, copier.Option{DeepCopy: true}); err != nil {
		logger.Warn("failed to deep-copy session snapshot", "error", err)
		return *s.session, true
	}
	return snapshot, true
}

func (s *sessionStore) IsActive() bool {
	if s == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session != nil && s.session.Status == sessions.StatusActive
}

// SetStatus transitions the current session's status. Ending a session
// also stamps its end time.
func (s *sessionStore) SetStatus(status sessions.Status) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.session.Status = status
	if status == sessions.StatusEnded && s.session.EndTime == nil {
		now := time.Now()
		s.session.EndTime = &now
	}
}

func (s *sessionStore) AppendTranscript(entry sessions.TranscriptEntry) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, entry)
	s.mu.Unlock()
}

// Transcript returns a point-in-time copy of the transcript log.
func (s *sessionStore) Transcript() []sessions.TranscriptEntry {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript := make([]sessions.TranscriptEntry, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}

func (s *sessionStore) SetSummary(summary string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.session != nil {
		s.session.Summary = summary
	}
	s.mu.Unlock()
}
