package events

import "github.com/vnrtumu/VenkyAI/core/sessions"

const (
	// KindSessionAutoStarted identifies a detector-initiated session start.
	KindSessionAutoStarted Kind = "session.auto_started"
	// KindMeetingDetected identifies an advisory meeting-window sighting.
	KindMeetingDetected Kind = "meeting.detected"
)

// SessionAutoStarted announces a session begun by the meeting detector.
// The backend is assumed to have already started audio and screen
// capture as part of the auto-start.
type SessionAutoStarted struct {
	Base
	Session sessions.Session
}

// NewSessionAutoStarted creates a session auto-start event.
func NewSessionAutoStarted(session sessions.Session) SessionAutoStarted {
	return SessionAutoStarted{Base: NewBase(KindSessionAutoStarted), Session: session}
}

// MeetingDetected reports an observed meeting window title. Advisory.
type MeetingDetected struct {
	Base
	WindowTitle string
}

// NewMeetingDetected creates a meeting detection event.
func NewMeetingDetected(windowTitle string) MeetingDetected {
	return MeetingDetected{Base: NewBase(KindMeetingDetected), WindowTitle: windowTitle}
}
