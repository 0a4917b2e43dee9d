// Package detector watches desktop window titles for signs of a live
// meeting and auto-starts a session when one appears while no session
// is active.
package detector

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

const defaultScanInterval = 5 * time.Second

// Common meeting window titles.
var defaultMeetingPattern = regexp.MustCompile(`(?i)(Meet -|Zoom Meeting|Microsoft Teams|Webex|GoToMeeting)`)

// WindowLister enumerates the titles of currently open windows.
type WindowLister interface {
	Titles() ([]string, error)
}

// SessionStarter is the slice of the backend the detector drives when
// it auto-starts a session. Capture is started here, before the
// auto-start event is announced, which is why the session controller
// never issues start-capture commands for adopted sessions.
type SessionStarter interface {
	CreateSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error)
	StartAudioCapture(ctx context.Context) error
	StartSystemAudioCapture(ctx context.Context) error
}

type Detector struct {
	lister           WindowLister
	starter          SessionStarter
	hasActiveSession func() bool
	emit             func(events.Event)

	interval time.Duration
	pattern  *regexp.Regexp
	logger   *slog.Logger
}

type Option func(*Detector)

// WithScanInterval overrides how often window titles are scanned.
func WithScanInterval(interval time.Duration) Option {
	return func(d *Detector) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithPattern overrides the meeting window title pattern.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(d *Detector) {
		if pattern != nil {
			d.pattern = pattern
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func New(
	lister WindowLister,
	starter SessionStarter,
	hasActiveSession func() bool,
	emit func(events.Event),
	opts ...Option,
) *Detector {
	detector := &Detector{
		lister:           lister,
		starter:          starter,
		hasActiveSession: hasActiveSession,
		emit:             emit,
		interval:         defaultScanInterval,
		pattern:          defaultMeetingPattern,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(detector)
	}

	return detector
}

// Run scans window titles until ctx is cancelled.
func (d *Detector) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.scan(ctx)
		}
	}
}

func (d *Detector) scan(ctx context.Context) {
	titles, err := d.lister.Titles()
	if err != nil {
		d.logger.Debug("failed to list windows", "error", err)
		return
	}

	var detected string
	for _, title := range titles {
		if d.pattern.MatchString(title) {
			detected = title
			break
		}
	}
	if detected == "" {
		return
	}

	d.emit(events.NewMeetingDetected(detected))

	if d.hasActiveSession() {
		return
	}

	d.logger.Info("meeting detected, auto-starting session", "title", detected)

	session, err := d.starter.CreateSession(ctx, detected, sessions.PurposeMeeting, "")
	if err != nil {
		d.logger.Error("failed to auto-start session", "error", err)
		return
	}
	session.Source = sessions.SourceAutoAdopted

	// Capture start is best-effort: a failed device must not block the
	// session from being adopted.
	if err := d.starter.StartSystemAudioCapture(ctx); err != nil {
		d.logger.Warn("failed to start system audio capture", "error", err)
	}
	if err := d.starter.StartAudioCapture(ctx); err != nil {
		d.logger.Warn("failed to start audio capture", "error", err)
	}

	d.emit(events.NewSessionAutoStarted(session))
}
