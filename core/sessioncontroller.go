package orchestration

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vnrtumu/VenkyAI/core/sessions"
)

// StartSession issues a create-session command and installs the result
// as the current session with a cleared transcript log. On failure no
// session is left active and the error is returned to the caller.
func (o *Orchestrator) StartSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error) {
	ctx, span := tracer.Start(ctx, "start session")
	defer span.End()
	span.SetAttributes(attribute.String("session.purpose", string(purpose)))

	session, err := o.backend.CreateSession(ctx, title, purpose, sessionContext)
	if err != nil {
		recordedErr := fmt.Errorf("failed to create session: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return sessions.Session{}, recordedErr
	}

	session.Status = sessions.StatusActive
	o.store.Replace(session)

	return session, nil
}

// EndSession issues the end-session command and then, regardless of
// its outcome, tears down local capture state: both audio stops are
// attempted independently, the capture schedule is cancelled, and the
// streaming buffer and conversation log are cleared. The session
// transitions to Ended only when the end command succeeded.
func (o *Orchestrator) EndSession(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "end session")
	defer span.End()

	endErr := o.backend.EndSession(ctx)

	if err := o.backend.StopAudioCapture(ctx); err != nil {
		recordedErr := fmt.Errorf("failed to stop audio capture: %w", err)
		span.RecordError(recordedErr)
		logger.Warn("audio capture stop failed during session end", "error", err)
	}
	if err := o.backend.StopSystemAudioCapture(ctx); err != nil {
		recordedErr := fmt.Errorf("failed to stop system audio capture: %w", err)
		span.RecordError(recordedErr)
		logger.Warn("system audio capture stop failed during session end", "error", err)
	}

	o.isRecording.Store(false)
	o.isSystemAudioRecording.Store(false)
	o.captureActive.Store(false)
	o.scheduler.Stop()

	o.aggregator.Reset()
	o.conversation.Clear()

	if endErr != nil {
		recordedErr := fmt.Errorf("failed to end session: %w", endErr)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return recordedErr
	}

	o.store.SetStatus(sessions.StatusEnded)
	return nil
}

// adoptAutoStarted installs a session announced by the external
// detector. The backend already started capture as part of auto-start,
// so the recording and capture flags flip to active here without this
// component issuing start commands. The adopted session carries
// explicit auto-adopted provenance.
func (o *Orchestrator) adoptAutoStarted(session sessions.Session) {
	session.Source = sessions.SourceAutoAdopted
	if session.Status == "" {
		session.Status = sessions.StatusActive
	}
	o.store.Replace(session)

	o.isRecording.Store(true)
	o.captureActive.Store(true)
}
