package orchestration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// ErrCaptureAlreadyActive reports a start request while a capture
// schedule is already running. The running schedule is untouched.
var ErrCaptureAlreadyActive = fmt.Errorf("capture schedule already active")

// captureScheduler owns the periodic screen-capture trigger. The
// schedule is acquired on Start and released on Stop or on session
// end; at most one schedule is outstanding at a time.
type captureScheduler struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	trigger func(context.Context) error
}

func newCaptureScheduler(trigger func(context.Context) error) *captureScheduler {
	return &captureScheduler{trigger: trigger}
}

// Start begins firing the capture trigger once per interval. A start
// while already running reports ErrCaptureAlreadyActive and leaves the
// running schedule alone. Individual trigger failures are recorded and
// swallowed; only Stop ends the schedule.
func (s *captureScheduler) Start(ctx context.Context, interval time.Duration) error {
	if s == nil {
		return fmt.Errorf("capture scheduler is required")
	}
	if interval <= 0 {
		return fmt.Errorf("capture interval must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrCaptureAlreadyActive
	}

	scheduleCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-scheduleCtx.Done():
				return
			case <-ticker.C:
				s.fire(scheduleCtx)
			}
		}
	}()

	return nil
}

func (s *captureScheduler) fire(ctx context.Context) {
	if s == nil || s.trigger == nil {
		return
	}

	ctx, span := tracer.Start(ctx, "capture trigger")
	defer span.End()

	if err := s.trigger(ctx); err != nil {
		recordedErr := fmt.Errorf("capture trigger failed: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
	}
}

// Stop cancels the outstanding schedule and waits for the loop to
// drain. Stopping an idle scheduler is a no-op.
func (s *captureScheduler) Stop() {
	if s == nil {
		return
	}

	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *captureScheduler) IsActive() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}
