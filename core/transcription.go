package orchestration

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"github.com/vnrtumu/VenkyAI/core/sessions"
)

// transcriptionIngestor appends incoming transcript chunks to the
// local log and mirrors them to the backend store. The local log is
// authoritative for the session UI; the backend mirror is best-effort
// on the passive path.
type transcriptionIngestor struct {
	store   *sessionStore
	backend *backendClient

	baseContext context.Context
}

func newTranscriptionIngestor(store *sessionStore, backend *backendClient) *transcriptionIngestor {
	return &transcriptionIngestor{
		store:       store,
		backend:     backend,
		baseContext: context.Background(),
	}
}

func (t *transcriptionIngestor) configure(ctx context.Context) {
	if t == nil {
		return
	}

	t.baseContext = ctx
}

// OnChunk appends a transcription entry, then persists it in the
// background. Persistence failures are logged and never rolled back
// from the local log.
func (t *transcriptionIngestor) OnChunk(text string) {
	if t == nil {
		return
	}

	entry := sessions.NewTranscriptEntry(sessions.RoleTranscription, text)
	t.store.AppendTranscript(entry)

	go func() {
		ctx, span := tracer.Start(t.baseContext, "persist transcript chunk")
		defer span.End()

		if err := t.backend.AddTranscriptEntry(ctx, entry.Role, entry.Content); err != nil {
			recordedErr := fmt.Errorf("failed to persist transcript chunk: %w", err)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}
	}()
}

// OnManualTranscription appends the entry and, when a session is
// Active, persists it synchronously. The persistence failure
// propagates on this path: manual transcription is a deliberate user
// action expecting feedback.
func (t *transcriptionIngestor) OnManualTranscription(ctx context.Context, text string) error {
	if t == nil {
		return nil
	}

	entry := sessions.NewTranscriptEntry(sessions.RoleTranscription, text)
	t.store.AppendTranscript(entry)

	if !t.store.IsActive() {
		return nil
	}

	if err := t.backend.AddTranscriptEntry(ctx, entry.Role, entry.Content); err != nil {
		return fmt.Errorf("failed to persist manual transcription: %w", err)
	}
	return nil
}
