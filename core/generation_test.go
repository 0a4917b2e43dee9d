package orchestration

import (
	"context"
	"fmt"
	"testing"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

type stubGenerator struct {
	generate func(ctx context.Context, question string, generationContext backend.Context) (backend.Response, error)
}

func (s *stubGenerator) Generate(ctx context.Context, question string, generationContext backend.Context) (backend.Response, error) {
	if s.generate == nil {
		return backend.Response{Content: "generated"}, nil
	}
	return s.generate(ctx, question, generationContext)
}

func TestAskAIUsesTranscriptContext(t *testing.T) {
	var gotQuestion string
	var gotContext backend.Context
	generator := &stubGenerator{
		generate: func(_ context.Context, question string, generationContext backend.Context) (backend.Response, error) {
			gotQuestion = question
			gotContext = generationContext
			return backend.Response{Content: "Friday"}, nil
		},
	}
	orchestrator := NewOrchestrator(
		WithBackendClient(&stubBackend{}),
		WithGenerator(generator),
	)

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	orchestrator.store.AppendTranscript(sessions.NewTranscriptEntry(sessions.RoleTranscription, "review is on Friday"))

	response, err := orchestrator.AskAI(context.Background(), "when is the review?")
	if err != nil {
		t.Fatalf("failed to ask: %v", err)
	}
	if response.Content != "Friday" {
		t.Fatalf("unexpected answer: %q", response.Content)
	}
	if gotQuestion != "when is the review?" {
		t.Fatalf("unexpected question: %q", gotQuestion)
	}
	if gotContext.Transcript != "transcription: review is on Friday" {
		t.Fatalf("unexpected transcript context: %q", gotContext.Transcript)
	}
	if items := orchestrator.Conversation(); len(items) != 0 {
		t.Fatalf("expected the conversation log untouched, got %v", items)
	}
}

func TestAskAIWithoutGeneratorFails(t *testing.T) {
	orchestrator := NewOrchestrator(WithBackendClient(&stubBackend{}))

	if _, err := orchestrator.AskAI(context.Background(), "anything"); err == nil {
		t.Fatalf("expected an error without a configured generator")
	}
}

func TestGenerateSummaryStoresResult(t *testing.T) {
	orchestrator := NewOrchestrator(
		WithBackendClient(&stubBackend{}),
		WithGenerator(&stubGenerator{
			generate: func(context.Context, string, backend.Context) (backend.Response, error) {
				return backend.Response{Content: "we agreed to ship"}, nil
			},
		}),
	)

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	summary, err := orchestrator.GenerateSummary(context.Background())
	if err != nil {
		t.Fatalf("failed to generate summary: %v", err)
	}
	if summary != "we agreed to ship" {
		t.Fatalf("unexpected summary: %q", summary)
	}

	session, ok := orchestrator.CurrentSession()
	if !ok {
		t.Fatalf("expected an active session")
	}
	if session.Summary != "we agreed to ship" {
		t.Fatalf("expected the summary stored on the session, got %q", session.Summary)
	}
}

func TestGenerateSummaryRequiresSession(t *testing.T) {
	orchestrator := NewOrchestrator(
		WithBackendClient(&stubBackend{}),
		WithGenerator(&stubGenerator{}),
	)

	if _, err := orchestrator.GenerateSummary(context.Background()); err == nil {
		t.Fatalf("expected an error without a session")
	}
}

func TestGenerateSummaryFailureSurfaces(t *testing.T) {
	orchestrator := NewOrchestrator(
		WithBackendClient(&stubBackend{}),
		WithGenerator(&stubGenerator{
			generate: func(context.Context, string, backend.Context) (backend.Response, error) {
				return backend.Response{}, fmt.Errorf("provider unavailable")
			},
		}),
	)

	if _, err := orchestrator.StartSession(context.Background(), "Sync", sessions.PurposeMeeting, ""); err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if _, err := orchestrator.GenerateSummary(context.Background()); err == nil {
		t.Fatalf("expected generation failure to surface")
	}
}
