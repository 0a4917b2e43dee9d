package orchestration

import (
	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

type OrchestratorOption func(*Orchestrator)

// WithBackendClient configures the command surface the orchestrator
// issues session, capture, transcription, and generation commands to.
func WithBackendClient(client backend.Client) OrchestratorOption {
	return func(o *Orchestrator) {
		o.backend.set(client)
	}
}

// WithGenerator configures the one-shot generation provider used
// for direct questions and session summaries.
func WithGenerator(generator backend.Generator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

type OrchestrateOptions struct {
	onEvent func(events.Event)

	onGenerationStarted  func()
	onToken              func(token string)
	onResponse           func(payload string)
	onTranscription      func(text string)
	onVisibilityChanged  func(visible bool)
	onMeetingDetected    func(windowTitle string)
	onSessionAutoStarted func(session sessions.Session)
	onSuggestion         func(text string)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithEventCallback observes every routed event, typed. Used by the
// overlay bridge to forward the full feed.
func WithEventCallback(callback func(events.Event)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onEvent = callback
	}
}

func WithGenerationStartedCallback(callback func()) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onGenerationStarted = callback
	}
}

func WithTokenCallback(callback func(token string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onToken = callback
	}
}

func WithResponseCallback(callback func(payload string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onResponse = callback
	}
}

func WithTranscriptionCallback(callback func(text string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onTranscription = callback
	}
}

func WithVisibilityChangedCallback(callback func(visible bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onVisibilityChanged = callback
	}
}

func WithMeetingDetectedCallback(callback func(windowTitle string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onMeetingDetected = callback
	}
}

func WithSessionAutoStartedCallback(callback func(session sessions.Session)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onSessionAutoStarted = callback
	}
}

func WithSuggestionCallback(callback func(text string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onSuggestion = callback
	}
}
