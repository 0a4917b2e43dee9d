package orchestration

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/vnrtumu/VenkyAI/core/events"
)

// Dispatch offers an event to the orchestrator's ingress queue. Events
// dispatched after Close begins are dropped.
func (o *Orchestrator) Dispatch(event events.Event) {
	if o == nil || event == nil {
		return
	}

	if !o.loop.Ingest(event) {
		logger.Warn("dropped event dispatched after orchestrator close", "kind", string(event.Kind()))
	}
}

// routeEvent delivers one event to its owning component. It runs only
// on the event loop goroutine.
func (o *Orchestrator) routeEvent(ctx context.Context, event events.Event) {
	switch typedEvent := event.(type) {
	case events.GenerationStarted:
		o.aggregator.OnStreamStart()

	case events.GenerationToken:
		o.aggregator.OnToken(typedEvent.Token)

	case events.GenerationFinal:
		o.aggregator.OnStreamEnd(typedEvent.Payload)

	case events.TranscriptionChunk:
		o.ingestor.OnChunk(typedEvent.Text)

	case events.OverlayVisibilityChanged:
		o.visible.Store(typedEvent.Visible)

	case events.MeetingDetected:
		// Advisory only, forwarded to observers below.
		logger.Info("meeting window detected", "window_title", typedEvent.WindowTitle)

	case events.SessionAutoStarted:
		o.adoptAutoStarted(typedEvent.Session)

	case events.LiveSuggestion:
		// Display-only, the final payload owns the conversation log.

	default:
		span := trace.SpanFromContext(ctx)
		span.RecordError(fmt.Errorf("skipped routing event of unknown type: %T", event))
		return
	}

	o.emitEvent(event)
}
