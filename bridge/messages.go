package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vnrtumu/VenkyAI/core/events"
)

// EventEnvelope is the wire form of one orchestrator event pushed to
// the overlay.
type EventEnvelope struct {
	Kind      string          `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Command is one imperative message received from the overlay.
type Command struct {
	Command    string `json:"command"`
	Text       string `json:"text,omitempty"`
	Title      string `json:"title,omitempty"`
	Purpose    string `json:"purpose,omitempty"`
	Context    string `json:"context,omitempty"`
	IntervalMs int    `json:"interval_ms,omitempty"`
}

// CommandResult is the reply sent back for an overlay command.
type CommandResult struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Result  any    `json:"result,omitempty"`
}

func encodeEvent(event events.Event) ([]byte, error) {
	var payload any
	switch typedEvent := event.(type) {
	case events.GenerationStarted:
		payload = nil
	case events.GenerationToken:
		payload = map[string]string{"token": typedEvent.Token}
	case events.GenerationFinal:
		payload = map[string]string{"payload": typedEvent.Payload}
	case events.TranscriptionChunk:
		payload = map[string]string{"text": typedEvent.Text}
	case events.OverlayVisibilityChanged:
		payload = map[string]bool{"visible": typedEvent.Visible}
	case events.MeetingDetected:
		payload = map[string]string{"window_title": typedEvent.WindowTitle}
	case events.SessionAutoStarted:
		payload = typedEvent.Session
	case events.LiveSuggestion:
		payload = map[string]string{"text": typedEvent.Text}
	default:
		return nil, fmt.Errorf("unknown event type: %T", event)
	}

	envelope := EventEnvelope{
		Kind:      string(event.Kind()),
		Timestamp: event.Timestamp(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal event payload: %w", err)
		}
		envelope.Payload = raw
	}

	return json.Marshal(envelope)
}
