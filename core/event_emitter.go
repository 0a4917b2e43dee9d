package orchestration

import "github.com/vnrtumu/VenkyAI/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts OrchestrateOptions) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.GenerationStarted:
			if opts.onGenerationStarted != nil {
				opts.onGenerationStarted()
			}
		case events.GenerationToken:
			if opts.onToken != nil {
				opts.onToken(typedEvent.Token)
			}
		case events.GenerationFinal:
			if opts.onResponse != nil {
				opts.onResponse(typedEvent.Payload)
			}
		case events.TranscriptionChunk:
			if opts.onTranscription != nil {
				opts.onTranscription(typedEvent.Text)
			}
		case events.OverlayVisibilityChanged:
			if opts.onVisibilityChanged != nil {
				opts.onVisibilityChanged(typedEvent.Visible)
			}
		case events.MeetingDetected:
			if opts.onMeetingDetected != nil {
				opts.onMeetingDetected(typedEvent.WindowTitle)
			}
		case events.SessionAutoStarted:
			if opts.onSessionAutoStarted != nil {
				opts.onSessionAutoStarted(typedEvent.Session)
			}
		case events.LiveSuggestion:
			if opts.onSuggestion != nil {
				opts.onSuggestion(typedEvent.Text)
			}
		}
	}
}
