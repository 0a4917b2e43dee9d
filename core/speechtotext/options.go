// Package speechtotext defines the live transcription contract between
// the orchestrator and streaming speech-to-text providers.
package speechtotext

import "github.com/vnrtumu/VenkyAI/core/capture"

type TranscriptionOptions struct {
	// ChunkCallback receives finalized transcription chunks in arrival
	// order.
	ChunkCallback func(text string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo capture.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithChunkCallback(callback func(text string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.ChunkCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo capture.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
