package events

const (
	// KindTranscriptionChunk identifies one background transcription chunk.
	KindTranscriptionChunk Kind = "transcription.chunk"
)

// TranscriptionChunk carries one background speech-to-text chunk.
type TranscriptionChunk struct {
	Base
	Text string
}

// NewTranscriptionChunk creates a transcription chunk event.
func NewTranscriptionChunk(text string) TranscriptionChunk {
	return TranscriptionChunk{Base: NewBase(KindTranscriptionChunk), Text: text}
}
