package capture

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/youpy/go-wav"
)

// Buffer accumulates raw PCM frames from a capture client and renders
// them as a WAV payload for the transcription backend. Append and Drain
// may be called from different goroutines.
type Buffer struct {
	mu       sync.Mutex
	pcm      []byte
	encoding EncodingInfo
}

func NewBuffer(encoding EncodingInfo) *Buffer {
	if encoding.IsZero() {
		encoding = GetDefaultEncodingInfo()
	}
	return &Buffer{encoding: encoding}
}

// Append adds one captured frame.
func (b *Buffer) Append(audio []byte) {
	if len(audio) == 0 {
		return
	}

	b.mu.Lock()
	b.pcm = append(b.pcm, audio...)
	b.mu.Unlock()
}

// Len reports the buffered PCM size in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pcm)
}

// Clear discards all buffered audio.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.pcm = nil
	b.mu.Unlock()
}

// Drain renders the buffered PCM as a WAV payload and clears the
// buffer, so the same audio is never transcribed twice.
func (b *Buffer) Drain() ([]byte, error) {
	b.mu.Lock()
	pcm := b.pcm
	b.pcm = nil
	b.mu.Unlock()

	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio buffered")
	}

	bytesPerSample := b.encoding.Format.ByteSize()
	if bytesPerSample <= 0 {
		return nil, fmt.Errorf("unsupported encoding %q", b.encoding.Format.Name())
	}

	numSamples := uint32(len(pcm) / (bytesPerSample * b.encoding.Channels))
	var out bytes.Buffer
	writer := wav.NewWriter(
		&out,
		numSamples,
		uint16(b.encoding.Channels),
		uint32(b.encoding.SampleRate),
		uint16(bytesPerSample*8),
	)
	if _, err := writer.Write(pcm); err != nil {
		return nil, fmt.Errorf("failed to write wav samples: %w", err)
	}

	return out.Bytes(), nil
}
