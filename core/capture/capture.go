// Package capture defines the audio capture contract, the PCM buffer
// that accumulates captured frames, and the encoding parameters shared
// by capture clients and the transcription backend.
package capture

import "context"

// Client captures audio frames from one device and delivers them to a
// callback until stopped.
type Client interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() EncodingInfo
}

// State is a point-in-time snapshot of capture activity.
type State struct {
	IsRecordingAudio       bool
	IsRecordingSystemAudio bool
	LastScreenCapture      string
}
