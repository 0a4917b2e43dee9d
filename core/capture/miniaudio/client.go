// Package miniaudio provides malgo-backed capture clients for the
// microphone and, where the platform supports loopback devices, for
// system audio.
package miniaudio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/vnrtumu/VenkyAI/core/capture"
)

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
	captureClient
}

// NewClient initializes a microphone capture client.
func NewClient() (*Client, error) {
	return newClient(malgo.Capture)
}

// NewLoopbackClient initializes a system-audio (loopback) capture
// client. Loopback devices are unavailable on some backends; callers
// should treat failure here as the feature being unsupported rather
// than fatal.
func NewLoopbackClient() (*Client, error) {
	return newClient(malgo.Loopback)
}

func newClient(deviceType malgo.DeviceType) (*Client, error) {
	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) {},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	client := Client{audioContext: audioCtx}
	if err := client.captureClient.Init(audioCtx, deviceType); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize capture client: %w", err)
	}

	return &client, nil
}

func (c *Client) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	return c.captureClient.Start(onAudio)
}

func (c *Client) StopCapture() error {
	return c.captureClient.Stop()
}

func (c *Client) Close() {
	_ = c.captureClient.Uninit()
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() capture.EncodingInfo {
	return capture.EncodingInfo{
		SampleRate: capture.DefaultSampleRate,
		Channels:   capture.DefaultChannels,
		Format:     capture.EncodingLinear16,
	}
}
