// Package backend defines the command surface the orchestrator issues
// to its collaborators: session lifecycle, capture control, speech to
// text, screen capture, and chat generation. Every command is
// independently fallible; the orchestrator decides per call site
// whether a failure is surfaced or swallowed.
package backend

import (
	"context"
	"strings"
	"time"

	"github.com/vnrtumu/VenkyAI/core/sessions"
)

// Message is one chat message sent to the streaming generation backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context carries the situational material composed into the system
// prompt for a generation request.
type Context struct {
	Transcript        string
	ScreenDescription string
	CustomPrompt      string
	ScreenBase64      string
}

// Response is a completed non-streaming generation.
type Response struct {
	Content   string
	Model     string
	Provider  string
	Timestamp time.Time
}

// ProviderInfo describes one available generation provider.
type ProviderInfo struct {
	Name      string
	Available bool
	Models    []string
}

// Client is the full backend command surface. Implementations compose
// the concrete collaborators (capture devices, speech-to-text engine,
// generation provider, session persistence) behind one contract.
type Client interface {
	CreateSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error)
	EndSession(ctx context.Context) error

	StartAudioCapture(ctx context.Context) error
	StopAudioCapture(ctx context.Context) error
	StartSystemAudioCapture(ctx context.Context) error
	StopSystemAudioCapture(ctx context.Context) error

	TranscribeAudio(ctx context.Context) (string, error)
	CaptureScreen(ctx context.Context) error

	// StreamChat issues a streaming generation request. Tokens, the
	// stream start, and the final payload are delivered through the
	// event feed as a side channel; the returned string is the same
	// assembled payload for callers that want it synchronously.
	StreamChat(ctx context.Context, messages []Message, systemPrompt string) (string, error)

	AddTranscriptEntry(ctx context.Context, speaker sessions.Role, text string) error
}

// Generator is a non-streaming generation provider, used for one-shot
// questions and session summaries.
type Generator interface {
	Generate(ctx context.Context, question string, generationContext Context) (Response, error)
}

// Providers lists the generation providers this build knows how to
// drive.
func Providers() []ProviderInfo {
	return []ProviderInfo{
		{
			Name:      "OpenAI",
			Available: true,
			Models:    []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
		},
		{
			Name:      "Ollama",
			Available: true,
			Models:    []string{"llama3", "mistral", "codellama", "gemma"},
		},
	}
}

// BuildSystemPrompt composes the assistant system prompt from the
// generation context. Sections are included only when present.
func BuildSystemPrompt(generationContext Context) string {
	var prompt strings.Builder
	prompt.WriteString(
		"You are VenkyAI, a real-time AI assistant helping the user during virtual meetings, " +
			"interviews, and presentations. Provide concise, actionable suggestions. " +
			"Be direct and helpful.\n\n")

	if generationContext.CustomPrompt != "" {
		prompt.WriteString("## Custom Instructions\n")
		prompt.WriteString(generationContext.CustomPrompt)
		prompt.WriteString("\n\n")
	}

	if generationContext.Transcript != "" {
		prompt.WriteString("## Current Conversation Transcript\n")
		prompt.WriteString(generationContext.Transcript)
		prompt.WriteString("\n\n")
	}

	if generationContext.ScreenDescription != "" {
		prompt.WriteString("## What's Currently on Screen\n")
		prompt.WriteString(generationContext.ScreenDescription)
		prompt.WriteString("\n\n")
	}

	prompt.WriteString(
		"Based on all the context above, provide helpful suggestions, talking points, " +
			"or answers the user might need right now. Be concise and practical.")

	return prompt.String()
}
