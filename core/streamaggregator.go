package orchestration

import (
	"strings"
	"sync"
)

// SilenceSentinel is the reserved final payload marking "no
// suggestion". Payloads carrying it are suppressed from the
// conversation log.
const SilenceSentinel = "[SILENCE]"

// streamAggregator accumulates generation tokens into a pending
// response and finalizes it into the conversation log. At most one
// stream is assembled at a time; a stream start while one is already
// in flight discards the old buffer.
type streamAggregator struct {
	mu        sync.Mutex
	chunks    []string
	streaming bool

	log *conversationLog
}

func newStreamAggregator(log *conversationLog) *streamAggregator {
	return &streamAggregator{log: log}
}

func (a *streamAggregator) OnStreamStart() {
	if a == nil {
		return
	}

	a.mu.Lock()
	if a.streaming && len(a.chunks) > 0 {
		logger.Warn("generation started while another stream was in flight, discarding partial response",
			"discarded_chunks", len(a.chunks))
	}
	a.chunks = nil
	a.streaming = true
	a.mu.Unlock()
}

func (a *streamAggregator) OnToken(fragment string) {
	if a == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.streaming {
		logger.Warn("dropping generation token received outside a stream")
		return
	}
	a.chunks = append(a.chunks, fragment)
}

// OnStreamEnd finalizes the stream. A non-empty payload that does not
// carry the silence sentinel becomes an assistant conversation item;
// the buffer resets to empty in all cases.
func (a *streamAggregator) OnStreamEnd(finalPayload string) {
	if a == nil {
		return
	}

	a.mu.Lock()
	a.chunks = nil
	a.streaming = false
	a.mu.Unlock()

	if finalPayload == "" || strings.Contains(finalPayload, SilenceSentinel) {
		return
	}
	a.log.Append(ItemKindAssistant, finalPayload)
}

// Reset abruptly clears any in-flight stream, used on session end.
func (a *streamAggregator) Reset() {
	if a == nil {
		return
	}

	a.mu.Lock()
	a.chunks = nil
	a.streaming = false
	a.mu.Unlock()
}

// Pending returns the response assembled so far.
func (a *streamAggregator) Pending() string {
	if a == nil {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return strings.Join(a.chunks, "")
}

func (a *streamAggregator) IsStreaming() bool {
	if a == nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.streaming
}
