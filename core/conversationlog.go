package orchestration

import "sync"

// ItemKind is the first-class role tag on a conversation item. It
// replaces prefix conventions like "You: " so that user content
// containing a literal "Error: " can never be misclassified.
type ItemKind string

const (
	ItemKindUser      ItemKind = "user"
	ItemKindAssistant ItemKind = "assistant"
	ItemKindError     ItemKind = "error"
)

// ConversationItem is one entry in the chat/suggestion log.
type ConversationItem struct {
	Kind ItemKind
	Text string
}

type conversationLog struct {
	mu    sync.Mutex
	items []ConversationItem
}

func newConversationLog() *conversationLog {
	return &conversationLog{}
}

func (l *conversationLog) Append(kind ItemKind, text string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	l.items = append(l.items, ConversationItem{Kind: kind, Text: text})
	l.mu.Unlock()
}

// Items returns a point-in-time copy of the log.
func (l *conversationLog) Items() []ConversationItem {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]ConversationItem, len(l.items))
	copy(items, l.items)
	return items
}

func (l *conversationLog) Clear() {
	if l == nil {
		return
	}

	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}
