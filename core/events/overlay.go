package events

const (
	// KindOverlayVisibilityChanged identifies an overlay show/hide toggle.
	KindOverlayVisibilityChanged Kind = "overlay.visibility_changed"
	// KindLiveSuggestion identifies an unsolicited live suggestion.
	KindLiveSuggestion Kind = "suggestion.live"
)

// OverlayVisibilityChanged reports the overlay window being shown or hidden.
type OverlayVisibilityChanged struct {
	Base
	Visible bool
}

// NewOverlayVisibilityChanged creates an overlay visibility event.
func NewOverlayVisibilityChanged(visible bool) OverlayVisibilityChanged {
	return OverlayVisibilityChanged{Base: NewBase(KindOverlayVisibilityChanged), Visible: visible}
}

// LiveSuggestion carries an unsolicited assistant suggestion produced by
// the live engine. May embed the silence sentinel.
type LiveSuggestion struct {
	Base
	Text string
}

// NewLiveSuggestion creates a live suggestion event.
func NewLiveSuggestion(text string) LiveSuggestion {
	return LiveSuggestion{Base: NewBase(KindLiveSuggestion), Text: text}
}
