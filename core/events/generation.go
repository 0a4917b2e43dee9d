package events

const (
	// KindGenerationStarted identifies the start of a token stream.
	KindGenerationStarted Kind = "generation.started"
	// KindGenerationToken identifies one streamed text fragment.
	KindGenerationToken Kind = "generation.token"
	// KindGenerationFinal identifies stream completion with the
	// assembled payload.
	KindGenerationFinal Kind = "generation.final"
)

// GenerationStarted marks the start of a generation token stream.
type GenerationStarted struct{ Base }

// NewGenerationStarted creates a generation start event.
func NewGenerationStarted() GenerationStarted {
	return GenerationStarted{Base: NewBase(KindGenerationStarted)}
}

// GenerationToken carries one streamed generation text fragment.
type GenerationToken struct {
	Base
	Token string
}

// NewGenerationToken creates a generation token event.
func NewGenerationToken(token string) GenerationToken {
	return GenerationToken{Base: NewBase(KindGenerationToken), Token: token}
}

// GenerationFinal marks generation stream completion. Payload is the
// full assembled response and may embed the silence sentinel.
type GenerationFinal struct {
	Base
	Payload string
}

// NewGenerationFinal creates a generation final event.
func NewGenerationFinal(payload string) GenerationFinal {
	return GenerationFinal{Base: NewBase(KindGenerationFinal), Payload: payload}
}
