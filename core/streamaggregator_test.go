package orchestration

import "testing"

func TestStreamAggregatorConcatenatesTokens(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnStreamStart()
	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected empty buffer after stream start, got %q", pending)
	}

	aggregator.OnToken("Hi")
	aggregator.OnToken(" there")
	if pending := aggregator.Pending(); pending != "Hi there" {
		t.Fatalf("expected buffer %q, got %q", "Hi there", pending)
	}

	aggregator.OnStreamEnd("Hi there")

	items := log.Items()
	if len(items) != 1 {
		t.Fatalf("expected one conversation item, got %d", len(items))
	}
	if items[0].Kind != ItemKindAssistant || items[0].Text != "Hi there" {
		t.Fatalf("unexpected conversation item: %+v", items[0])
	}
	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected buffer reset after stream end, got %q", pending)
	}
}

func TestStreamAggregatorSuppressesSilenceSentinel(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnStreamStart()
	aggregator.OnToken(SilenceSentinel)
	aggregator.OnStreamEnd(SilenceSentinel)

	if items := log.Items(); len(items) != 0 {
		t.Fatalf("expected silence payload to be suppressed, got %v", items)
	}
	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected empty buffer after suppressed stream, got %q", pending)
	}
}

func TestStreamAggregatorIgnoresEmptyFinalPayload(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnStreamStart()
	aggregator.OnStreamEnd("")

	if items := log.Items(); len(items) != 0 {
		t.Fatalf("expected no item for empty payload, got %v", items)
	}
}

func TestStreamAggregatorSecondStartDiscardsPartialBuffer(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnStreamStart()
	aggregator.OnToken("partial that will be lost")
	aggregator.OnStreamStart()

	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected second stream start to reset the buffer, got %q", pending)
	}
	if items := log.Items(); len(items) != 0 {
		t.Fatalf("expected no conversation item from the discarded stream, got %v", items)
	}

	aggregator.OnToken("fresh")
	aggregator.OnStreamEnd("fresh")

	items := log.Items()
	if len(items) != 1 || items[0].Text != "fresh" {
		t.Fatalf("expected only the second stream to finalize, got %v", items)
	}
}

func TestStreamAggregatorDropsTokensOutsideStream(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnToken("stray")
	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected stray token to be dropped, got %q", pending)
	}
}

func TestStreamAggregatorResetClearsInFlightStream(t *testing.T) {
	log := newConversationLog()
	aggregator := newStreamAggregator(log)

	aggregator.OnStreamStart()
	aggregator.OnToken("in flight")
	aggregator.Reset()

	if aggregator.IsStreaming() {
		t.Fatalf("expected reset to leave the aggregator idle")
	}
	if pending := aggregator.Pending(); pending != "" {
		t.Fatalf("expected reset to clear the buffer, got %q", pending)
	}
}
