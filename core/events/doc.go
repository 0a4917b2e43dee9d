// Package events defines the typed event contract for the external signal
// feed consumed by the orchestrator.
//
// Event kinds are grouped by producer-facing namespaces:
//
//   - generation.*
//   - transcription.*
//   - suggestion.*
//   - session.*
//   - meeting.*
//   - overlay.*
//
// Semantics used across the package:
//
//   - Token: append-only text fragment emitted in generation order.
//   - Final: terminal payload for the current stream; may embed the
//     silence sentinel, in which case the consumer suppresses it.
//   - Chunk: background transcription text applied in arrival order,
//     independent of any generation stream.
//
// generation events
//
//   - GenerationStarted (generation.started): a token stream began.
//   - GenerationToken (generation.token): one streamed text fragment.
//   - GenerationFinal (generation.final): the stream ended; carries the
//     assembled payload.
//
// transcription events
//
//   - TranscriptionChunk (transcription.chunk): one background
//     speech-to-text chunk.
//
// suggestion events
//
//   - LiveSuggestion (suggestion.live): an unsolicited assistant
//     suggestion produced by the live engine.
//
// session events
//
//   - SessionAutoStarted (session.auto_started): a session was begun on
//     the initiative of the meeting detector; capture is assumed to be
//     running already.
//
// meeting events
//
//   - MeetingDetected (meeting.detected): a meeting window title was
//     observed. Advisory only, no state mutation is implied.
//
// overlay events
//
//   - OverlayVisibilityChanged (overlay.visibility_changed): the overlay
//     window was shown or hidden.
package events
