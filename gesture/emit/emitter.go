package emit

import "context"

// Emitter receives observability events from a running gesture network.
//
// Implementations should be:
//   - Non-blocking: never stall the sensor callback that triggered the event.
//   - Resilient: a failing backend must not crash network execution.
//
// Emit is called synchronously from the engine's reentrant call chain; it
// must not itself trigger AddTokens/RemoveTokens.
type Emitter interface {
	// Emit sends a single event to the configured backend. Emit must not
	// panic; backend errors should be swallowed or logged internally.
	Emit(event Event)

	// EmitBatch sends multiple events in one operation. Implementations
	// should preserve event order and return an error only for
	// configuration-level failures, not per-event ones.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until all buffered events have been delivered to the
	// backend, or ctx is done. Safe to call multiple times.
	Flush(ctx context.Context) error
}
