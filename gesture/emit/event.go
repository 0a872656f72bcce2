// Package emit provides event emission and observability for the gesture
// network, mirroring the pluggable-backend approach of a workflow-execution
// emitter: the engine calls Emit synchronously in its own call chain, so
// whatever an Emit implementation does (e.g. LogEmitter's writes) runs on
// that chain.
package emit

// Event represents one observability event raised during gesture-network
// execution.
//
// Events give visibility into:
//   - ground-term subscribe / unsubscribe
//   - token admission and withdrawal
//   - combinator completions
//   - root auto-refeed
//   - per-expression Gesture firings
type Event struct {
	// RunID identifies the compiled network instance that raised the event
	// ("net-" followed by the address of that compile's configuration, so
	// each Compile call gets its own RunID).
	RunID string

	// Step is this event's sequence number within its network, starting at
	// 1 for the network's first emitted event and advancing by one on every
	// subsequent Emit call from that network, regardless of Msg.
	Step int

	// NodeID identifies the node that raised the event, e.g. "ground:A",
	// "seq", "par", "choice", "iter".
	NodeID string

	// Msg is one of: "subscribe", "unsubscribe", "add_tokens",
	// "remove_tokens", "complete", "refeed", "gesture", "error".
	Msg string

	// Meta carries event-specific structured data, commonly "tokens" (an
	// int count), and "error" (the error message) on "error" events.
	Meta map[string]interface{}
}
