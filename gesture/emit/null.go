package emit

import "context"

// NullEmitter discards every event. It is the engine's default emitter so
// that observability has zero cost unless a host opts in.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that discards all events.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

// Emit is a no-op.
func (n *NullEmitter) Emit(Event) {}

// EmitBatch is a no-op.
func (n *NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

// Flush is a no-op.
func (n *NullEmitter) Flush(context.Context) error { return nil }
