package gesture

// Network is a compiled, executable token-flow node. Front, AddTokens,
// RemoveTokens and OnComplete together form the network handle: operations
// intended primarily for the engine's own wiring. Host code normally
// interacts with a compiled expression via its Gesture broadcast instead.
type Network interface {
	// Front returns the ground-term nodes currently eligible to accept
	// fresh tokens. For a Ground expression this is {self}; for the
	// combinators it is derived from their children.
	Front() []*GroundNode

	// AddTokens injects tokens at the network's front. It returns
	// ErrSubscriptionFailed (wrapped) if establishing a sensor subscription
	// failed; on error the network's observable token state is left
	// exactly as it was before the call.
	AddTokens(tokens []*Token) error

	// RemoveTokens withdraws tokens from the entire sub-network — every
	// direct child is asked to remove them, not just the front, because a
	// token may be waiting at any depth (e.g. the right side of a
	// Sequence). Removing a token that is not held is a silent no-op.
	RemoveTokens(tokens []*Token)

	// OnComplete registers a listener invoked with the token set this
	// network completes. Multiple listeners may be registered; they are
	// invoked in registration order. A network that is specified to never
	// complete (Iter) still accepts listeners but never invokes them.
	OnComplete(listener func(tokens []*Token))
}
