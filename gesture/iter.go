package gesture

// iterNetwork compiles Iter(X). Front equals X's front. Iter
// never emits an upward completion — its outer completion signal is silent
// by design, so any listener registered via OnComplete is retained but
// never invoked. Instead, every completion of the body is immediately fed
// back as fresh tokens at the body's front, and raises the *expression's*
// Gesture broadcast directly (not the network completion path every other
// combinator uses), since that is the only signal Iter ever produces.
//
// Open question: composing Iter directly as the left child of
// a Sequence stalls that Sequence forever, because Sequence waits on a
// completion that Iter will never deliver. This is intentional — documented
// here rather than silently changed.
type iterNetwork struct {
	*operator
	body Network
}

func newIterNetwork(cfg *config, networkID string, body Network, gesture *Gesture) *iterNetwork {
	op := newOperator(cfg, networkID, "iter", body.Front, body)
	it := &iterNetwork{operator: op, body: body}

	body.OnComplete(func(tokens []*Token) {
		if err := body.AddTokens(tokens); err != nil {
			reportError(cfg, networkID, "iter", err)
		}
		cfg.metrics.gestureEvent(networkID)
		cfg.emitter.Emit(cfg.newEvent(networkID, "iter", "gesture", map[string]interface{}{"tokens": len(tokens)}))
		gesture.fire()
	})

	return it
}
