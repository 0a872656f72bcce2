package gesture

import "fmt"

// GroundNode is the network compiled from a Ground expression: a leaf that
// binds one feature tag and an optional predicate to the sensor stream.
//
// Invariant: GroundNode holds a live sensor subscription if and only if
// its held-token set is non-empty. The subscribe/unsubscribe transitions
// only happen at the empty↔non-empty boundary, never on every
// AddTokens/RemoveTokens call.
type GroundNode struct {
	sensor    Sensor
	feature   Feature
	predicate Predicate

	held      map[*Token]struct{}
	sub       Subscription
	listeners []func([]*Token)

	cfg       *config
	networkID string
}

func newGroundNode(sensor Sensor, feature Feature, predicate Predicate, cfg *config, networkID string) *GroundNode {
	return &GroundNode{
		sensor:    sensor,
		feature:   feature,
		predicate: predicate,
		held:      make(map[*Token]struct{}),
		cfg:       cfg,
		networkID: networkID,
	}
}

// Front returns {self}: a ground node is its own entire front set.
func (g *GroundNode) Front() []*GroundNode { return []*GroundNode{g} }

// AddTokens adds each token to the held set. If the node held no tokens
// before this call, it subscribes to the sensor now; if that subscription
// fails, every token added by this call is rolled back and
// ErrSubscriptionFailed is returned, leaving the node's observable state
// unchanged.
func (g *GroundNode) AddTokens(tokens []*Token) error {
	if len(tokens) == 0 {
		return nil
	}
	wasEmpty := len(g.held) == 0
	for _, t := range tokens {
		g.held[t] = struct{}{}
	}

	if wasEmpty {
		sub, err := g.sensor.Subscribe(g.feature, g.handle)
		if err != nil {
			for _, t := range tokens {
				delete(g.held, t)
			}
			return fmt.Errorf("%w: %v", ErrSubscriptionFailed, err)
		}
		g.sub = sub
		g.cfg.metrics.subscribe(g.feature)
		g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "subscribe", nil))
	}

	g.cfg.metrics.tokensChanged(g.networkID, len(tokens))
	g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "add_tokens", map[string]interface{}{"tokens": len(tokens)}))
	return nil
}

// RemoveTokens withdraws each of tokens from the held set, if present.
// Withdrawing an absent token is a silent no-op. If the held set becomes
// empty, the sensor subscription is cancelled.
func (g *GroundNode) RemoveTokens(tokens []*Token) {
	removed := 0
	for _, t := range tokens {
		if _, ok := g.held[t]; ok {
			delete(g.held, t)
			removed++
		}
	}
	if removed == 0 {
		return
	}
	g.cfg.metrics.tokensChanged(g.networkID, -removed)
	g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "remove_tokens", map[string]interface{}{"tokens": removed}))

	if len(g.held) == 0 && g.sub != nil {
		g.sub.Cancel()
		g.sub = nil
		g.cfg.metrics.unsubscribe(g.feature)
		g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "unsubscribe", nil))
	}
}

// OnComplete registers a completion listener.
func (g *GroundNode) OnComplete(listener func([]*Token)) {
	g.listeners = append(g.listeners, listener)
}

// handle is the sensor callback. It swaps the held set and
// drops the subscription *before* emitting the completion, so a downstream
// subscription installed synchronously while the completion is in flight is
// not immediately torn down by this call re-running (it can't: held is
// already swapped to empty).
func (g *GroundNode) handle(e Event) {
	if e.Feature != g.feature {
		return
	}
	if g.predicate != nil && !g.predicate(e.Payload) {
		return
	}

	completed := g.held
	g.held = make(map[*Token]struct{})
	if g.sub != nil {
		g.sub.Cancel()
		g.sub = nil
		g.cfg.metrics.unsubscribe(g.feature)
		g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "unsubscribe", nil))
	}
	g.cfg.metrics.tokensChanged(g.networkID, -len(completed))

	if len(completed) == 0 {
		return
	}
	tokens := make([]*Token, 0, len(completed))
	for t := range completed {
		tokens = append(tokens, t)
	}

	g.cfg.metrics.completion(g.networkID, "ground")
	g.cfg.emitter.Emit(g.cfg.newEvent(g.networkID, g.kind(), "complete", map[string]interface{}{"tokens": len(tokens)}))

	for _, listener := range g.listeners {
		listener(tokens)
	}
}

// HeldCount reports how many tokens are currently held. Exposed for tests
// that verify the subscription-economy invariant directly.
func (g *GroundNode) HeldCount() int { return len(g.held) }

// Subscribed reports whether the node currently holds a live subscription.
func (g *GroundNode) Subscribed() bool { return g.sub != nil }

func (g *GroundNode) kind() string {
	return fmt.Sprintf("ground:%v", g.feature)
}
