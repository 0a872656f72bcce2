package gesture

import "errors"

// operator is the scaffold shared by Sequence, Parallel, Choice and Iter
// networks. Rather than overriding Front via inheritance, each combinator
// supplies a front
// provider closure; AddTokens and RemoveTokens use the scaffold's default
// behaviour unless a combinator overrides them directly.
type operator struct {
	children  []Network
	frontFn   func() []*GroundNode
	listeners []func([]*Token)

	cfg       *config
	networkID string
	kind      string
}

func newOperator(cfg *config, networkID, kind string, frontFn func() []*GroundNode, children ...Network) *operator {
	return &operator{
		cfg:       cfg,
		networkID: networkID,
		kind:      kind,
		frontFn:   frontFn,
		children:  children,
	}
}

// Front returns the combinator's front set, computed by the front provider.
func (o *operator) Front() []*GroundNode { return o.frontFn() }

// AddTokens forwards tokens to every node in Front. If any node fails to
// accept them, the tokens are withdrawn again from the nodes that did, and
// the joined errors are returned.
func (o *operator) AddTokens(tokens []*Token) error {
	if len(tokens) == 0 {
		return nil
	}
	var errs []error
	var accepted []*GroundNode
	for _, n := range o.Front() {
		if err := n.AddTokens(tokens); err != nil {
			errs = append(errs, err)
			continue
		}
		accepted = append(accepted, n)
	}
	if len(errs) > 0 {
		for _, n := range accepted {
			n.RemoveTokens(tokens)
		}
	}
	return errors.Join(errs...)
}

// RemoveTokens forwards to every direct child network, not just the front,
// because tokens may be waiting at any depth.
func (o *operator) RemoveTokens(tokens []*Token) {
	for _, c := range o.children {
		c.RemoveTokens(tokens)
	}
}

// OnComplete registers a listener on this operator's own completion signal.
func (o *operator) OnComplete(listener func([]*Token)) {
	o.listeners = append(o.listeners, listener)
}

// emitCompletion invokes every registered completion listener with tokens, and raises
// the corresponding observability/metrics signals. A combinator that never
// completes (Iter) simply never calls this method.
func (o *operator) emitCompletion(tokens []*Token) {
	if len(tokens) == 0 {
		return
	}
	o.cfg.metrics.completion(o.networkID, o.kind)
	o.cfg.emitter.Emit(o.cfg.newEvent(o.networkID, o.kind, "complete", map[string]interface{}{"tokens": len(tokens)}))
	for _, listener := range o.listeners {
		listener(tokens)
	}
}

// frontUnion computes the deduplicated union of two children's front sets,
// used by Parallel and Choice.
func frontUnion(a, b Network) func() []*GroundNode {
	return func() []*GroundNode {
		seen := make(map[*GroundNode]struct{})
		var out []*GroundNode
		for _, n := range a.Front() {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
		for _, n := range b.Front() {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
		return out
	}
}
