package gesture

import "fmt"

// parallelNetwork compiles Parallel(L, R). Front is the union
// of both branches' fronts; add_tokens therefore hands the same tokens to
// both sides (via the operator default), modelling "both sides must
// finish". A token is emitted upward only once both branches have completed
// it; a token completed by one side only is buffered in the half-completed
// set until the other side catches up.
type parallelNetwork struct {
	*operator
	left, right Network

	// origin records which branch first completed a still-pending token.
	// It exists only to power the debug assertion below; the pairing logic
	// itself only cares whether the token is present in origin at all: a
	// same-branch duplicate arrival before pairing is not guarded by
	// default, so its toggle-in/toggle-out quirk is preserved.
	origin map[*Token]string
}

func newParallelNetwork(cfg *config, networkID string, left, right Network) *parallelNetwork {
	op := newOperator(cfg, networkID, "par", frontUnion(left, right), left, right)
	p := &parallelNetwork{operator: op, left: left, right: right, origin: make(map[*Token]string)}

	left.OnComplete(func(tokens []*Token) { p.onBranchComplete("L", tokens) })
	right.OnComplete(func(tokens []*Token) { p.onBranchComplete("R", tokens) })

	return p
}

func (p *parallelNetwork) onBranchComplete(branch string, tokens []*Token) {
	var paired []*Token
	for _, t := range tokens {
		origin, halfComplete := p.origin[t]
		if !halfComplete {
			p.origin[t] = branch
			continue
		}
		if p.cfg.debugAssertions && origin == branch {
			panic(fmt.Sprintf("gesture: parallel saw %s complete twice from branch %q before the other branch paired it", t, branch))
		}
		delete(p.origin, t)
		paired = append(paired, t)
	}
	p.emitCompletion(paired)
}
