package gesture

// sequenceNetwork compiles Sequence(L, R). Front equals L's
// front; each completion of L is routed as fresh tokens into R; each
// completion of R becomes the sequence's own completion.
type sequenceNetwork struct {
	*operator
	left, right Network
}

func newSequenceNetwork(cfg *config, networkID string, left, right Network) *sequenceNetwork {
	op := newOperator(cfg, networkID, "seq", left.Front, left, right)
	s := &sequenceNetwork{operator: op, left: left, right: right}

	left.OnComplete(func(tokens []*Token) {
		if err := right.AddTokens(tokens); err != nil {
			reportError(cfg, networkID, "seq", err)
		}
	})
	right.OnComplete(s.emitCompletion)

	return s
}
