package gesture

// choiceNetwork compiles Choice(L, R). Front is the union of
// both branches' fronts. Whichever branch completes a token first wins: the
// same token is withdrawn from the other branch (cancelling its partial
// progress) and emitted upward immediately.
type choiceNetwork struct {
	*operator
	left, right Network
}

func newChoiceNetwork(cfg *config, networkID string, left, right Network) *choiceNetwork {
	op := newOperator(cfg, networkID, "choice", frontUnion(left, right), left, right)
	c := &choiceNetwork{operator: op, left: left, right: right}

	left.OnComplete(func(tokens []*Token) {
		right.RemoveTokens(tokens)
		c.emitCompletion(tokens)
	})
	right.OnComplete(func(tokens []*Token) {
		left.RemoveTokens(tokens)
		c.emitCompletion(tokens)
	})

	return c
}
