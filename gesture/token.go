// Package gesture implements the gesture-recognition engine: a combinator
// library that compiles declarative gesture expressions into a runtime
// token-flow network and fires a Gesture event whenever an instance of the
// described gesture is recognized.
package gesture

// Token is an opaque flow marker. Two tokens are equal only if they are the
// same instance; Token carries no payload of its own.
//
// Tokens are created by the root driver when a network is armed or a
// sub-gesture completes, and destroyed when a combinator merges flows
// (Parallel, Iter re-injection) or Choice discards a losing branch.
type Token struct {
	// id is a diagnostic label for logs and tests: tokens minted by the same
	// factory print distinctly, but ids restart at 1 for every factory and
	// NewToken leaves it at 0. It plays no part in equality, which is Go's
	// native pointer identity.
	id uint64
}

// TokenFactory mints fresh tokens. The default factory hands out
// monotonically increasing ids from an unshared counter; tests that need to
// recognize specific tokens can override it via WithTokenFactory.
type TokenFactory func() *Token

// NewToken mints a standalone token with no ties to any compiled network's
// own factory. Exposed for callers that need to drive AddTokens or
// RemoveTokens directly with a token whose identity they control. Its id is
// 0, so every such token prints as "token#0".
func NewToken() *Token {
	return &Token{}
}

func defaultTokenFactory() TokenFactory {
	var next uint64
	return func() *Token {
		next++
		return &Token{id: next}
	}
}

// String returns a short diagnostic label; it is not part of Token's
// identity.
func (t *Token) String() string {
	if t == nil {
		return "token(nil)"
	}
	return "token#" + uitoa(t.id)
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
