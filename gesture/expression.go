package gesture

import "fmt"

// Expression is an immutable algebraic description of a gesture: a ground
// term, or one of the four combinators over two expressions (Sequence,
// Parallel, Choice) or one (Iter). Compile is pure with respect to the
// expression: it may be called any number of times and yields an
// independent network each time.
type Expression interface {
	// Compile performs root compile: internal compile of
	// the expression tree, wrapped with the auto-refeed policy that keeps
	// the returned network continuously armed.
	Compile(sensor Sensor, opts ...Option) (Network, error)

	// Gesture returns the broadcast this expression fires on every
	// completion its compiled root recognizes. The same
	// Gesture value is shared by every network compiled from this
	// Expression value.
	Gesture() *Gesture

	// compileInternal produces a network whose completion signal is
	// observable to the parent combinator; used when embedding this
	// expression inside another.
	compileInternal(sensor Sensor, cfg *config, networkID string) Network
}

// Gesture is a one-producer, many-listener broadcast, fired once per
// recognized instance of the gesture it belongs to. Subscribe is normally
// called once per listener before the owning expression is compiled, but
// nothing prevents subscribing to an already-running network's expression.
type Gesture struct {
	listeners []func()
}

func newGesture() *Gesture { return &Gesture{} }

// Subscribe registers fn to be called on every firing.
func (g *Gesture) Subscribe(fn func()) {
	g.listeners = append(g.listeners, fn)
}

func (g *Gesture) fire() {
	for _, fn := range g.listeners {
		fn()
	}
}

// wireGesture hooks net's completion signal to fire g, per the generic rule
// shared by every combinator. Iter overrides this in practice: its network
// completion is permanently silent, so this subscription is harmless but
// inert for Iter — Iter fires its Gesture directly instead.
func wireGesture(net Network, g *Gesture) {
	net.OnComplete(func([]*Token) { g.fire() })
}

// --- constructors -----------------------------------------------------

type groundExpr struct {
	feature   Feature
	predicate Predicate
	gesture   *Gesture
}

// Ground builds a leaf expression matching events tagged with feature. A
// nil predicate means "always true" once the feature matches.
func Ground(feature Feature, predicate Predicate) Expression {
	return &groundExpr{feature: feature, predicate: predicate, gesture: newGesture()}
}

func (e *groundExpr) Gesture() *Gesture { return e.gesture }

func (e *groundExpr) Compile(sensor Sensor, opts ...Option) (Network, error) {
	return rootCompile(e, sensor, opts)
}

func (e *groundExpr) compileInternal(sensor Sensor, cfg *config, networkID string) Network {
	node := newGroundNode(sensor, e.feature, e.predicate, cfg, networkID)
	wireGesture(node, e.gesture)
	return node
}

type seqExpr struct {
	left, right Expression
	gesture     *Gesture
}

// Seq builds the sequence combinator L ; R: a token
// traverses left fully, then right fully, before becoming visible upward.
func Seq(left, right Expression) Expression {
	return &seqExpr{left: left, right: right, gesture: newGesture()}
}

func (e *seqExpr) Gesture() *Gesture { return e.gesture }

func (e *seqExpr) Compile(sensor Sensor, opts ...Option) (Network, error) {
	return rootCompile(e, sensor, opts)
}

func (e *seqExpr) compileInternal(sensor Sensor, cfg *config, networkID string) Network {
	left := e.left.compileInternal(sensor, cfg, networkID)
	right := e.right.compileInternal(sensor, cfg, networkID)
	net := newSequenceNetwork(cfg, networkID, left, right)
	wireGesture(net, e.gesture)
	return net
}

type parExpr struct {
	left, right Expression
	gesture     *Gesture
}

// Par builds the parallel combinator L ‖ R: a token is
// emitted upward only once both branches have completed it.
func Par(left, right Expression) Expression {
	return &parExpr{left: left, right: right, gesture: newGesture()}
}

func (e *parExpr) Gesture() *Gesture { return e.gesture }

func (e *parExpr) Compile(sensor Sensor, opts ...Option) (Network, error) {
	return rootCompile(e, sensor, opts)
}

func (e *parExpr) compileInternal(sensor Sensor, cfg *config, networkID string) Network {
	left := e.left.compileInternal(sensor, cfg, networkID)
	right := e.right.compileInternal(sensor, cfg, networkID)
	net := newParallelNetwork(cfg, networkID, left, right)
	wireGesture(net, e.gesture)
	return net
}

type choiceExpr struct {
	left, right Expression
	gesture     *Gesture
}

// Choice builds the choice combinator L ⊕ R: the first
// branch to recognize wins and cancels the other's partial progress.
func Choice(left, right Expression) Expression {
	return &choiceExpr{left: left, right: right, gesture: newGesture()}
}

func (e *choiceExpr) Gesture() *Gesture { return e.gesture }

func (e *choiceExpr) Compile(sensor Sensor, opts ...Option) (Network, error) {
	return rootCompile(e, sensor, opts)
}

func (e *choiceExpr) compileInternal(sensor Sensor, cfg *config, networkID string) Network {
	left := e.left.compileInternal(sensor, cfg, networkID)
	right := e.right.compileInternal(sensor, cfg, networkID)
	net := newChoiceNetwork(cfg, networkID, left, right)
	wireGesture(net, e.gesture)
	return net
}

type iterExpr struct {
	body    Expression
	gesture *Gesture
}

// Iter builds the iteration combinator X*: every completion
// of the body is fed back as fresh tokens at the body's front, and raises
// this expression's Gesture per completion. Iter never emits a completion
// upward; see iterNetwork's doc comment for the consequence of composing it
// under Sequence.
func Iter(body Expression) Expression {
	return &iterExpr{body: body, gesture: newGesture()}
}

func (e *iterExpr) Gesture() *Gesture { return e.gesture }

func (e *iterExpr) Compile(sensor Sensor, opts ...Option) (Network, error) {
	return rootCompile(e, sensor, opts)
}

func (e *iterExpr) compileInternal(sensor Sensor, cfg *config, networkID string) Network {
	body := e.body.compileInternal(sensor, cfg, networkID)
	net := newIterNetwork(cfg, networkID, body, e.gesture)
	wireGesture(net, e.gesture)
	return net
}

// --- root compile -------------------------------------------------------

// rootCompile wraps internal compile with the auto-refeed policy: it
// subscribes every front node's own completion to a handler that injects
// one fresh token directly at that node, then injects one initial token at
// the whole network's front.
//
// Re-arming must target the specific node that just completed, not the
// network as a whole: AddTokens on the aggregate network forwards to every
// node in Front(), which for a Choice is the union of both branches. That
// would re-arm the branch a Choice has already cancelled in the very same
// completion chain as the winner's completion, letting an already-decided
// race answer a later event a second time. Re-arming only the node whose
// own OnComplete fired keeps a cancelled sibling cancelled.
func rootCompile(e Expression, sensor Sensor, opts []Option) (Network, error) {
	cfg := newConfig(opts)
	networkID := fmt.Sprintf("net-%p", cfg)

	net := e.compileInternal(sensor, cfg, networkID)

	for _, front := range net.Front() {
		front.OnComplete(func([]*Token) {
			cfg.metrics.refeed(networkID)
			cfg.emitter.Emit(cfg.newEvent(networkID, "root", "refeed", nil))
			if err := front.AddTokens([]*Token{cfg.tokenFactory()}); err != nil {
				reportError(cfg, networkID, "root", err)
			}
		})
	}

	if err := net.AddTokens([]*Token{cfg.tokenFactory()}); err != nil {
		return nil, err
	}
	return net, nil
}
