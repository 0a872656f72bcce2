package gesture_test

import (
	"testing"

	"github.com/pqnet/gestit/gesture"
	"github.com/pqnet/gestit/gesture/gesturetest"
)

// These scenarios walk the same end-to-end properties as the engine's
// design notes: a single positive-payload predicate, then each combinator
// composed at the root with auto-refeed engaged.

func TestScenarioSingleGroundFiresOnEachAcceptedEvent(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := gesture.Ground(gesturetest.A, func(p interface{}) bool { return p.(int) > 0 })

	fired := 0
	expr.Gesture().Subscribe(func() { fired++ })

	if _, err := expr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 5)
	sensor.Publish(gesturetest.A, 3)

	if fired != 2 {
		t.Fatalf("fired = %d, want 2 (the non-positive payload must not count)", fired)
	}
}

func TestScenarioSequenceFiresOnlyWhenBothSidesComplete(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := gesture.Seq(gesture.Ground(gesturetest.A, nil), gesture.Ground(gesturetest.B, nil))

	fired := 0
	expr.Gesture().Subscribe(func() { fired++ })

	if _, err := expr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.B, 0) // no-op: B is not armed until A completes
	if fired != 0 {
		t.Fatalf("fired = %d before A ever completed, want 0", fired)
	}

	sensor.Publish(gesturetest.A, 0)
	if fired != 0 {
		t.Fatalf("fired = %d right after A completes but before B does, want 0", fired)
	}

	sensor.Publish(gesturetest.B, 0)
	if fired != 1 {
		t.Fatalf("fired = %d, want exactly 1 once B completes the handoff", fired)
	}

	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 0)
	if fired != 1 {
		t.Fatalf("fired = %d after two more A events with no following B, want still 1", fired)
	}
}

func TestScenarioParallelPairsTokensAcrossBothBranches(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := gesture.Par(gesture.Ground(gesturetest.A, nil), gesture.Ground(gesturetest.B, nil))

	fired := 0
	expr.Gesture().Subscribe(func() { fired++ })

	if _, err := expr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	if fired != 0 {
		t.Fatalf("fired = %d after only one branch completed, want 0", fired)
	}

	sensor.Publish(gesturetest.A, 0) // a second A before B contributes: no pairing possible yet
	if fired != 0 {
		t.Fatalf("fired = %d after a second A with no B yet, want 0", fired)
	}

	sensor.Publish(gesturetest.B, 0)
	if fired != 1 {
		t.Fatalf("fired = %d once B pairs with an outstanding A completion, want exactly 1", fired)
	}
}

func TestScenarioChoiceFiresOnceForTheWinningBranch(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := gesture.Choice(gesture.Ground(gesturetest.A, nil), gesture.Ground(gesturetest.B, nil))

	fired := 0
	expr.Gesture().Subscribe(func() { fired++ })

	if _, err := expr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	if fired != 1 {
		t.Fatalf("fired = %d after the winning branch's event, want 1", fired)
	}

	// The root's auto-refeed re-arms only the specific front node whose own
	// completion triggered it, not the whole choice: the losing branch was
	// already cancelled (its token withdrawn, its subscription dropped) by
	// the winner's completion, so a stray event on its feature now finds
	// nothing subscribed and produces no firing.
	sensor.Publish(gesturetest.B, 0)
	if fired != 1 {
		t.Fatalf("fired = %d after an event on the already-cancelled losing branch, want still 1", fired)
	}
}

func TestScenarioIterFiresPerCompletionAndNeverEscapesASequence(t *testing.T) {
	sensor := gesturetest.NewMockSensor()

	// Build the inner Iter expression separately so its own Gesture can be
	// observed directly alongside the outer Sequence's.
	iterExpr := gesture.Iter(gesture.Ground(gesturetest.A, nil))
	seqExpr := gesture.Seq(iterExpr, gesture.Ground(gesturetest.B, nil))

	iterFired := 0
	iterExpr.Gesture().Subscribe(func() { iterFired++ })
	outerFired := 0
	seqExpr.Gesture().Subscribe(func() { outerFired++ })

	if _, err := seqExpr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.B, 0)

	if iterFired != 3 {
		t.Fatalf("iter fired = %d, want 3 (once per A completion)", iterFired)
	}
	if outerFired != 0 {
		t.Fatalf("outer sequence fired = %d, want 0: Iter never forwards a completion to its parent", outerFired)
	}
}

func TestScenarioIterFiresPerCompletionUnderParallelToo(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	iterExpr := gesture.Iter(gesture.Ground(gesturetest.A, nil))
	outerExpr := gesture.Par(iterExpr, gesture.Ground(gesturetest.B, nil))

	iterFired := 0
	iterExpr.Gesture().Subscribe(func() { iterFired++ })
	outerFired := 0
	outerExpr.Gesture().Subscribe(func() { outerFired++ })

	if _, err := outerExpr.Compile(sensor); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.A, 0)
	sensor.Publish(gesturetest.B, 0)
	sensor.Publish(gesturetest.B, 0)

	if iterFired != 3 {
		t.Fatalf("iter fired = %d, want 3", iterFired)
	}
	if outerFired != 0 {
		t.Fatalf("outer parallel fired = %d, want 0: pairing can never see a contribution from the Iter side", outerFired)
	}
}

func TestScenarioRemoveTokensCancelsAndDrainsSubscriptions(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := gesture.Par(gesture.Ground(gesturetest.A, nil), gesture.Ground(gesturetest.B, nil))

	net, err := expr.Compile(sensor)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	front := net.Front()
	for _, n := range front {
		if !n.Subscribed() {
			t.Fatalf("expected every front node armed right after compile")
		}
	}

	// Tokens are opaque by identity, so drive this through a fresh compile
	// with a deterministic factory that records exactly what was minted,
	// letting the test name the tokens to cancel.
	var minted []*gesture.Token
	net2, err := expr.Compile(sensor, gesture.WithTokenFactory(func() *gesture.Token {
		tok := gesture.NewToken()
		minted = append(minted, tok)
		return tok
	}))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	net2.RemoveTokens(minted)

	for _, n := range net2.Front() {
		if n.Subscribed() || n.HeldCount() != 0 {
			t.Fatalf("expected zero subscriptions and zero held tokens after cancelling every in-flight token, got subscribed=%v held=%d", n.Subscribed(), n.HeldCount())
		}
	}
}
