package gesture

import (
	"testing"

	"github.com/pqnet/gestit/gesture/gesturetest"
)

const featA gesturetest.Feature = gesturetest.A

func newTestGround(t *testing.T, sensor Sensor, predicate Predicate) *GroundNode {
	t.Helper()
	cfg := newConfig(nil)
	return newGroundNode(sensor, Feature(featA), predicate, cfg, "net-test")
}

func TestGroundNodeSubscriptionEconomy(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	g := newTestGround(t, sensor, nil)

	if g.Subscribed() {
		t.Fatalf("node must not be subscribed before any tokens are held")
	}

	tok := &Token{id: 1}
	if err := g.AddTokens([]*Token{tok}); err != nil {
		t.Fatalf("AddTokens: %v", err)
	}
	if !g.Subscribed() || g.HeldCount() != 1 {
		t.Fatalf("expected subscribed with 1 held token, got subscribed=%v held=%d", g.Subscribed(), g.HeldCount())
	}
	if n := sensor.SubscriptionCount(gesturetest.A); n != 1 {
		t.Fatalf("sensor subscription count = %d, want 1", n)
	}

	tok2 := &Token{id: 2}
	if err := g.AddTokens([]*Token{tok2}); err != nil {
		t.Fatalf("AddTokens: %v", err)
	}
	if n := sensor.SubscriptionCount(gesturetest.A); n != 1 {
		t.Fatalf("adding to a non-empty node must not create a second subscription, got %d", n)
	}

	g.RemoveTokens([]*Token{tok})
	if !g.Subscribed() || g.HeldCount() != 1 {
		t.Fatalf("removing one of two tokens must keep the subscription alive")
	}

	g.RemoveTokens([]*Token{tok2})
	if g.Subscribed() || g.HeldCount() != 0 {
		t.Fatalf("removing the last token must cancel the subscription")
	}
	if n := sensor.SubscriptionCount(gesturetest.A); n != 0 {
		t.Fatalf("sensor subscription count after drain = %d, want 0", n)
	}
}

func TestGroundNodeRemoveAbsentTokenIsNoop(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	g := newTestGround(t, sensor, nil)

	tok := &Token{id: 1}
	_ = g.AddTokens([]*Token{tok})

	g.RemoveTokens([]*Token{{id: 99}})
	if g.HeldCount() != 1 || !g.Subscribed() {
		t.Fatalf("removing an absent token must not disturb held state")
	}
}

func TestGroundNodeFeatureMismatchIgnored(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	g := newTestGround(t, sensor, nil)
	_ = g.AddTokens([]*Token{{id: 1}})

	fired := false
	g.OnComplete(func([]*Token) { fired = true })

	sensor.Publish(gesturetest.B, 0)
	if fired {
		t.Fatalf("an event for an unrelated feature must not complete the node")
	}
	if g.HeldCount() != 1 {
		t.Fatalf("held count changed on an unrelated event")
	}
}

func TestGroundNodePredicateFalseIgnored(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	g := newTestGround(t, sensor, func(payload interface{}) bool { return payload.(int) > 10 })
	_ = g.AddTokens([]*Token{{id: 1}})

	fired := false
	g.OnComplete(func([]*Token) { fired = true })

	sensor.Publish(gesturetest.A, 3)
	if fired {
		t.Fatalf("predicate returning false must not complete the node")
	}
	if g.HeldCount() != 1 || !g.Subscribed() {
		t.Fatalf("a rejected event must leave held state untouched")
	}

	sensor.Publish(gesturetest.A, 20)
	if !fired {
		t.Fatalf("predicate returning true must complete the node")
	}
}

func TestGroundNodeSwapBeforeUnsubscribeBeforeEmit(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	g := newTestGround(t, sensor, nil)
	_ = g.AddTokens([]*Token{{id: 1}})

	var heldDuringListener int
	var subscribedDuringListener bool
	g.OnComplete(func([]*Token) {
		heldDuringListener = g.HeldCount()
		subscribedDuringListener = g.Subscribed()
		// A listener may re-arm the node synchronously; this must not be
		// torn down by this same handle() call unwinding.
		_ = g.AddTokens([]*Token{{id: 2}})
	})

	sensor.Publish(gesturetest.A, 0)

	if heldDuringListener != 0 {
		t.Fatalf("held set must already be swapped to empty before listeners run, got %d", heldDuringListener)
	}
	if subscribedDuringListener {
		t.Fatalf("subscription must already be cancelled before listeners run")
	}
	if g.HeldCount() != 1 || !g.Subscribed() {
		t.Fatalf("re-arming from within the completion listener must survive, got held=%d subscribed=%v", g.HeldCount(), g.Subscribed())
	}
}

func TestGroundNodeAddTokensRollsBackOnSubscribeFailure(t *testing.T) {
	sensor := &gesturetest.FailingSensor{}
	g := newTestGround(t, sensor, nil)

	err := g.AddTokens([]*Token{{id: 1}})
	if err == nil {
		t.Fatalf("expected an error when the sensor refuses to subscribe")
	}
	if g.HeldCount() != 0 {
		t.Fatalf("a failed subscribe must roll back the tokens it was about to add, held=%d", g.HeldCount())
	}
}
