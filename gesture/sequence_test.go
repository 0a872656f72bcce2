package gesture

import (
	"testing"

	"github.com/pqnet/gestit/gesture/gesturetest"
)

func TestSequenceFrontIsLeftFrontOnly(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	cfg := newConfig(nil)
	left := newGroundNode(sensor, Feature(gesturetest.A), nil, cfg, "net")
	right := newGroundNode(sensor, Feature(gesturetest.B), nil, cfg, "net")

	seq := newSequenceNetwork(cfg, "net", left, right)
	front := seq.Front()
	if len(front) != 1 || front[0] != left {
		t.Fatalf("Sequence.Front() must equal left's front exactly")
	}
}

func TestSequenceRoutesLeftCompletionIntoRight(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	cfg := newConfig(nil)
	left := newGroundNode(sensor, Feature(gesturetest.A), nil, cfg, "net")
	right := newGroundNode(sensor, Feature(gesturetest.B), nil, cfg, "net")
	seq := newSequenceNetwork(cfg, "net", left, right)

	var completed []*Token
	seq.OnComplete(func(tokens []*Token) { completed = tokens })

	tok := &Token{id: 1}
	if err := seq.AddTokens([]*Token{tok}); err != nil {
		t.Fatalf("AddTokens: %v", err)
	}
	if !left.Subscribed() || right.Subscribed() {
		t.Fatalf("only left should be armed before any event arrives")
	}

	sensor.Publish(gesturetest.A, 0)
	if left.Subscribed() || !right.Subscribed() {
		t.Fatalf("left completing must hand the token to right")
	}
	if completed != nil {
		t.Fatalf("the sequence must not complete until right also fires")
	}

	sensor.Publish(gesturetest.B, 0)
	if len(completed) != 1 || completed[0] != tok {
		t.Fatalf("the sequence must complete with the original token once right fires")
	}
}
