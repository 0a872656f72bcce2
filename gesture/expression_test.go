package gesture

import (
	"testing"

	"github.com/pqnet/gestit/gesture/gesturetest"
)

func TestRootCompileArmsFrontImmediately(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := Ground(Feature(gesturetest.A), nil)

	net, err := expr.Compile(sensor)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	front := net.Front()
	if len(front) != 1 || !front[0].Subscribed() {
		t.Fatalf("root compile must leave the front armed with a live subscription")
	}
}

func TestRootCompilePropagatesInitialSubscriptionFailure(t *testing.T) {
	expr := Ground(Feature(gesturetest.A), nil)
	_, err := expr.Compile(&gesturetest.FailingSensor{})
	if err == nil {
		t.Fatalf("expected Compile to surface the sensor's refusal to subscribe")
	}
}

func TestRootAutoRefeedRearmsAfterEveryFrontCompletion(t *testing.T) {
	sensor := gesturetest.NewMockSensor()
	expr := Ground(Feature(gesturetest.A), func(p interface{}) bool { return p.(int) > 0 })

	var fired int
	expr.Gesture().Subscribe(func() { fired++ })

	net, err := expr.Compile(sensor)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensor.Publish(gesturetest.A, 0)
	if fired != 0 {
		t.Fatalf("a rejected event must not fire the gesture")
	}
	if !net.Front()[0].Subscribed() {
		t.Fatalf("a rejected event must leave the front armed")
	}

	sensor.Publish(gesturetest.A, 5)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after the first accepted event", fired)
	}
	if !net.Front()[0].Subscribed() {
		t.Fatalf("the root must re-arm the front immediately after a completion")
	}

	sensor.Publish(gesturetest.A, 3)
	if fired != 2 {
		t.Fatalf("fired = %d, want 2 after the second accepted event", fired)
	}
}

func TestGestureSubscribersAllReceiveEachFiring(t *testing.T) {
	g := newGesture()
	var a, b int
	g.Subscribe(func() { a++ })
	g.Subscribe(func() { b++ })

	g.fire()
	g.fire()

	if a != 2 || b != 2 {
		t.Fatalf("every subscriber must observe every firing, got a=%d b=%d", a, b)
	}
}

func TestEachCompileProducesAnIndependentNetwork(t *testing.T) {
	sensorA := gesturetest.NewMockSensor()
	sensorB := gesturetest.NewMockSensor()
	expr := Ground(Feature(gesturetest.A), nil)

	var fired int
	expr.Gesture().Subscribe(func() { fired++ })

	if _, err := expr.Compile(sensorA); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := expr.Compile(sensorB); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	sensorA.Publish(gesturetest.A, 0)
	if fired != 1 {
		t.Fatalf("firing on one compiled network must not require the other to also receive the event")
	}

	sensorB.Publish(gesturetest.A, 0)
	if fired != 2 {
		t.Fatalf("both independently compiled networks must still drive the shared Gesture broadcast")
	}
}
