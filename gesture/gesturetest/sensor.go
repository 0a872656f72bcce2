// Package gesturetest provides fixtures shared by the gesture package's
// scenario tests: a mock sensor over the {A, B, C} feature enum with
// integer payloads.
package gesturetest

import "github.com/pqnet/gestit/gesture"

// Feature enumerates the mock sensor's finite feature set.
type Feature string

// The three features used throughout the scenario fixtures.
const (
	A Feature = "A"
	B Feature = "B"
	C Feature = "C"
)

type subscription struct {
	cancel func()
}

func (s *subscription) Cancel() { s.cancel() }

// MockSensor is an in-process Sensor whose events carry an integer payload.
// It is not thread-safe, matching the engine's single-threaded delivery
// model: Publish must be called from one goroutine only.
type MockSensor struct {
	handlers map[gesture.Feature][]*entry
}

type entry struct {
	handler   gesture.Handler
	cancelled bool
}

// NewMockSensor returns an empty MockSensor.
func NewMockSensor() *MockSensor {
	return &MockSensor{handlers: make(map[gesture.Feature][]*entry)}
}

// Subscribe registers h for feature and returns a cancel handle.
func (s *MockSensor) Subscribe(feature gesture.Feature, h gesture.Handler) (gesture.Subscription, error) {
	e := &entry{handler: h}
	s.handlers[feature] = append(s.handlers[feature], e)
	return &subscription{cancel: func() { e.cancelled = true }}, nil
}

// Publish delivers one event to every live subscriber of its feature, in
// subscription order.
func (s *MockSensor) Publish(feature Feature, payload int) {
	entries := s.handlers[gesture.Feature(feature)]
	live := entries[:0]
	for _, e := range entries {
		if e.cancelled {
			continue
		}
		live = append(live, e)
	}
	s.handlers[gesture.Feature(feature)] = live

	// Snapshot before calling out: a handler firing may subscribe again
	// synchronously within this same Publish call, and that new
	// subscription must not be double-delivered this round.
	snapshot := make([]*entry, len(live))
	copy(snapshot, live)
	for _, e := range snapshot {
		if !e.cancelled {
			e.handler(gesture.Event{Feature: gesture.Feature(feature), Payload: payload})
		}
	}
}

// SubscriptionCount reports how many live subscriptions exist for feature,
// used to verify the subscription-economy invariant.
func (s *MockSensor) SubscriptionCount(feature Feature) int {
	n := 0
	for _, e := range s.handlers[gesture.Feature(feature)] {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// FailingSensor always refuses to subscribe, for exercising the
// subscription-failure policy.
type FailingSensor struct {
	Err error
}

// Subscribe always returns f.Err (or a default error if unset).
func (f *FailingSensor) Subscribe(gesture.Feature, gesture.Handler) (gesture.Subscription, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, errDefault
}

var errDefault = defaultErr{}

type defaultErr struct{}

func (defaultErr) Error() string { return "gesturetest: subscription refused" }
