package gesture

// Feature is a value from the finite, equality-comparable enumeration a
// Sensor publishes. The engine treats it as opaque; it never inspects a
// Feature beyond `==`.
type Feature interface{}

// Event is a sensor event: a feature tag plus an opaque payload that
// predicates inspect. The engine never looks inside Payload.
type Event struct {
	Feature Feature
	Payload interface{}
}

// Predicate is a pure function over an event payload. A nil Predicate means
// "always true". Predicates may close over ambient state (e.g. a frame
// history) but must not mutate engine state.
type Predicate func(payload interface{}) bool

// Handler receives sensor events published for a single feature.
type Handler func(Event)

// Subscription is the handle returned by Sensor.Subscribe. Cancel is
// idempotent: calling it more than once has no additional effect.
type Subscription interface {
	Cancel()
}

// Sensor is the abstract event source the engine consumes. Any
// publish/subscribe event stream whose items carry a feature tag and an
// opaque payload satisfies this port; the engine never depends on a
// concrete driver.
type Sensor interface {
	// Subscribe registers h to be called for every event matching feature.
	// It returns an error if the underlying transport cannot establish the
	// subscription; on error the caller's state must be left unmodified.
	Subscribe(feature Feature, h Handler) (Subscription, error)
}
