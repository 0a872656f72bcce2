package gesture

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/pqnet/gestit/gesture/emit"
)

// Option configures a Compile call. Options are applied in order, so a
// later WithEmitter/WithTracer wins over an earlier one.
type Option func(*config)

type config struct {
	emitter         emit.Emitter
	metrics         *Metrics
	tokenFactory    TokenFactory
	debugAssertions bool

	// step is this network's monotonically increasing event counter, stamped
	// onto every emit.Event by newEvent. It belongs on config rather than on
	// any one node because it orders events across the whole compiled
	// network, not just one node's own activity.
	step int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		emitter:      emit.NewNullEmitter(),
		tokenFactory: defaultTokenFactory(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithEmitter routes observability events to e instead of discarding them.
func WithEmitter(e emit.Emitter) Option {
	return func(cfg *config) { cfg.emitter = e }
}

// WithTracer is a convenience over WithEmitter(emit.NewOTelEmitter(t)).
func WithTracer(t trace.Tracer) Option {
	return func(cfg *config) { cfg.emitter = emit.NewOTelEmitter(t) }
}

// WithMetrics attaches Prometheus instrumentation to the compiled network.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) { cfg.metrics = m }
}

// WithTokenFactory overrides token minting. Primarily useful in tests that
// need to recognize specific token values (e.g. to verify invariant 7's
// re-arming behavior deterministically).
func WithTokenFactory(f TokenFactory) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.tokenFactory = f
		}
	}
}

// WithDebugAssertions enables debug-only checks such as Parallel's
// half-completed-set duplicate-arrival assertion. Disabled
// by default since the checked conditions "should not happen by
// construction" and the assertions exist only to surface a construction bug
// loudly during development.
func WithDebugAssertions() Option {
	return func(cfg *config) { cfg.debugAssertions = true }
}
