package gesture

import "github.com/pqnet/gestit/gesture/emit"

// newEvent builds the event for one observability point and stamps it with
// cfg's step counter, which advances by one on every event this network's
// compile emits — the only way a host sees a consistent completion ordering
// out of BufferedEmitter/OTelEmitter without also wiring a wall clock.
func (cfg *config) newEvent(networkID, nodeID, msg string, meta map[string]interface{}) emit.Event {
	cfg.step++
	return emit.Event{RunID: networkID, Step: cfg.step, NodeID: nodeID, Msg: msg, Meta: meta}
}

// reportError surfaces an error that occurs deep inside a reentrant
// completion chain, where there is no caller left to return it to (e.g. a
// downstream AddTokens failing while routing a Sequence/Iter completion, or
// the root auto-refeed failing). The engine has no fatal internal error
// class, so this is best-effort observability rather than a recovery
// mechanism: the tokens involved are already gone.
func reportError(cfg *config, networkID, nodeID string, err error) {
	cfg.emitter.Emit(cfg.newEvent(networkID, nodeID, "error", map[string]interface{}{"error": err.Error()}))
}
