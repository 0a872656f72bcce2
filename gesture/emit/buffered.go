package emit

import (
	"context"
	"sync"
)

// BufferedEmitter stores every event in memory, organized by RunID, and
// offers simple query/filter access. Intended for tests and interactive
// debugging; not meant for long-running production networks since it never
// evicts events on its own (call Clear periodically).
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// NewBufferedEmitter returns an empty BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

// Emit appends event to the buffer for its RunID.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// EmitBatch appends every event in order.
func (b *BufferedEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		b.Emit(e)
	}
	return nil
}

// Flush is a no-op: BufferedEmitter has no downstream to flush to.
func (b *BufferedEmitter) Flush(context.Context) error { return nil }

// History returns a copy of every event recorded for runID, in emission
// order.
func (b *BufferedEmitter) History(runID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	events := b.events[runID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Filter describes criteria for HistoryWithFilter. Zero-value fields are not
// applied; all set fields combine with AND logic.
type Filter struct {
	NodeID string
	Msg    string
}

// HistoryWithFilter returns a copy of the events for runID matching filter.
func (b *BufferedEmitter) HistoryWithFilter(runID string, filter Filter) []Event {
	var out []Event
	for _, e := range b.History(runID) {
		if filter.NodeID != "" && e.NodeID != filter.NodeID {
			continue
		}
		if filter.Msg != "" && e.Msg != filter.Msg {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear discards all events recorded for runID.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.events, runID)
}
