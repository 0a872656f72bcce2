package emit

import "testing"

func TestBufferedEmitter_HistoryAndFilter(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{RunID: "r1", NodeID: "ground:A", Msg: "subscribe"})
	b.Emit(Event{RunID: "r1", NodeID: "ground:A", Msg: "complete"})
	b.Emit(Event{RunID: "r1", NodeID: "ground:B", Msg: "subscribe"})
	b.Emit(Event{RunID: "r2", NodeID: "ground:A", Msg: "subscribe"})

	if got := len(b.History("r1")); got != 3 {
		t.Fatalf("expected 3 events for r1, got %d", got)
	}
	if got := len(b.History("r2")); got != 1 {
		t.Fatalf("expected 1 event for r2, got %d", got)
	}

	filtered := b.HistoryWithFilter("r1", Filter{NodeID: "ground:A"})
	if len(filtered) != 2 {
		t.Fatalf("expected 2 filtered events, got %d", len(filtered))
	}

	b.Clear("r1")
	if got := len(b.History("r1")); got != 0 {
		t.Fatalf("expected cleared history to be empty, got %d", got)
	}
}

func TestBufferedEmitter_EmitBatchPreservesOrder(t *testing.T) {
	b := NewBufferedEmitter()
	events := []Event{
		{RunID: "r1", Msg: "subscribe"},
		{RunID: "r1", Msg: "complete"},
	}
	if err := b.EmitBatch(nil, events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := b.History("r1")
	if len(got) != 2 || got[0].Msg != "subscribe" || got[1].Msg != "complete" {
		t.Fatalf("order not preserved: %+v", got)
	}
}
