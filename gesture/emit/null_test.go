package emit

import "testing"

func TestNullEmitter_DiscardsEverything(t *testing.T) {
	n := NewNullEmitter()
	n.Emit(Event{RunID: "r1", Msg: "complete"})
	if err := n.EmitBatch(nil, []Event{{Msg: "complete"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Flush(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
