package emit

import "testing"

func TestNullEmitter_NoOp(t *testing.T) {
	e := NewNullEmitter()

	events := []Event{
		{RunID: "run-001", Step: 1, NodeName: "n1", Msg: "emission"},
		{RunID: "run-001", Step: 2, NodeName: "n2", Msg: "reset"},
		{RunID: "run-001", Step: 3, NodeName: "n3", Msg: "exhausted", Meta: map[string]any{"error": "x"}},
	}
	for _, ev := range events {
		e.Emit(ev)
	}
}

func TestNullEmitter_NilMeta(t *testing.T) {
	e := NewNullEmitter()
	e.Emit(Event{RunID: "run-001", Msg: "emission", Meta: nil})
}
