package walker_test

import (
	"bytes"
	"testing"

	"github.com/5l1v3r1/fuddly/datamodel"
	"github.com/5l1v3r1/fuddly/walker"
)

// separatorTree builds a two-node root: a payload byte and a separator
// terminal currently set to "\n".
func separatorTree() (root walker.Node, sep *datamodel.LeafNode) {
	payload := datamodel.NewTerminal("payload", datamodel.NewIntValueEnum(8, 0x41))
	sep = datamodel.NewSeparator("sep", datamodel.NewStringValue([]byte("\n"), 0, 1))

	root = datamodel.NewAlternation("line", datamodel.Alternative{
		Name:   "line",
		Weight: 1,
		Build:  func() []walker.Node { return []walker.Node{payload, sep} },
	})
	return root, sep
}

func TestSeparatorDisruption_TriesEmptyThenOtherSeparatorsInOrder(t *testing.T) {
	root, _ := separatorTree()
	consumer := walker.NewSeparatorDisruption([]byte("\n"), []byte(" "))

	w, err := walker.New(root, consumer, walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var got [][]byte
	for e := range w.Walk() {
		if e.Consumed.Name() != "sep" {
			continue
		}
		got = append(got, append([]byte(nil), e.Consumed.ToBytes()...))
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}

	want := [][]byte{{}, []byte(" ")}
	if len(got) != len(want) {
		t.Fatalf("emitted %d separator values, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("emission %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeparatorDisruption_NeverOffersTheCurrentValueItself(t *testing.T) {
	root, _ := separatorTree()
	// "\n" is the node's current value; it must be filtered out of the
	// candidate list even though it's also in the caller-supplied set.
	consumer := walker.NewSeparatorDisruption([]byte("\n"))

	w, err := walker.New(root, consumer, walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	count := 0
	var last []byte
	for e := range w.Walk() {
		if e.Consumed.Name() != "sep" {
			continue
		}
		count++
		last = e.Consumed.ToBytes()
	}
	if count != 1 {
		t.Fatalf("expected exactly one separator emission (empty), got %d", count)
	}
	if len(last) != 0 {
		t.Errorf("expected the single emission to be empty, got %q", last)
	}
}
