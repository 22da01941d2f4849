package walker_test

import (
	"testing"

	"github.com/5l1v3r1/fuddly/datamodel"
	"github.com/5l1v3r1/fuddly/walker"
)

// TestTypedNodeDisruption_NeighborsOfAnEnumeratedValue fuzzes an 8-bit
// integer restricted to {1,2,4,8,16} with current value 1. The computed
// neighbor set is val+1 and val-1 (2, 0) unconditionally, plus the
// smallest and largest integers missing from [1,16] (3, 15), plus max+1
// and min-1 (17, 0 — already present); that set is installed on the
// first sibling boundary type compatible with val±1, with the original
// value (1) removed. Combined with FuzzyClasses' own sibling boundary
// types (0, -1, 255 for an 8-bit type with no declared numeric bounds —
// -1 and 255 serialize to the same byte), every one of 0, 3, 15, 17, 255
// appears among the emissions, and 1 is never re-emitted. val+1 (2)
// happens to coincide with a member of the original enumeration here —
// only the original value itself is removed from the target's
// enumeration, not val±1, so that coincidence is expected, not filtered.
func TestTypedNodeDisruption_NeighborsOfAnEnumeratedValue(t *testing.T) {
	root := datamodel.NewTerminal("v", datamodel.NewIntValueEnum(8, 1, 2, 4, 8, 16))
	w, err := walker.New(root, walker.NewTypedNodeDisruption(), walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var raw []int64
	for range w.Walk() {
		raw = append(raw, decodeUint8(root.ToBytes()))
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}

	if len(raw) == 0 {
		t.Fatal("expected at least one emission")
	}

	want := map[int64]bool{0: true, 3: true, 15: true, 17: true, 255: true}
	seen := map[int64]bool{}
	for _, v := range raw {
		seen[v] = true
		if v == 1 {
			t.Errorf("original value 1 was re-emitted")
		}
	}
	for v := range want {
		if !seen[v] {
			t.Errorf("expected neighbor/boundary value %d among emissions %v", v, raw)
		}
	}
}

func decodeUint8(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	return int64(b[len(b)-1])
}

func TestTypedNodeDisruption_RecoveryRestoresOriginalValue(t *testing.T) {
	root := datamodel.NewTerminal("v", datamodel.NewIntValueEnum(8, 1, 2, 4, 8, 16))
	original := append([]byte(nil), root.GetValue()...)

	w, err := walker.New(root, walker.NewTypedNodeDisruption(), walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mutated := false
	for range w.Walk() {
		if root.ToBytes()[0] != original[0] {
			mutated = true
		}
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}
	if !mutated {
		t.Fatal("expected at least one emission with a mutated value")
	}

	if got := root.GetValue(); got[0] != original[0] {
		t.Errorf("after the walk the node serializes to %x, want the original %x", got, original)
	}
}

func TestTypedNodeDisruption_IgnoringSeparatorsSkipsSeparatorNodes(t *testing.T) {
	payload := datamodel.NewTerminal("payload", datamodel.NewIntValueEnum(8, 0x41))
	sep := datamodel.NewSeparator("sep", datamodel.NewStringValue([]byte("\n"), 0, 1))
	root := datamodel.NewAlternation("line", datamodel.Alternative{
		Name:   "line",
		Weight: 1,
		Build:  func() []walker.Node { return []walker.Node{payload, sep} },
	})

	w, err := walker.New(root, walker.NewTypedNodeDisruptionIgnoringSeparators(),
		walker.WithDeterminism(walker.Deterministic))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for e := range w.Walk() {
		if e.Consumed.Name() == "sep" {
			t.Error("separator node was consumed despite the separator exclusion")
		}
	}
	if err := w.Err(); err != nil {
		t.Fatalf("Walk ended with error: %v", err)
	}
}
