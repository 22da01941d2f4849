package datamodel

import (
	"bytes"
	"testing"

	"github.com/5l1v3r1/fuddly/walker"
)

func byteNode(name string, b byte) *LeafNode {
	return NewTerminal(name, NewIntValueEnum(8, int64(b)))
}

func TestNonTermNode_AlternationCyclesDeterministically(t *testing.T) {
	nt := NewAlternation("shape",
		Alternative{Name: "a", Weight: 1, Build: func() []walker.Node { return []walker.Node{byteNode("x", 0x01)} }},
		Alternative{Name: "b", Weight: 1, Build: func() []walker.Node { return []walker.Node{byteNode("x", 0x02)} }},
	)
	nt.MakeDeterminist(true)

	nt.Freeze()
	if got := nt.GetValue(); !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("first freeze = %x, want 01", got)
	}
	if nt.IsExhausted() {
		t.Fatal("should not be exhausted after first alternative")
	}

	nt.Unfreeze(walker.UnfreezeOpts{})
	nt.Freeze()
	if got := nt.GetValue(); !bytes.Equal(got, []byte{0x02}) {
		t.Fatalf("second freeze = %x, want 02", got)
	}
	if !nt.IsExhausted() {
		t.Fatal("should be exhausted after both alternatives tried")
	}
}

func TestNonTermNode_RepeatedRange(t *testing.T) {
	nt := NewRepeated("list", 2, 4, func(i int) walker.Node { return byteNode("item", byte(i)) })
	nt.MakeDeterminist(true)

	nt.Freeze()
	if got := nt.GetValue(); len(got) != 2 {
		t.Fatalf("first count = %d, want 2", len(got))
	}
	nt.Unfreeze(walker.UnfreezeOpts{})
	nt.Freeze()
	if got := nt.GetValue(); len(got) != 3 {
		t.Fatalf("second count = %d, want 3", len(got))
	}
	nt.Unfreeze(walker.UnfreezeOpts{})
	nt.Freeze()
	if got := nt.GetValue(); len(got) != 4 {
		t.Fatalf("third count = %d, want 4", len(got))
	}
	if !nt.IsExhausted() {
		t.Fatal("should be exhausted once max count has been produced")
	}
}

func TestNonTermNode_ReachableNodesDirectChildren(t *testing.T) {
	nt := NewAlternation("shape",
		Alternative{Build: func() []walker.Node {
			return []walker.Node{byteNode("a", 1), byteNode("b", 2)}
		}},
	)
	nt.Freeze()

	direct := nt.ReachableNodes(walker.NodeCriteria{}, walker.ReachOpts{ExcludeSelf: true, RelativeDepth: 1})
	if len(direct) != 2 {
		t.Fatalf("ReachableNodes returned %d nodes, want 2", len(direct))
	}
}

func TestNonTermNode_PathFromRoot(t *testing.T) {
	child := byteNode("leaf", 7)
	nt := NewAlternation("root", Alternative{Build: func() []walker.Node { return []walker.Node{child} }})
	nt.Freeze()

	path, ok := child.PathFrom(nt)
	if !ok {
		t.Fatal("expected leaf to be reachable from root")
	}
	if path != "root.leaf" {
		t.Errorf("path = %q, want root.leaf", path)
	}
}
