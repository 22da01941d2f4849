package walker

import "testing"

type stubNode struct {
	attrs Attr
	kind  Kind
}

func (s stubNode) Name() string                                  { return "stub" }
func (s stubNode) Kind() Kind                                     { return s.kind }
func (s stubNode) IsAttrSet(a Attr) bool                          { return s.attrs.Has(a) }
func (s stubNode) SetAttr(a Attr)                                 {}
func (s stubNode) ClearAttr(a Attr)                               {}
func (s stubNode) Freeze()                                        {}
func (s stubNode) Unfreeze(UnfreezeOpts)                          {}
func (s stubNode) MakeFinite(bool)                                {}
func (s stubNode) MakeDeterminist(bool)                           {}
func (s stubNode) MakeRandom(bool)                                {}
func (s stubNode) IsExhausted() bool                              { return false }
func (s stubNode) ResetState(bool)                                {}
func (s stubNode) GetValue() []byte                               { return nil }
func (s stubNode) ToBytes() []byte                                { return nil }
func (s stubNode) FuzzWeight() int                                { return 1 }
func (s stubNode) FixSynchronizedNodes()                          {}
func (s stubNode) InternalsBackup() Snapshot                      { return nil }
func (s stubNode) SetInternals(Snapshot)                          {}
func (s stubNode) SetValues(ValueType, SetValuesOpts)             {}
func (s stubNode) ValueType() ValueType                           { return nil }
func (s stubNode) CurrentConf() string                            { return "" }
func (s stubNode) SetCurrentConf(string, SetConfOpts)             {}
func (s stubNode) IsConfExisting(string) bool                     { return false }
func (s stubNode) ReachableNodes(NodeCriteria, ReachOpts) []Node   { return nil }
func (s stubNode) PathFrom(Node) (string, bool)                   { return "", false }
func (s stubNode) AllPathsFrom(Node) []string                      { return nil }
func (s stubNode) StructureWillChange() bool                      { return false }
func (s stubNode) ChangeSubnodesCsts(string)                      {}
func (s stubNode) GeneratedNode() Node                            { return nil }
func (s stubNode) Semantics() SemanticsCriteria                   { return nil }

func TestNodeCriteria_MatchesAttrsAndKind(t *testing.T) {
	c := NodeCriteria{MandatoryAttrs: AttrMutable, NegativeAttrs: AttrLocked, Kinds: []Kind{KindTerminal}}

	match := stubNode{attrs: AttrMutable, kind: KindTerminal}
	if !c.matchesAttrsAndKind(match) {
		t.Error("expected match")
	}

	wrongAttr := stubNode{attrs: AttrMutable | AttrLocked, kind: KindTerminal}
	if c.matchesAttrsAndKind(wrongAttr) {
		t.Error("expected NegativeAttrs to exclude a locked node")
	}

	wrongKind := stubNode{attrs: AttrMutable, kind: KindNonTerm}
	if c.matchesAttrsAndKind(wrongKind) {
		t.Error("expected Kinds to exclude a non-terminal")
	}
}

func TestNodeCriteria_Extend(t *testing.T) {
	base := NodeCriteria{MandatoryAttrs: AttrMutable, Kinds: []Kind{KindTerminal}}
	other := NodeCriteria{NegativeAttrs: AttrLocked, Kinds: []Kind{KindNonTerm}, Conf: "alt"}

	merged := base.Extend(other)
	if merged.MandatoryAttrs != AttrMutable {
		t.Errorf("MandatoryAttrs = %v, want AttrMutable", merged.MandatoryAttrs)
	}
	if merged.NegativeAttrs != AttrLocked {
		t.Errorf("NegativeAttrs = %v, want AttrLocked", merged.NegativeAttrs)
	}
	if len(merged.Kinds) != 2 {
		t.Errorf("Kinds = %v, want both KindTerminal and KindNonTerm", merged.Kinds)
	}
	if merged.Conf != "alt" {
		t.Errorf("Conf = %q, want %q", merged.Conf, "alt")
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindTerminal: "terminal",
		KindGenFunc:  "genfunc",
		KindNonTerm:  "nonterm",
		Kind(99):     "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
