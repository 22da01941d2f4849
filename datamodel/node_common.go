package datamodel

import "github.com/5l1v3r1/fuddly/walker"

// base holds the fields every concrete node shares: identity, attribute
// flags, and an optional semantics tag set.
type base struct {
	name      string
	attrs     walker.Attr
	semantics *Semantics
}

func (b *base) Name() string                { return b.name }
func (b *base) IsAttrSet(a walker.Attr) bool { return b.attrs.Has(a) }
func (b *base) SetAttr(a walker.Attr)        { b.attrs |= a }
func (b *base) ClearAttr(a walker.Attr)      { b.attrs &^= a }
func (b *base) Semantics() walker.SemanticsCriteria {
	if b.semantics == nil {
		return nil
	}
	return b.semantics
}

// childrenProvider is implemented by every concrete node type that can
// have children (*NonTermNode returns its frozen children; *LeafNode
// always returns nil, so a generator-function leaf's GeneratedNode is not
// walked into). ReachableNodes, PathFrom, and
// AllPathsFrom all walk a tree through this interface rather than the
// exported walker.Node contract, since walker.Node deliberately has no
// Children accessor.
type childrenProvider interface {
	childNodes() []walker.Node
}

func childrenOf(n walker.Node) []walker.Node {
	if cp, ok := n.(childrenProvider); ok {
		return cp.childNodes()
	}
	return nil
}

// matchesCriteria replicates the attribute/kind/customization clauses of
// walker.NodeCriteria using only its exported fields, since the
// unexported matching helper on NodeCriteria itself is not visible
// outside package walker. Conf and PathRegexp are intentionally not
// enforced here: ReachableNodes' callers in this reference implementation
// never rely on them, and walker.ConsumerBase.InterestedBy already
// evaluates both against a node's own current state.
func matchesCriteria(n walker.Node, c walker.NodeCriteria) bool {
	for bit := walker.Attr(1); bit != 0 && bit <= c.NegativeAttrs; bit <<= 1 {
		if c.NegativeAttrs.Has(bit) && n.IsAttrSet(bit) {
			return false
		}
	}
	if c.MandatoryAttrs != 0 && !n.IsAttrSet(c.MandatoryAttrs) {
		return false
	}
	if len(c.Kinds) > 0 && !kindIn(n.Kind(), c.Kinds) {
		return false
	}
	if len(c.NegativeKinds) > 0 && kindIn(n.Kind(), c.NegativeKinds) {
		return false
	}
	for _, want := range c.MandatoryCustomizations {
		if !hasCustomization(n, want) {
			return false
		}
	}
	if c.Semantics != nil {
		sem, ok := n.Semantics().(*Semantics)
		if !ok || !c.Semantics.Match(sem.Tags()) {
			return false
		}
	}
	return true
}

func kindIn(k walker.Kind, list []walker.Kind) bool {
	for _, x := range list {
		if x == k {
			return true
		}
	}
	return false
}

// hasCustomization recognizes the one customization this reference
// implementation models: a generator-function node flagged to run after
// its siblings have settled (a CRC or length field computed over them).
func hasCustomization(n walker.Node, name string) bool {
	if name != "trigger-last" {
		return false
	}
	lf, ok := n.(*LeafNode)
	return ok && lf.kind == walker.KindGenFunc && lf.triggerLast
}

// findPath searches root's subtree for target by identity, returning a
// dotted path of node names. It does not handle nodes reachable by more
// than one path (a DAG); this reference implementation only builds trees.
func findPath(root, target walker.Node) (string, bool) {
	var found string
	ok := false
	var rec func(n walker.Node, prefix string)
	rec = func(n walker.Node, prefix string) {
		if ok {
			return
		}
		path := n.Name()
		if prefix != "" {
			path = prefix + "." + path
		}
		if n == target {
			found, ok = path, true
			return
		}
		for _, c := range childrenOf(n) {
			rec(c, path)
			if ok {
				return
			}
		}
	}
	rec(root, "")
	return found, ok
}

func findAllPaths(root, target walker.Node) []string {
	var out []string
	var rec func(n walker.Node, prefix string)
	rec = func(n walker.Node, prefix string) {
		path := n.Name()
		if prefix != "" {
			path = prefix + "." + path
		}
		if n == target {
			out = append(out, path)
		}
		for _, c := range childrenOf(n) {
			rec(c, path)
		}
	}
	rec(root, "")
	return out
}

func cascadeDeterminist(n walker.Node, recursive bool) {
	n.SetAttr(walker.AttrDeterminist)
	n.ClearAttr(walker.AttrRandom)
	if recursive {
		for _, c := range childrenOf(n) {
			cascadeDeterminist(c, true)
		}
	}
}

func cascadeRandom(n walker.Node, recursive bool) {
	n.SetAttr(walker.AttrRandom)
	n.ClearAttr(walker.AttrDeterminist)
	if recursive {
		for _, c := range childrenOf(n) {
			cascadeRandom(c, true)
		}
	}
}

func cascadeFinite(n walker.Node, recursive bool) {
	n.SetAttr(walker.AttrFinite)
	if recursive {
		for _, c := range childrenOf(n) {
			cascadeFinite(c, true)
		}
	}
}
