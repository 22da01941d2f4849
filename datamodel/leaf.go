package datamodel

import "github.com/5l1v3r1/fuddly/walker"

// LeafNode implements walker.Node for both KindTerminal and KindGenFunc:
// a node with no subnodes of its own, whose byte value comes either from
// a ValueType (terminal) or from a Go function evaluated at Freeze time
// (generator-function, e.g. a CRC computed over already-frozen siblings).
type LeafNode struct {
	base

	kind     walker.Kind
	vt       walker.ValueType // non-nil for KindTerminal
	generate func() []byte    // non-nil for KindGenFunc

	// triggerLast marks a generator-function node that must be unfrozen
	// (and so recomputed) only after its dependencies have settled; see
	// ModelWalker.resetNode and NodeCriteria.MandatoryCustomizations.
	triggerLast bool

	frozenBytes []byte
	hasFrozen   bool
	exhausted   bool
	weight      int
}

type leafSnapshot struct {
	vt          walker.ValueType
	attrs       walker.Attr
	frozenBytes []byte
	hasFrozen   bool
	exhausted   bool
}

// NewTerminal returns a KindTerminal LeafNode backed by vt.
func NewTerminal(name string, vt walker.ValueType) *LeafNode {
	return &LeafNode{
		base:   base{name: name, attrs: walker.AttrMutable | walker.AttrFinite},
		kind:   walker.KindTerminal,
		vt:     vt,
		weight: 1,
	}
}

// NewSeparator returns a KindTerminal LeafNode tagged AttrSeparator, for
// delimiter and padding bytes rather than payload values.
func NewSeparator(name string, vt walker.ValueType) *LeafNode {
	n := NewTerminal(name, vt)
	n.SetAttr(walker.AttrSeparator)
	return n
}

// NewGenFunc returns a KindGenFunc LeafNode whose value is computed by
// generate whenever it is (re)frozen. triggerLast marks it as needing to
// run after its sibling dependencies have already been frozen.
func NewGenFunc(name string, triggerLast bool, generate func() []byte) *LeafNode {
	return &LeafNode{
		base:        base{name: name, attrs: walker.AttrFreezable | walker.AttrFinite},
		kind:        walker.KindGenFunc,
		generate:    generate,
		triggerLast: triggerLast,
		weight:      1,
	}
}

// SetWeight overrides the node's FuzzWeight, read by
// Consumer.MaxNbRunsFor to decide how many times to revisit the node.
func (l *LeafNode) SetWeight(w int) { l.weight = w }

func (l *LeafNode) Kind() walker.Kind { return l.kind }

// Freeze binds the node's current byte value. Freezing an already frozen
// node is a no-op; generator-function nodes recompute only after an
// Unfreeze (a reset unfreezes trigger-last generators explicitly so they
// re-run against whatever changed).
func (l *LeafNode) Freeze() {
	if l.hasFrozen {
		return
	}
	switch l.kind {
	case walker.KindTerminal:
		if l.vt == nil {
			l.frozenBytes = nil
		} else {
			l.frozenBytes = l.vt.Bytes()
		}
	case walker.KindGenFunc:
		if l.generate != nil {
			l.frozenBytes = l.generate()
		}
	}
	l.hasFrozen = true
	switch {
	case l.kind == walker.KindGenFunc:
		// Recomputed fresh from siblings every time; there is no
		// independent enumeration to exhaust.
		l.exhausted = true
	case l.IsAttrSet(walker.AttrFinite):
		l.exhausted = !l.hasNextVariant()
	}
}

// varietyStepper is implemented by value types that enumerate several
// values (IntValue with an enumerated set). A LeafNode steps its value
// type once per state-changing Unfreeze and exhausts when the
// enumeration's last entry has been frozen.
type varietyStepper interface {
	stepValue()
	hasNextValue() bool
}

func (l *LeafNode) hasNextVariant() bool {
	if s, ok := l.vt.(varietyStepper); ok {
		return s.hasNextValue()
	}
	return false
}

// Unfreeze releases the frozen value. A state-changing unfreeze of a
// frozen node advances the value enumeration; unfreezing an already
// unfrozen node (a freshly installed value type, say) must not, or the
// first entry would never be produced.
func (l *LeafNode) Unfreeze(opts walker.UnfreezeOpts) {
	if !opts.DontChangeState {
		if s, ok := l.vt.(varietyStepper); ok && l.hasFrozen {
			s.stepValue()
		}
		l.exhausted = false
	}
	l.hasFrozen = false
}

func (l *LeafNode) MakeFinite(recursive bool)      { cascadeFinite(l, recursive) }
func (l *LeafNode) MakeDeterminist(recursive bool) { cascadeDeterminist(l, recursive) }
func (l *LeafNode) MakeRandom(recursive bool)      { cascadeRandom(l, recursive) }

func (l *LeafNode) IsExhausted() bool { return l.exhausted }

func (l *LeafNode) ResetState(recursive bool) {
	l.hasFrozen = false
	l.exhausted = false
	if l.vt != nil {
		l.vt.MakePrivate(true)
	}
}

func (l *LeafNode) GetValue() []byte {
	if !l.hasFrozen {
		l.Freeze()
	}
	return l.frozenBytes
}

func (l *LeafNode) ToBytes() []byte { return l.frozenBytes }

func (l *LeafNode) FuzzWeight() int { return l.weight }

// FixSynchronizedNodes is a no-op: this reference implementation does
// not model entangled sibling values.
func (l *LeafNode) FixSynchronizedNodes() {}

func (l *LeafNode) InternalsBackup() walker.Snapshot {
	var vtCopy walker.ValueType
	if l.vt != nil {
		vtCopy = l.vt.Clone()
	}
	return &leafSnapshot{
		vt:          vtCopy,
		attrs:       l.attrs,
		frozenBytes: append([]byte(nil), l.frozenBytes...),
		hasFrozen:   l.hasFrozen,
		exhausted:   l.exhausted,
	}
}

func (l *LeafNode) SetInternals(s walker.Snapshot) {
	snap, ok := s.(*leafSnapshot)
	if !ok {
		return
	}
	l.vt = snap.vt
	l.attrs = snap.attrs
	l.frozenBytes = snap.frozenBytes
	l.hasFrozen = snap.hasFrozen
	l.exhausted = snap.exhausted
}

func (l *LeafNode) SetValues(vt walker.ValueType, opts walker.SetValuesOpts) {
	l.vt = vt
	l.hasFrozen = false
}

func (l *LeafNode) ValueType() walker.ValueType { return l.vt }

func (l *LeafNode) CurrentConf() string { return "" }

func (l *LeafNode) SetCurrentConf(conf string, opts walker.SetConfOpts) {}

func (l *LeafNode) IsConfExisting(conf string) bool { return conf == "" }

func (l *LeafNode) ReachableNodes(criteria walker.NodeCriteria, opts walker.ReachOpts) []walker.Node {
	if opts.ExcludeSelf {
		return nil
	}
	if matchesCriteria(l, criteria) {
		return []walker.Node{l}
	}
	return nil
}

func (l *LeafNode) PathFrom(root walker.Node) (string, bool) { return findPath(root, l) }

func (l *LeafNode) AllPathsFrom(root walker.Node) []string { return findAllPaths(root, l) }

func (l *LeafNode) StructureWillChange() bool { return false }

func (l *LeafNode) ChangeSubnodesCsts(rule string) {}

// GeneratedNode returns the node produced by a generator-function
// LeafNode: itself, once frozen — this reference implementation models
// the generated value directly rather than as a distinct child node,
// since it always has exactly one shape.
func (l *LeafNode) GeneratedNode() walker.Node {
	if l.kind != walker.KindGenFunc {
		return nil
	}
	if !l.hasFrozen {
		l.Freeze()
	}
	return l
}

func (l *LeafNode) childNodes() []walker.Node { return nil }
