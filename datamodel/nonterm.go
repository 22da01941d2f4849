package datamodel

import (
	"hash/fnv"
	"math/rand"

	"github.com/5l1v3r1/fuddly/walker"
)

// Alternative is one named, weighted shape a NonTermNode can freeze into.
// Weight feeds FuzzWeight (and so Consumer.MaxNbRunsFor); it does not
// affect enumeration order, which cycles alternatives in declaration
// order for determinism (in Random mode each freeze picks one at random
// instead).
type Alternative struct {
	Name   string
	Weight int
	Build  func() []walker.Node
}

// RepeatSpec describes a quantity-bounded repeated child: Template is
// called once per index in [0, count) for the count the node currently
// enumerates, itself ranging over [Min, Max].
type RepeatSpec struct {
	Min, Max int
	Template func(index int) walker.Node
}

// NonTermNode implements walker.Node for a structural node: either a
// fixed list of named weighted alternatives, or a quantity-bounded
// repeated template, never both.
type NonTermNode struct {
	base

	alternatives []Alternative
	altCursor    int
	lastAltIdx   int

	repeat       *RepeatSpec
	repeatCursor int
	lastCount    int

	children  []walker.Node
	frozen    bool
	exhausted bool

	forcedConf string

	rng *rand.Rand
}

type nontermSnapshot struct {
	altCursor    int
	repeatCursor int
	children     []walker.Node
	frozen       bool
}

// NewAlternation returns a NonTermNode that freezes into one of alts,
// cycling through them deterministically in declaration order.
func NewAlternation(name string, alts ...Alternative) *NonTermNode {
	return &NonTermNode{
		base:         base{name: name, attrs: walker.AttrMutable | walker.AttrFinite},
		alternatives: alts,
		lastAltIdx:   -1,
		rng:          newSeededRand(name),
	}
}

// NewRepeated returns a NonTermNode that freezes into between min and max
// copies of template, cycling the count upward from min.
func NewRepeated(name string, min, max int, template func(index int) walker.Node) *NonTermNode {
	return &NonTermNode{
		base:      base{name: name, attrs: walker.AttrMutable | walker.AttrFinite},
		repeat:    &RepeatSpec{Min: min, Max: max, Template: template},
		lastCount: -1,
		rng:       newSeededRand(name),
	}
}

func newSeededRand(name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func (nt *NonTermNode) Kind() walker.Kind { return walker.KindNonTerm }

// Freeze binds the node to a concrete structural choice. Freezing an
// already frozen node is a no-op: the walker re-freezes liberally (before
// every search, before every yield), and rebuilding children on each call
// would discard mutations applied to the current ones.
func (nt *NonTermNode) Freeze() {
	if nt.frozen {
		return
	}
	switch {
	case nt.repeat != nil:
		count := nt.pickRepeatCount()
		nt.children = make([]walker.Node, count)
		for i := 0; i < count; i++ {
			nt.children[i] = nt.repeat.Template(i)
		}
		nt.lastCount = count
		nt.exhausted = count >= nt.repeat.Max
	case len(nt.alternatives) > 0:
		idx := nt.pickAltIndex()
		nt.children = nt.alternatives[idx].Build()
		nt.lastAltIdx = idx
		// A pinned configuration has exactly one shape, so there is
		// nothing left to enumerate under it.
		nt.exhausted = idx >= len(nt.alternatives)-1 || nt.forcedConf != ""
	}
	nt.frozen = true
	// Freezing a structural node freezes its chosen children too, in
	// declaration order; generator-function children pull their frozen
	// dependencies themselves when they run.
	for _, c := range nt.children {
		c.Freeze()
	}
}

func (nt *NonTermNode) pickRepeatCount() int {
	span := nt.repeat.Max - nt.repeat.Min
	if span <= 0 {
		return nt.repeat.Min
	}
	if nt.IsAttrSet(walker.AttrRandom) {
		return nt.repeat.Min + nt.rng.Intn(span+1)
	}
	cursor := nt.repeatCursor
	if cursor > span {
		cursor = span
	}
	return nt.repeat.Min + cursor
}

func (nt *NonTermNode) pickAltIndex() int {
	if nt.forcedConf != "" {
		for i, a := range nt.alternatives {
			if a.Name == nt.forcedConf {
				return i
			}
		}
	}
	if nt.IsAttrSet(walker.AttrRandom) {
		return nt.rng.Intn(len(nt.alternatives))
	}
	idx := nt.altCursor
	if idx >= len(nt.alternatives) {
		idx = len(nt.alternatives) - 1
	}
	return idx
}

// Unfreeze releases the structural choice. A state-changing unfreeze of
// a frozen node advances the shape cursor; unfreezing an already
// unfrozen node does not.
func (nt *NonTermNode) Unfreeze(opts walker.UnfreezeOpts) {
	if !opts.DontChangeState && nt.frozen {
		if nt.repeat != nil {
			nt.repeatCursor++
		} else if len(nt.alternatives) > 0 {
			nt.altCursor++
		}
	}
	nt.frozen = false
	if opts.Recursive {
		for _, c := range nt.children {
			c.Unfreeze(opts)
		}
	}
}

func (nt *NonTermNode) MakeFinite(recursive bool)      { cascadeFinite(nt, recursive) }
func (nt *NonTermNode) MakeDeterminist(recursive bool) { cascadeDeterminist(nt, recursive) }
func (nt *NonTermNode) MakeRandom(recursive bool)      { cascadeRandom(nt, recursive) }

// IsExhausted reports whether the most recently frozen shape was the
// last one this node enumerates: the top of the repeat count range, or
// the final declared alternative. A node that has never been frozen is
// not exhausted, except a node with neither alternatives nor a repeat
// spec, which always reports exhausted.
func (nt *NonTermNode) IsExhausted() bool {
	if nt.repeat == nil && len(nt.alternatives) == 0 {
		return true
	}
	return nt.exhausted
}

func (nt *NonTermNode) ResetState(recursive bool) {
	nt.altCursor = 0
	nt.repeatCursor = 0
	nt.frozen = false
	nt.exhausted = false
	if recursive {
		for _, c := range nt.children {
			c.ResetState(true)
		}
	}
}

func (nt *NonTermNode) GetValue() []byte {
	if !nt.frozen {
		nt.Freeze()
	}
	return nt.ToBytes()
}

func (nt *NonTermNode) ToBytes() []byte {
	var out []byte
	for _, c := range nt.children {
		out = append(out, c.ToBytes()...)
	}
	return out
}

func (nt *NonTermNode) FuzzWeight() int {
	if nt.repeat != nil {
		return 1
	}
	if nt.lastAltIdx >= 0 && nt.lastAltIdx < len(nt.alternatives) {
		if w := nt.alternatives[nt.lastAltIdx].Weight; w > 0 {
			return w
		}
	}
	return 1
}

// FixSynchronizedNodes is a no-op: this reference implementation does
// not model entangled sibling values.
func (nt *NonTermNode) FixSynchronizedNodes() {}

func (nt *NonTermNode) InternalsBackup() walker.Snapshot {
	return &nontermSnapshot{
		altCursor:    nt.altCursor,
		repeatCursor: nt.repeatCursor,
		children:     append([]walker.Node(nil), nt.children...),
		frozen:       nt.frozen,
	}
}

func (nt *NonTermNode) SetInternals(s walker.Snapshot) {
	snap, ok := s.(*nontermSnapshot)
	if !ok {
		return
	}
	nt.altCursor = snap.altCursor
	nt.repeatCursor = snap.repeatCursor
	nt.children = snap.children
	nt.frozen = snap.frozen
}

func (nt *NonTermNode) SetValues(vt walker.ValueType, opts walker.SetValuesOpts) {}

func (nt *NonTermNode) ValueType() walker.ValueType { return nil }

func (nt *NonTermNode) CurrentConf() string { return nt.forcedConf }

// SetCurrentConf records the pending configuration; it does not itself
// invalidate a value already frozen under the old one (callers Unfreeze
// after switching). Reverse only affects how an entangled data model
// would propagate the switch; for this reference implementation both
// directions just install conf.
func (nt *NonTermNode) SetCurrentConf(conf string, opts walker.SetConfOpts) {
	nt.forcedConf = conf
	if opts.Recursive {
		for _, c := range nt.children {
			c.SetCurrentConf(conf, opts)
		}
	}
}

func (nt *NonTermNode) IsConfExisting(conf string) bool {
	if conf == "" {
		return true
	}
	for _, a := range nt.alternatives {
		if a.Name == conf {
			return true
		}
	}
	return false
}

func (nt *NonTermNode) ReachableNodes(criteria walker.NodeCriteria, opts walker.ReachOpts) []walker.Node {
	var out []walker.Node
	var rec func(n walker.Node, depth int)
	rec = func(n walker.Node, depth int) {
		if !(opts.ExcludeSelf && depth == 0) && matchesCriteria(n, criteria) {
			out = append(out, n)
		}
		if opts.RelativeDepth != 0 && depth >= opts.RelativeDepth {
			return
		}
		for _, c := range childrenOf(n) {
			rec(c, depth+1)
		}
	}
	rec(nt, 0)
	return out
}

func (nt *NonTermNode) PathFrom(root walker.Node) (string, bool) { return findPath(root, nt) }

func (nt *NonTermNode) AllPathsFrom(root walker.Node) []string { return findAllPaths(root, nt) }

func (nt *NonTermNode) StructureWillChange() bool {
	switch {
	case nt.repeat != nil:
		return nt.pickRepeatCount() != nt.lastCount
	case len(nt.alternatives) > 0:
		return nt.pickAltIndex() != nt.lastAltIdx
	default:
		return false
	}
}

// ChangeSubnodesCsts accepts an ordering-relaxation rule (RelaxOrdering
// passes "*:u=.") and ignores it: this reference implementation stores
// no rule, and children keep being returned in declaration order.
func (nt *NonTermNode) ChangeSubnodesCsts(rule string) {}

func (nt *NonTermNode) GeneratedNode() walker.Node { return nil }

func (nt *NonTermNode) childNodes() []walker.Node {
	if !nt.frozen {
		nt.Freeze()
	}
	return nt.children
}
