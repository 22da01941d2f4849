// Package walker implements the ModelWalker: a deterministic, exhaustive
// traversal over a structured, typed data-model tree that enumerates
// mutations by repeatedly stepping individual nodes through their value
// spaces while cooperating with a pluggable Consumer strategy.
//
// The walker does not know how to build or parse a tree — that is the
// responsibility of an external data-model library. It only consumes the
// small surface described by the Node and ValueType interfaces below.
package walker

import "regexp"

// Kind tags the dynamic shape of a Node. A node is exactly one of these
// three kinds; there is no inheritance hierarchy to dispatch through.
type Kind int

const (
	// KindTerminal is a typed-value leaf (an integer, a string, a CRC, ...).
	KindTerminal Kind = iota
	// KindGenFunc is a generator-function node that produces another node.
	KindGenFunc
	// KindNonTerm is a structural node with subnodes.
	KindNonTerm
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindGenFunc:
		return "genfunc"
	case KindNonTerm:
		return "nonterm"
	default:
		return "unknown"
	}
}

// Attr is a bitset flag on a node. Flags are independent of Kind: a
// terminal and a non-terminal can both be Mutable, Finite, Freezable, etc.
type Attr uint16

const (
	// AttrMutable marks a node eligible for consumption by a Consumer.
	AttrMutable Attr = 1 << iota
	// AttrFinite marks a node whose variant enumeration terminates.
	AttrFinite
	// AttrSeparator marks a terminal node that separates other nodes
	// (whitespace, delimiters) rather than carrying payload semantics.
	AttrSeparator
	// AttrFreezable marks a generator-function node whose result can be
	// frozen directly, bypassing regeneration.
	AttrFreezable
	// AttrLocked marks a node whose value type has been pinned by a
	// consumer and should not be silently replaced by anything else.
	AttrLocked
	// AttrDeterminist marks a node that always picks its next variant in
	// a fixed order rather than at random.
	AttrDeterminist
	// AttrRandom marks a node that picks its next variant at random.
	// Mutually exclusive with AttrDeterminist.
	AttrRandom
)

// Has reports whether all bits in other are set in a.
func (a Attr) Has(other Attr) bool { return a&other == other }

// UnfreezeOpts parameterizes Node.Unfreeze.
type UnfreezeOpts struct {
	// Recursive unfreezes the whole subtree instead of just this node.
	Recursive bool
	// DontChangeState re-derives the frozen value without perturbing the
	// node's internal enumeration cursor (used by the reset primitive so
	// a later freeze reproduces the same variant it was about to try).
	DontChangeState bool
	// IgnoreEntanglement suppresses propagation to entangled sibling
	// nodes that would otherwise resynchronize in lockstep.
	IgnoreEntanglement bool
}

// SetValuesOpts parameterizes Node.SetValues.
type SetValuesOpts struct {
	// IgnoreEntanglement suppresses entanglement propagation.
	IgnoreEntanglement bool
	// PreserveNode keeps the node's identity (name, path, attrs other
	// than the value type itself) while swapping its ValueType.
	PreserveNode bool
}

// SetConfOpts parameterizes Node.SetCurrentConf.
type SetConfOpts struct {
	// Recursive propagates the configuration switch to subnodes.
	Recursive bool
	// Reverse restores a previously recorded configuration rather than
	// entering a new one; used by AltConfConsumer.RecoverNode.
	Reverse bool
}

// ReachOpts parameterizes Node.ReachableNodes.
type ReachOpts struct {
	// ExcludeSelf omits the receiver from the result even if it matches.
	ExcludeSelf bool
	// RespectOrder preserves child declaration order; otherwise the
	// data-model library may return nodes in any consistent order.
	RespectOrder bool
	// RelativeDepth limits the search to nodes at most this many levels
	// below the receiver. Zero means unbounded.
	RelativeDepth int
}

// Snapshot is an opaque backup of a node's internals, produced by
// InternalsBackup and restored by SetInternals. Consumers and the walker
// never look inside it.
type Snapshot interface{}

// Node is the external contract the walker relies on. An implementation
// is provided by a data-model library (out of scope for this module); see
// package datamodel for a minimal reference implementation used by tests.
type Node interface {
	// Name returns the node's local name.
	Name() string
	// Kind reports the node's dynamic shape.
	Kind() Kind

	// IsAttrSet reports whether every flag in a is set.
	IsAttrSet(a Attr) bool
	// SetAttr sets the given flags.
	SetAttr(a Attr)
	// ClearAttr clears the given flags.
	ClearAttr(a Attr)

	// Freeze binds the node (and, for non-terminals, its structural
	// choice) to a concrete current value.
	Freeze()
	// Unfreeze releases a previously frozen value so the next Freeze
	// re-derives it.
	Unfreeze(opts UnfreezeOpts)
	// MakeFinite marks the node (and, if recursive, its subtree) Finite.
	MakeFinite(recursive bool)
	// MakeDeterminist marks the node deterministic; mutually exclusive
	// with MakeRandom.
	MakeDeterminist(recursive bool)
	// MakeRandom marks the node random; mutually exclusive with
	// MakeDeterminist.
	MakeRandom(recursive bool)
	// IsExhausted reports whether a Finite node has produced every
	// intrinsic variant under its current configuration.
	IsExhausted() bool
	// ResetState clears the node's enumeration cursor without touching
	// its attributes.
	ResetState(recursive bool)

	// GetValue forces the node to freeze and returns its frozen value.
	GetValue() []byte
	// ToBytes returns the current frozen byte image without forcing a
	// freeze.
	ToBytes() []byte
	// FuzzWeight reports the node's relative fuzzing importance; values
	// greater than one make Consumer.MaxNbRunsFor prefer MaxRunsPerNode.
	FuzzWeight() int

	// FixSynchronizedNodes re-derives any sibling whose value is
	// constrained to track this node's value.
	FixSynchronizedNodes()

	// InternalsBackup snapshots the node's internals.
	InternalsBackup() Snapshot
	// SetInternals restores a previously captured Snapshot.
	SetInternals(s Snapshot)

	// SetValues replaces the node's ValueType.
	SetValues(vt ValueType, opts SetValuesOpts)
	// ValueType returns the node's current ValueType; only meaningful
	// for KindTerminal and KindGenFunc nodes.
	ValueType() ValueType

	// CurrentConf returns the name of the node's active configuration.
	CurrentConf() string
	// SetCurrentConf switches the node's active configuration.
	SetCurrentConf(conf string, opts SetConfOpts)
	// IsConfExisting reports whether the node exposes the named
	// configuration.
	IsConfExisting(conf string) bool

	// ReachableNodes returns the subnodes matching criteria, optionally
	// excluding the receiver, honoring the given options.
	ReachableNodes(criteria NodeCriteria, opts ReachOpts) []Node
	// PathFrom resolves the node's path relative to root. ok is false if
	// the node is not currently reachable from the frozen root (for
	// example because an existence condition hid it).
	PathFrom(root Node) (path string, ok bool)
	// AllPathsFrom returns every path by which the node is reachable
	// from root (a node may be shared by several parents).
	AllPathsFrom(root Node) []string

	// StructureWillChange reports whether the next Freeze of a
	// non-terminal will alter the set or ordering of its children. Only
	// meaningful for KindNonTerm nodes.
	StructureWillChange() bool
	// ChangeSubnodesCsts rewrites the non-terminal's child-ordering
	// constraint. Only meaningful for KindNonTerm nodes.
	ChangeSubnodesCsts(rule string)

	// GeneratedNode returns the node produced by a generator-function
	// node. Only meaningful for KindGenFunc nodes.
	GeneratedNode() Node

	// Semantics returns the node's semantic tags, or nil if it has none.
	Semantics() SemanticsCriteria
}

// SemanticsCriteria is matched against a node's semantic tags by
// NodeCriteria.Semantics.
type SemanticsCriteria interface {
	Match(tags []string) bool
}

// NodeCriteria is a conjunctive predicate over node attributes, kinds, and
// path. All non-zero fields must match; an all-zero NodeCriteria matches
// every node.
type NodeCriteria struct {
	// MandatoryAttrs lists attributes that must all be set.
	MandatoryAttrs Attr
	// NegativeAttrs lists attributes that must all be clear.
	NegativeAttrs Attr
	// Kinds, if non-empty, restricts matches to one of these kinds.
	Kinds []Kind
	// NegativeKinds, if non-empty, excludes these kinds.
	NegativeKinds []Kind
	// MandatoryCustomizations names node-kind-specific customizations
	// (such as "trigger-last generator") that must be present. The
	// predicate is opaque to the walker; a Node implementation decides
	// what each name means.
	MandatoryCustomizations []string
	// PathRegexp, if non-nil, requires at least one of the node's paths
	// from the evaluation root to match.
	PathRegexp *regexp.Regexp
	// Semantics, if non-nil, is matched against the node's semantic tags.
	Semantics SemanticsCriteria
	// Conf, if non-empty, requires the node to expose this named
	// configuration (IsConfExisting); the other clauses are still
	// evaluated against the node's current state.
	Conf string
}

// Extend returns the logical AND of c and other, de-duplicating kind and
// customization lists.
func (c NodeCriteria) Extend(other NodeCriteria) NodeCriteria {
	out := c
	out.MandatoryAttrs |= other.MandatoryAttrs
	out.NegativeAttrs |= other.NegativeAttrs
	out.Kinds = unionKinds(c.Kinds, other.Kinds)
	out.NegativeKinds = unionKinds(c.NegativeKinds, other.NegativeKinds)
	out.MandatoryCustomizations = unionStrings(c.MandatoryCustomizations, other.MandatoryCustomizations)
	if other.PathRegexp != nil {
		out.PathRegexp = other.PathRegexp
	}
	if other.Semantics != nil {
		out.Semantics = other.Semantics
	}
	if other.Conf != "" {
		out.Conf = other.Conf
	}
	return out
}

func unionKinds(a, b []Kind) []Kind {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	seen := make(map[Kind]bool, len(a)+len(b))
	out := make([]Kind, 0, len(a)+len(b))
	for _, k := range append(append([]Kind{}, a...), b...) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func unionStrings(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// matchesAttrsAndKind reports whether node satisfies the attribute and
// kind clauses of c (the Conf/Semantics/PathRegexp clauses are evaluated
// by the caller, which has access to the walk's root; MandatoryCustomizations
// is not evaluated here, only by a Node implementation's ReachableNodes).
func (c NodeCriteria) matchesAttrsAndKind(node Node) bool {
	for bit := Attr(1); bit != 0 && bit <= c.NegativeAttrs; bit <<= 1 {
		if c.NegativeAttrs.Has(bit) && node.IsAttrSet(bit) {
			return false
		}
	}
	if !node.IsAttrSet(c.MandatoryAttrs) {
		return false
	}
	if len(c.Kinds) > 0 && !kindIn(node.Kind(), c.Kinds) {
		return false
	}
	if len(c.NegativeKinds) > 0 && kindIn(node.Kind(), c.NegativeKinds) {
		return false
	}
	return true
}

func kindIn(k Kind, list []Kind) bool {
	for _, x := range list {
		if x == k {
			return true
		}
	}
	return false
}
