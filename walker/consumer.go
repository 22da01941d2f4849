package walker

// Consumer is a pluggable mutation strategy. The walker negotiates with a
// Consumer through the protocol described in package doc comment on
// ModelWalker: interest, consumption, possible reset, and recovery.
//
// Canonical strategies (BasicVisitor, NonTermVisitor, AltConfConsumer,
// TypedNodeDisruption, SeparatorDisruption) embed ConsumerBase and
// override only the methods their strategy needs.
type Consumer interface {
	// InterestedBy gates whether the consumer wants to be offered node at
	// all. When a consumer sets no criteria, interest is universal.
	InterestedBy(node Node) bool
	// ConsumeNode mutates node in place and reports whether the mutation
	// actually happened. Returning false means "not interested after
	// all", even though InterestedBy returned true.
	ConsumeNode(node Node) bool
	// SaveNode snapshots whatever per-consumption state RecoverNode will
	// need to undo ConsumeNode's effect.
	SaveNode(node Node)
	// RecoverNode restores node to the state SaveNode captured.
	RecoverNode(node Node)
	// StillInterestedBy is consulted after an emission to decide whether
	// to consume the same node again, chaining further variants.
	StillInterestedBy(node Node) bool
	// NeedReset reports whether mutating node requires re-walking
	// subtrees beneath it. The default is true iff node is non-terminal.
	NeedReset(node Node) bool
	// DoAfterReset is invoked once a reset has completed.
	DoAfterReset(node Node)
	// WaitForExhaustion returns the emission budget for the current
	// node: -1 means "until exhausted", 0 means "one emission then move
	// on", and N-1 means "at most N emissions, or earlier on
	// exhaustion".
	WaitForExhaustion(node Node) int
	// MaxNbRunsFor returns the run-count policy for node: MaxRunsPerNode
	// if its fuzz weight exceeds one, else MinRunsPerNode.
	MaxNbRunsFor(node Node) int

	// NeedResetWhenStructureChange reports whether a pending structural
	// change in a non-terminal should trigger a re-walk of its earlier
	// siblings, as opposed to merely clearing the consumed-set.
	NeedResetWhenStructureChange() bool
	// FixConstraints reports whether the walker should call
	// FixSynchronizedNodes after each micro-step.
	FixConstraints() bool
	// RespectOrder reports whether candidate collection should preserve
	// declaration order.
	RespectOrder() bool
	// FuzzMagnitude is a scalar passed through to value-type fuzzing.
	FuzzMagnitude() float64

	// bindRoot tells the consumer which root node the walk evaluates
	// path criteria against. It is unexported: only ConsumerBase and its
	// embedders may implement Consumer, keeping the contract closed to
	// walker-internal wiring.
	bindRoot(root Node)
}

// ConsumerBase implements Consumer with the default behavior every
// strategy starts from. Canonical strategies embed it and override the
// handful of methods that define their behavior.
type ConsumerBase struct {
	// MaxRunsPerNode and MinRunsPerNode drive the default
	// WaitForExhaustion/MaxNbRunsFor policy: nodes with fuzz weight > 1
	// get MaxRunsPerNode emissions, others get MinRunsPerNode. -1 means
	// unbounded (run until exhaustion).
	MaxRunsPerNode int
	MinRunsPerNode int

	// RespectOrderFlag controls whether ReachableNodes calls preserve
	// child declaration order.
	RespectOrderFlag bool
	// FuzzMagnitudeValue is passed to ValueType.EnableFuzzMode.
	FuzzMagnitudeValue float64
	// NeedResetWhenStructureChangeFlag and FixConstraintsFlag back the
	// like-named Consumer methods; canonical strategies set them in
	// their constructors.
	NeedResetWhenStructureChangeFlag bool
	FixConstraintsFlag               bool

	internalsCriteria NodeCriteria
	semanticsCriteria SemanticsCriteria
	ownedConfs        []string
	conf              string
	hasCriteria       bool
	rootNode          Node
	lastBackup        Snapshot
}

// NewConsumerBase returns a ConsumerBase with the standard defaults:
// order-respecting candidate collection, fuzz magnitude 1.0, unbounded
// run counts.
func NewConsumerBase() ConsumerBase {
	return ConsumerBase{
		MaxRunsPerNode:     -1,
		MinRunsPerNode:     -1,
		RespectOrderFlag:   true,
		FuzzMagnitudeValue: 1.0,
	}
}

// SetNodeInterest composes the criteria InterestedBy evaluates. Passing
// a zero value for a parameter leaves the existing criterion untouched,
// so a caller can refine a consumer's interest after construction
// instead of only at construction time.
func (c *ConsumerBase) SetNodeInterest(internals NodeCriteria, semantics SemanticsCriteria, ownedConfs []string, conf string) {
	c.internalsCriteria = c.internalsCriteria.Extend(internals)
	c.hasCriteria = true
	if semantics != nil {
		c.semanticsCriteria = semantics
	}
	if len(ownedConfs) > 0 {
		c.ownedConfs = ownedConfs
	}
	if conf != "" {
		c.conf = conf
	}
}

func (c *ConsumerBase) bindRoot(root Node) { c.rootNode = root }

// InterestedBy implements the default interest gate: internals criteria,
// semantics criteria, ownership of one of a set of named configurations,
// and a path regular expression, all evaluated against the node's current
// (or explicitly pinned) configuration. A consumer with no criteria at
// all is interested in every node.
func (c *ConsumerBase) InterestedBy(node Node) bool {
	conf := c.conf
	if conf == "" {
		conf = c.internalsCriteria.Conf
	}
	if conf != "" && !node.IsConfExisting(conf) {
		return false
	}

	if c.ownedConfs != nil {
		owned := false
		for _, oc := range c.ownedConfs {
			if node.IsConfExisting(oc) {
				owned = true
				break
			}
		}
		if !owned {
			return false
		}
	}

	if c.hasCriteria && !c.internalsCriteria.matchesAttrsAndKind(node) {
		return false
	}

	semCrit := c.semanticsCriteria
	if semCrit == nil {
		semCrit = c.internalsCriteria.Semantics
	}
	if semCrit != nil {
		sem := node.Semantics()
		if sem == nil {
			return false
		}
		if tagged, ok := sem.(interface{ Tags() []string }); ok {
			if !semCrit.Match(tagged.Tags()) {
				return false
			}
		}
	}

	if c.internalsCriteria.PathRegexp != nil {
		root := c.rootNode
		if root == nil {
			root = node
		}
		matched := false
		for _, p := range node.AllPathsFrom(root) {
			if c.internalsCriteria.PathRegexp.MatchString(p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// ConsumeNode is the BasicVisitor-style default: refuse an already
// exhausted node, otherwise accept it.
func (c *ConsumerBase) ConsumeNode(node Node) bool {
	return !node.IsExhausted()
}

// SaveNode is the generic backup strategy: snapshot the node's internals
// wholesale. Cheap for value-type swaps, copy-heavy for structural or
// configuration swaps — strategies with expensive state prefer a
// shallower, hand-rolled SaveNode/RecoverNode pair instead.
func (c *ConsumerBase) SaveNode(node Node) {
	c.lastBackup = node.InternalsBackup()
}

// RecoverNode restores the snapshot SaveNode captured.
func (c *ConsumerBase) RecoverNode(node Node) {
	node.SetInternals(c.lastBackup)
}

// StillInterestedBy defaults to false: most strategies emit a node once
// per visit and let the walker move on.
func (c *ConsumerBase) StillInterestedBy(node Node) bool { return false }

// NeedReset defaults to true only for non-terminal nodes: changing a
// terminal's value never invalidates previously collected subnode lists,
// but changing a non-terminal's structure might.
func (c *ConsumerBase) NeedReset(node Node) bool { return node.Kind() == KindNonTerm }

// DoAfterReset is a no-op hook by default.
func (c *ConsumerBase) DoAfterReset(node Node) {}

// WaitForExhaustion translates MaxNbRunsFor's run-count policy into a
// step budget.
func (c *ConsumerBase) WaitForExhaustion(node Node) int {
	return max(c.MaxNbRunsFor(node)-1, -1)
}

// MaxNbRunsFor prefers MaxRunsPerNode for nodes whose fuzz weight is
// greater than one, MinRunsPerNode otherwise.
func (c *ConsumerBase) MaxNbRunsFor(node Node) int {
	if node.FuzzWeight() > 1 {
		return c.MaxRunsPerNode
	}
	return c.MinRunsPerNode
}

func (c *ConsumerBase) NeedResetWhenStructureChange() bool { return c.NeedResetWhenStructureChangeFlag }
func (c *ConsumerBase) FixConstraints() bool               { return c.FixConstraintsFlag }
func (c *ConsumerBase) RespectOrder() bool                 { return c.RespectOrderFlag }
func (c *ConsumerBase) FuzzMagnitude() float64             { return c.FuzzMagnitudeValue }
