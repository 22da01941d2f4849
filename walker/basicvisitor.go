package walker

// BasicVisitor steps every reachable terminal and generator-function
// node through its intrinsic variants, one emission each, without ever
// installing a mutation of its own. Non-terminals are not consumed, but
// a reset is requested for them so the tree advances through its
// structural shapes and every shape's leaves get visited in turn.
type BasicVisitor struct {
	ConsumerBase

	// visited tracks which nodes already had their first, as-is
	// emission. A node offered again (after a structural change cleared
	// the consumed-set) is advanced instead of re-emitted verbatim.
	visited map[Node]bool
}

// NewBasicVisitor returns a BasicVisitor interested in every node kind
// except non-terminals.
func NewBasicVisitor() *BasicVisitor {
	v := &BasicVisitor{ConsumerBase: NewConsumerBase(), visited: map[Node]bool{}}
	v.SetNodeInterest(NodeCriteria{NegativeKinds: []Kind{KindNonTerm}}, nil, nil, "")
	return v
}

// ConsumeNode emits the node as-is on its first visit, then advances the
// node's intrinsic variant by a shallow unfreeze/refreeze until
// exhaustion.
func (v *BasicVisitor) ConsumeNode(node Node) bool {
	first := !v.visited[node]
	if node.IsExhausted() && !first {
		return false
	}
	if first {
		v.visited[node] = true
		return true
	}
	if !node.IsExhausted() {
		node.Freeze()
		node.Unfreeze(UnfreezeOpts{IgnoreEntanglement: true})
		node.Freeze()
	}
	return true
}

// SaveNode is a no-op: nothing is mutated, so there is nothing to back
// up.
func (v *BasicVisitor) SaveNode(node Node) {}

// RecoverNode rewinds the node's variant cursor shallowly and refreezes,
// leaving it on its first variant again.
func (v *BasicVisitor) RecoverNode(node Node) {
	node.ResetState(false)
	node.Freeze()
}

// NeedReset requests a reset for every non-terminal, so the tree keeps
// advancing through its structural shapes until they are exhausted.
func (v *BasicVisitor) NeedReset(node Node) bool {
	return node.Kind() == KindNonTerm
}

// WaitForExhaustion always waits until exhaustion.
func (v *BasicVisitor) WaitForExhaustion(node Node) int { return -1 }
