package walker

// NonTermVisitor emits the structural (non-terminal) shapes of a tree,
// ignoring terminals and generator-functions entirely. It tracks the last
// and current non-terminal it saw: moving from one non-terminal to a
// different, non-exhausted one triggers a reset so the tree context is
// re-derived before the new shape is explored, and an exhausted
// non-terminal arriving while a previous one exists is rejected. Shapes
// are not de-duplicated: a non-terminal that is re-walked after a reset
// or a structural change is emitted again.
type NonTermVisitor struct {
	ConsumerBase

	last    Node
	current Node
}

// NewNonTermVisitor returns a NonTermVisitor.
func NewNonTermVisitor() *NonTermVisitor {
	v := &NonTermVisitor{ConsumerBase: NewConsumerBase()}
	v.SetNodeInterest(NodeCriteria{Kinds: []Kind{KindNonTerm}}, nil, nil, "")
	v.NeedResetWhenStructureChangeFlag = true
	return v
}

// ConsumeNode records the node as the current non-terminal and accepts
// it unless it is already exhausted while another non-terminal was being
// tracked.
func (v *NonTermVisitor) ConsumeNode(node Node) bool {
	v.last = v.current
	v.current = node

	if node.IsExhausted() && v.last != nil {
		return false
	}
	return true
}

// SaveNode is a no-op: nothing is mutated, so there is nothing to back
// up.
func (v *NonTermVisitor) SaveNode(node Node) {}

// RecoverNode rewinds the non-terminal's shape cursor shallowly and
// refreezes, leaving it on its first shape again.
func (v *NonTermVisitor) RecoverNode(node Node) {
	node.ResetState(false)
	node.Freeze()
}

// NeedReset triggers when moving from one non-terminal to a different,
// non-exhausted one; the tracking state is cleared so the new shape
// starts a fresh episode.
func (v *NonTermVisitor) NeedReset(node Node) bool {
	if node.Kind() == KindNonTerm && v.last != nil && node != v.last && !node.IsExhausted() {
		v.last = nil
		v.current = nil
		return true
	}
	return false
}

// StillInterestedBy is always false: each shape is emitted through the
// walker's own stepping, not through chained consumption.
func (v *NonTermVisitor) StillInterestedBy(node Node) bool { return false }

// WaitForExhaustion always waits until exhaustion.
func (v *NonTermVisitor) WaitForExhaustion(node Node) int { return -1 }
