package walker

// AltConfConsumer walks a node through a fixed sequence of named
// configurations, one emission per configuration owned by the node, and
// restores the node's original configuration on recovery. It is the tool
// for exercising every alternative shape a node's grammar declares (for
// instance a field that can alternate between a binary and a textual
// encoding).
//
// SaveNode and RecoverNode deliberately bypass the generic internals
// backup: configuration switches on a non-terminal reuse the same
// subnodes across configurations, so a deep snapshot would be pure
// overhead. Recovery is a shallow delta instead: reset the subtree,
// re-derive values, and switch back to the recorded original
// configuration in reverse direction.
type AltConfConsumer struct {
	ConsumerBase

	ownedConfs []string

	currentConsumedNode Node
	origConf            string
	confsList           []string
	recover             bool
}

// NewAltConfConsumer returns an AltConfConsumer that switches interested
// nodes through confs in order. Only mutable nodes that expose at least
// one of confs are offered.
func NewAltConfConsumer(confs []string) *AltConfConsumer {
	c := &AltConfConsumer{
		ConsumerBase: NewConsumerBase(),
		ownedConfs:   confs,
	}
	c.SetNodeInterest(NodeCriteria{MandatoryAttrs: AttrMutable}, nil, confs, "")
	c.NeedResetWhenStructureChangeFlag = true
	return c
}

// NeedReset requests a reset for any non-terminal other than the one
// currently being cycled through its configurations.
func (c *AltConfConsumer) NeedReset(node Node) bool {
	return node.Kind() == KindNonTerm && node != c.currentConsumedNode
}

// ConsumeNode switches node to the next candidate configuration. On the
// first call for a node the candidate list is built by filtering the
// owned configurations down to the ones the node actually exposes, and
// the node's original configuration is recorded for recovery.
func (c *AltConfConsumer) ConsumeNode(node Node) bool {
	if node == c.currentConsumedNode && len(c.confsList) == 0 {
		return false
	}

	if len(c.confsList) == 0 {
		candidates := make([]string, 0, len(c.ownedConfs))
		for _, conf := range c.ownedConfs {
			if node.IsConfExisting(conf) {
				candidates = append(candidates, conf)
			}
		}
		if len(candidates) == 0 {
			return false
		}
		c.confsList = candidates
		c.origConf = node.CurrentConf()
		c.currentConsumedNode = node
	}

	newConf := c.confsList[0]
	c.confsList = c.confsList[1:]

	if node.IsConfExisting(newConf) {
		node.SetCurrentConf(newConf, SetConfOpts{})
		node.Unfreeze(UnfreezeOpts{})
		c.recover = true
	} else {
		c.recover = false
	}
	return true
}

// StillInterestedBy reports whether candidate configurations remain,
// chaining one emission per remaining configuration.
func (c *AltConfConsumer) StillInterestedBy(node Node) bool {
	return len(c.confsList) > 0
}

// SaveNode is a no-op; see the type comment.
func (c *AltConfConsumer) SaveNode(node Node) {}

// RecoverNode resets the cycled node's subtree, re-derives its values,
// and restores the configuration it had before the first switch.
func (c *AltConfConsumer) RecoverNode(node Node) {
	if node != c.currentConsumedNode || !c.recover {
		return
	}

	node.ResetState(true)
	node.GetValue()

	node.SetCurrentConf(c.origConf, SetConfOpts{Reverse: true})
	node.Unfreeze(UnfreezeOpts{Recursive: true, DontChangeState: true, IgnoreEntanglement: true})
	node.GetValue()

	c.origConf = ""
	c.currentConsumedNode = nil
}

// WaitForExhaustion budgets emissions for the node currently being
// cycled (honoring the run-count policy for heavy nodes) and gives every
// other node a single emission.
func (c *AltConfConsumer) WaitForExhaustion(node Node) int {
	if c.currentConsumedNode == nil {
		return 0
	}
	if node == c.currentConsumedNode {
		if node.FuzzWeight() > 1 {
			return max(c.MaxRunsPerNode-1, -1)
		}
		return max(c.MinRunsPerNode-1, -1)
	}
	return 0
}
