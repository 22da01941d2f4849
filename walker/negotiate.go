package walker

import (
	"iter"

	"github.com/5l1v3r1/fuddly/walker/emit"
)

// nodeConsumerHelper runs the consumption protocol for a single node and
// yields directives to walkRec: zero or more emissions, interleaved with
// reset requests whenever the consumer wants the subtree re-walked under
// its mutation, terminated by an ignore directive (or by the caller
// breaking out of the range loop).
//
// Protocol, in order:
//
//  1. Snapshot the node's frozen bytes. If the consumer is interested and
//     the node has not been consumed this epoch, SaveNode then
//     ConsumeNode; a false return (or no interest, or already consumed)
//     yields a single ignore directive, with reset requested iff
//     NeedReset holds and the node is not exhausted.
//  2. Mark the node consumed, freeze it, compute the per-node emission
//     budget via WaitForExhaustion.
//  3. Loop: a reset-needed non-exhausted node yields a reset directive so
//     walkRec re-descends under the mutation; an exhausted node yields
//     its current mutation and then either chains another ConsumeNode
//     (StillInterestedBy) or recovers and stops; otherwise the current
//     mutation is yielded and the node's intrinsic variant is advanced by
//     a shallow unfreeze/refreeze, until the budget runs out.
//  4. On finish, after recovery, a final reset+ignore directive is
//     yielded if the node is still not exhausted and NeedReset holds.
//
// Several yields are terminal by contract: the walker must break out of
// the range loop when it sees them. Resuming the sequence past one of
// them is a programming error in the caller or the consumer, recorded as
// ErrContractViolation on the walker.
func (w *ModelWalker) nodeConsumerHelper(node Node, consumedNodes map[Node]bool) iter.Seq[directive] {
	return func(yield func(directive) bool) {
		orig := node.ToBytes()

		notInterested := func() directive {
			reset := w.consumer.NeedReset(node)
			switch {
			case reset && !node.IsExhausted():
				return directive{consumed: node, original: orig, reset: true, ignore: true}
			case reset && node.IsExhausted():
				return directive{ignore: true}
			default:
				return directive{consumed: node, original: orig, ignore: true}
			}
		}

		goOn := false
		if w.consumer.InterestedBy(node) && !consumedNodes[node] {
			w.consumer.SaveNode(node)
			goOn = w.consumer.ConsumeNode(node)
		}

		if !goOn {
			if node.IsExhausted() {
				w.metrics.recordExhaustion(w.runID, node.Name())
				w.emitter.Emit(emit.Event{RunID: w.runID, NodeName: node.Name(), Msg: "exhausted"})
			}
			w.metrics.recordIgnored(w.runID)
			if yield(notInterested()) {
				w.err = ErrContractViolation
			}
			return
		}

		consumedNodes[node] = true
		w.metrics.setConsumedSetSize(w.runID, len(consumedNodes))
		node.Freeze()
		notRecovered := true

		maxSteps := w.consumer.WaitForExhaustion(node)
		w.metrics.observeWaitBudget(maxSteps)
		consumeCalledAgain := false

		for {
			reset := w.consumer.NeedReset(node)

			switch {
			case reset && !node.IsExhausted():
				if !yield(directive{consumed: node, original: orig, reset: true}) {
					return
				}

			case reset && node.IsExhausted():
				w.metrics.recordExhaustion(w.runID, node.Name())
				w.emitter.Emit(emit.Event{RunID: w.runID, NodeName: node.Name(), Msg: "exhausted"})
				if yield(directive{ignore: true}) {
					w.err = ErrContractViolation
				}
				return

			case node.IsExhausted():
				w.metrics.recordExhaustion(w.runID, node.Name())
				w.emitter.Emit(emit.Event{RunID: w.runID, NodeName: node.Name(), Msg: "exhausted"})
				if !yield(directive{consumed: node, original: orig}) {
					return
				}
				if w.consumer.InterestedBy(node) {
					if w.consumer.StillInterestedBy(node) {
						w.consumer.ConsumeNode(node)
					} else {
						w.consumer.RecoverNode(node)
						if w.consumer.FixConstraints() {
							node.FixSynchronizedNodes()
						}
						if yield(notInterested()) {
							w.err = ErrContractViolation
						}
						return
					}
					consumeCalledAgain = true
					node.GetValue()
					notRecovered = true
				} else {
					if consumedNodes[node] {
						w.consumer.RecoverNode(node)
						if w.consumer.FixConstraints() {
							node.FixSynchronizedNodes()
						}
						notRecovered = false
					}
					return
				}

			default:
				if !yield(directive{consumed: node, original: orig}) {
					return
				}
			}

			switch {
			case maxSteps != 0 && !consumeCalledAgain:
				maxSteps--
				// Iterate only on the current node: advance its
				// intrinsic variant without disturbing the subtree.
				node.Unfreeze(UnfreezeOpts{IgnoreEntanglement: true})
				node.Freeze()
				if w.consumer.FixConstraints() {
					node.FixSynchronizedNodes()
				}
			case !consumeCalledAgain:
				if notRecovered && (w.consumer.InterestedBy(node) || consumedNodes[node]) {
					w.consumer.RecoverNode(node)
					if w.consumer.FixConstraints() {
						node.FixSynchronizedNodes()
					}
					if !node.IsExhausted() && w.consumer.NeedReset(node) {
						yield(directive{reset: true, ignore: true})
					}
				}
				return
			default:
				consumeCalledAgain = false
			}
		}
	}
}
