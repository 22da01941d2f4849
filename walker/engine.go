package walker

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/5l1v3r1/fuddly/walker/emit"
)

// ModelWalker performs a deterministic, exhaustive traversal of a
// structured Node tree, offering each reachable node to a Consumer and
// yielding one Emission per accepted mutation.
//
// The driving rule of the traversal is to step each node up to
// exhaustion before moving on (ConsumeNode is not called in-between),
// and the change of a non-terminal only re-walks its direct context,
// never its indirect ancestors, to avoid combinatorial explosion.
//
// For every node, depth-first, the walker first freezes the node and
// descends into its direct mutable subnodes (so a consumer sees the most
// deeply nested candidates first), then negotiates the node itself
// through nodeConsumerHelper. Directives coming back from the
// negotiation tell the walker to reset the node and re-enter Step 1
// (with or without re-negotiating it), to move on to the next sibling,
// or to yield an emission upstream.
//
// A reset unfreezes the node (and, ignoring entanglement, every
// trigger-last generator node reachable from the root) and calls DoAfterReset,
// after which the same node is offered to Step 1 again. If freezing the
// node reveals a pending structural change — different children or a
// different count of them — the walker either re-walks all earlier
// siblings with a cleared consumed-set (NeedResetWhenStructureChange) or
// simply clears the consumed-set so previously consumed nodes can be
// re-offered under the new structure.
//
// The walk terminates once every reachable node is exhausted, or early
// if MaxSteps is reached, or immediately if the caller stops ranging over
// Walk's iterator.
type ModelWalker struct {
	rootNode Node
	consumer Consumer

	maxSteps    int
	initialStep int
	determinism DeterminismMode

	// ic gates which direct subnodes Step 1 descends into: only mutable,
	// finite nodes are traversal candidates. Whether the consumer
	// actually wants one of them is negotiated later, per node.
	ic NodeCriteria
	// triglastIC selects trigger-last generator-function nodes a reset
	// must unfreeze before the node itself, so they regenerate in step
	// with whatever just changed.
	triglastIC NodeCriteria

	metrics *Metrics
	emitter emit.Emitter
	runID   string

	err error
}

// Emission is one node offered to, and accepted by, the Consumer.
type Emission struct {
	// Root is the walk's root node, useful for resolving Consumed's path.
	Root Node
	// Consumed is the node that was mutated.
	Consumed Node
	// Original is the node's frozen byte value at the moment of mutation.
	Original []byte
	// Step is the 1-indexed emission counter, including fast-forwarded
	// steps below InitialStep.
	Step int
}

// New constructs a ModelWalker over root using consumer, applying opts in
// order. root and consumer must be non-nil.
func New(root Node, consumer Consumer, opts ...Option) (*ModelWalker, error) {
	if root == nil {
		return nil, fmt.Errorf("walker: root node must not be nil")
	}
	if consumer == nil {
		return nil, fmt.Errorf("walker: consumer must not be nil")
	}

	w := &ModelWalker{
		rootNode:    root,
		consumer:    consumer,
		maxSteps:    -1,
		initialStep: 1,
		emitter:     emit.NewNullEmitter(),
		ic:          NodeCriteria{MandatoryAttrs: AttrMutable | AttrFinite},
		triglastIC: NodeCriteria{
			Kinds:                   []Kind{KindGenFunc},
			MandatoryCustomizations: []string{"trigger-last"},
		},
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	consumer.bindRoot(root)
	return w, nil
}

// Err returns the terminal error the most recent Walk produced, or nil if
// the walk ran to completion (or was stopped by the caller) without one.
func (w *ModelWalker) Err() error { return w.err }

// Walk returns an iterator over the walk's Emissions. Each call starts a
// fresh traversal from the root's current state: the root is made Finite
// recursively, switched to the requested determinism mode, and frozen
// before the first descent. Ranging over the returned sequence and
// breaking early stops the walk cooperatively, without side effects
// beyond whatever mutations already happened.
func (w *ModelWalker) Walk() iter.Seq[Emission] {
	return func(yield func(Emission) bool) {
		w.err = nil

		runID := w.runID
		if runID == "" {
			runID = uuid.NewString()
		}
		w.runID = runID

		w.rootNode.MakeFinite(true)
		switch w.determinism {
		case Deterministic:
			w.rootNode.MakeDeterminist(true)
		case Random:
			w.rootNode.MakeRandom(true)
		}
		w.rootNode.Freeze()

		cpt := 0
		delivered := 0
		stop := false

		emitFn := func(consumed Node, original []byte) bool {
			w.rootNode.Freeze()
			if _, ok := consumed.PathFrom(w.rootNode); !ok {
				// Not resolvable from the frozen root right now (an
				// existence condition may have hidden it); skip without
				// advancing the step counter.
				w.emitter.Emit(emit.Event{
					RunID:    runID,
					NodeName: consumed.Name(),
					Msg:      "emission_skipped",
					Meta:     map[string]any{"error": errPathUnreachable.Error()},
				})
				return true
			}
			cpt++

			if cpt < w.initialStep {
				return true
			}
			if w.maxSteps != -1 && delivered >= w.maxSteps {
				stop = true
				return false
			}
			delivered++
			w.metrics.recordEmission(runID)

			w.emitter.Emit(emit.Event{
				RunID:    runID,
				Step:     cpt,
				NodeName: consumed.Name(),
				Msg:      "emission",
			})

			if !yield(Emission{Root: w.rootNode, Consumed: consumed, Original: original, Step: cpt}) {
				stop = true
				return false
			}
			return true
		}

		consumedNodes := map[Node]bool{}
		w.walkRec([]Node{w.rootNode}, consumedNodes, emitFn)

		if stop {
			return
		}
		if cpt < w.initialStep {
			w.err = ErrInitialStepOvershoot
			w.emitter.Emit(emit.Event{
				RunID: runID,
				Step:  cpt,
				Msg:   "initial_step_overshoot",
				Meta:  map[string]any{"initial_step": w.initialStep, "total_emissions": cpt},
			})
		}
	}
}

// walkRec negotiates every node in nodeList, depth-first, sharing
// consumedNodes across the whole call tree rooted at their common
// ancestor. It returns false as soon as emitFn reports the caller wants
// to stop, propagating the stop all the way back up to Walk.
func (w *ModelWalker) walkRec(nodeList []Node, consumedNodes map[Node]bool, emitFn func(Node, []byte) bool) bool {
	for _, node := range nodeList {
		again := true
		performSecondStep := true

		for again {
			again = false

			// Step 1: freeze before searching, otherwise the search could
			// catch nodes that won't exist in the finally output tree.
			node.Freeze()

			subnodes := node.ReachableNodes(w.ic, ReachOpts{
				ExcludeSelf:   true,
				RespectOrder:  w.consumer.RespectOrder(),
				RelativeDepth: 1,
			})
			if len(subnodes) > 0 {
				if !w.walkRec(subnodes, consumedNodes, emitFn) {
					return false
				}
			}

			// Step 2: offer the node to the consumer, unless a previous
			// reset told us to skip it on re-entry.
			if performSecondStep {
				stopped := false
				for d := range w.nodeConsumerHelper(node, consumedNodes) {
					switch {
					case d.ignore && d.reset:
						performSecondStep = false
						again = true
						w.resetNode(node)
					case d.ignore:
						performSecondStep = false
					case d.reset:
						performSecondStep = true
						again = true
						w.resetNode(node)
					default:
						performSecondStep = true
						if !emitFn(d.consumed, d.original) {
							stopped = true
							break
						}
						continue
					}
					break
				}
				if stopped {
					return false
				}
			} else if w.consumer.NeedReset(node) {
				// Not consumed, but if the node is not exhausted new
				// cases may yet appear for the consumer after a reset.
				again = !node.IsExhausted()
				w.resetNode(node)
			}

			// Step 3: a non-terminal whose next freeze alters its children
			// invalidates part of what has been consumed so far.
			if node.Kind() == KindNonTerm && node.StructureWillChange() {
				if w.consumer.NeedResetWhenStructureChange() {
					idx := indexOf(nodeList, node)
					if idx > 0 {
						if !w.walkRec(nodeList[:idx], map[Node]bool{}, emitFn) {
							return false
						}
					}
					// The subnodes of the node that produced the change
					// still need reassessing; the recursive call above
					// only covered its earlier siblings.
					consumedNodes = map[Node]bool{}
				} else {
					consumedNodes = map[Node]bool{}
				}
			}
		}
	}
	return true
}

// resetNode unfreezes node's subtree (and every trigger-last generator
// reachable from the root) so a subsequent Freeze re-derives it, then
// notifies the consumer.
func (w *ModelWalker) resetNode(node Node) {
	for _, g := range w.rootNode.ReachableNodes(w.triglastIC, ReachOpts{RespectOrder: w.consumer.RespectOrder()}) {
		g.Unfreeze(UnfreezeOpts{IgnoreEntanglement: true})
	}

	node.Unfreeze(UnfreezeOpts{Recursive: false})
	node.Unfreeze(UnfreezeOpts{Recursive: true, DontChangeState: true, IgnoreEntanglement: true})

	w.consumer.DoAfterReset(node)

	w.metrics.recordReset(w.runID, node.Name())
	w.emitter.Emit(emit.Event{RunID: w.runID, NodeName: node.Name(), Msg: "reset"})
}

func indexOf(list []Node, target Node) int {
	for i, n := range list {
		if n == target {
			return i
		}
	}
	return -1
}
