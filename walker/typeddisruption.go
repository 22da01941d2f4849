package walker

// TypedNodeDisruption mutates typed-value terminal and generator-function
// nodes by swapping in a sequence of "fuzzy" ValueType variants. An
// alternating type gets a single variant: a clone of itself in fuzz mode.
// Any other type gets its type-provided fuzzed variant (if any) first,
// then one sibling boundary type per fuzzy class; the first sibling
// compatible with the current raw value plus or minus one also carries
// value-relative neighbors of that value. Each variant is installed
// once, in that order, through chained emissions; recovery restores the
// node's original internals through the generic backup.
type TypedNodeDisruption struct {
	ConsumerBase

	// EnforceDeterminism pins each fuzzed node to deterministic variant
	// order after the swap. On by default; turn it off to let a random
	// tree stay random under fuzzing.
	EnforceDeterminism bool

	currentNode Node
	fuzzVTList  []ValueType
}

// NewTypedNodeDisruption returns a TypedNodeDisruption targeting mutable
// terminal and generator-function nodes, separators included.
func NewTypedNodeDisruption() *TypedNodeDisruption {
	return newTypedNodeDisruption(NodeCriteria{
		MandatoryAttrs: AttrMutable,
		Kinds:          []Kind{KindTerminal, KindGenFunc},
	})
}

// NewTypedNodeDisruptionIgnoringSeparators is NewTypedNodeDisruption
// with separator nodes excluded, for callers that fuzz separators
// separately (see SeparatorDisruption).
func NewTypedNodeDisruptionIgnoringSeparators() *TypedNodeDisruption {
	return newTypedNodeDisruption(NodeCriteria{
		MandatoryAttrs: AttrMutable,
		NegativeAttrs:  AttrSeparator,
		Kinds:          []Kind{KindTerminal, KindGenFunc},
	})
}

func newTypedNodeDisruption(criteria NodeCriteria) *TypedNodeDisruption {
	c := &TypedNodeDisruption{
		ConsumerBase:       NewConsumerBase(),
		EnforceDeterminism: true,
	}
	c.SetNodeInterest(criteria, nil, nil, "")
	c.NeedResetWhenStructureChangeFlag = true
	return c
}

// ConsumeNode installs node's next untried fuzzy variant. The variant
// list is built lazily on the first consumption of each node.
func (c *TypedNodeDisruption) ConsumeNode(node Node) bool {
	if node.Kind() == KindGenFunc {
		// A freezable generator keeps serving its frozen image, and a
		// generator whose product is not typed has no ValueType to swap.
		gen := node.GeneratedNode()
		if node.IsAttrSet(AttrFreezable) || gen == nil || gen.ValueType() == nil {
			return false
		}
	}

	if node != c.currentNode {
		c.currentNode = node
		c.fuzzVTList = nil
	}

	if len(c.fuzzVTList) == 0 {
		vtNode := node
		if node.Kind() == KindGenFunc {
			vtNode = node.GeneratedNode()
		}
		c.fuzzVTList = c.buildVariants(vtNode)
		if len(c.fuzzVTList) == 0 {
			return false
		}
	}

	vt := c.fuzzVTList[0]
	c.fuzzVTList = c.fuzzVTList[1:]

	node.SetValues(vt, SetValuesOpts{IgnoreEntanglement: true, PreserveNode: true})
	node.MakeFinite(false)
	if c.EnforceDeterminism {
		node.MakeDeterminist(false)
	}
	node.Unfreeze(UnfreezeOpts{IgnoreEntanglement: true})
	// The node must stay freezable, and its value type pinned, while the
	// installed variant is live.
	node.SetAttr(AttrFreezable | AttrLocked)

	return true
}

// StillInterestedBy reports whether node has untried fuzzy variants left.
func (c *TypedNodeDisruption) StillInterestedBy(node Node) bool {
	return node == c.currentNode && len(c.fuzzVTList) > 0
}

// buildVariants computes node's fuzzy variant list: an alternating type
// fuzzes itself; otherwise a type-provided fuzzed variant first, then one
// sibling per fuzzy class, with computed neighbors of the current raw
// value installed into the first compatible sibling.
func (c *TypedNodeDisruption) buildVariants(node Node) []ValueType {
	vt := node.ValueType()
	if vt == nil {
		return nil
	}

	// An alternating type is fuzzed through its own fuzz mode; no
	// sibling instantiation, no fuzzed-variant prepend, no neighbor
	// computation.
	if vt.IsAlternating() {
		clone := vt.Clone()
		clone.MakePrivate(false)
		clone.EnableFuzzMode(c.FuzzMagnitudeValue)
		return []ValueType{clone}
	}

	var out []ValueType
	for _, makeFuzzy := range vt.FuzzyClasses() {
		fv := makeFuzzy()
		if fv == nil {
			continue
		}
		fv.CopyAttrsFrom(vt)
		fv.EnableFuzzMode(c.FuzzMagnitudeValue)
		out = append(out, fv)
	}

	c.extendWithNeighbors(vt, out)

	if fuzzed, ok := vt.FuzzedVariant(); ok && fuzzed != nil {
		out = append([]ValueType{fuzzed}, out...)
	}

	return out
}

// extendWithNeighbors computes value-relative neighbors of the current
// raw value: val+1 and val-1 always; for an enumerated value set with
// min < max, the smallest and largest integers in [min,max] not already
// present, plus max+1 and min-1; for non-trivial numeric bounds, one
// past each generation bound; any type-declared specific fuzzy values.
// The neighbors are installed into the first sibling in candidates
// compatible with val+1 or val-1, with the original value removed from
// its enumeration; the walker then steps the chosen sibling through them
// one emission at a time.
func (c *TypedNodeDisruption) extendWithNeighbors(vt ValueType, candidates []ValueType) {
	val, ok := vt.CurrentRawVal()
	if !ok {
		return
	}

	// A list, not a set, to preserve determinism.
	neighbors := []int64{val + 1, val - 1}
	has := func(x int64) bool {
		for _, y := range neighbors {
			if y == x {
				return true
			}
		}
		return false
	}
	add := func(x int64) {
		if !has(x) {
			neighbors = append(neighbors, x)
		}
	}

	if values, ok := vt.Values(); ok && len(values) > 0 {
		minV, maxV := values[0], values[0]
		present := make(map[int64]bool, len(values))
		for _, x := range values {
			present[x] = true
			if x < minV {
				minV = x
			}
			if x > maxV {
				maxV = x
			}
		}
		if minV != maxV {
			var missing []int64
			for x := minV; x <= maxV; x++ {
				if !present[x] {
					missing = append(missing, x)
				}
			}
			if len(missing) > 0 {
				add(missing[0])
				add(missing[len(missing)-1])
			}
			add(maxV + 1)
			add(minV - 1)
		}
	}

	if mini, maxi, ok := vt.Bounds(); ok && !trivialFullRange(mini, maxi, vt) {
		if miniGen, maxiGen, ok := vt.GenBounds(); ok {
			add(miniGen - 1)
			add(maxiGen + 1)
		}
	}

	for _, sv := range vt.SpecificFuzzyValues() {
		add(sv)
	}

	// Only val±1 is checked when picking the target sibling; the other
	// neighbors are handed to ExtendValues unchecked (the reference
	// IntValue appends every one of them).
	var target ValueType
	for _, cand := range candidates {
		if cand.IsCompatible(val+1) || cand.IsCompatible(val-1) {
			target = cand
			break
		}
	}
	if target == nil {
		return
	}

	target.ExtendValues(neighbors)
	target.RemoveValues([]int64{val})
}

// trivialFullRange reports whether [mini,maxi] already spans vt's entire
// representable range for its bit width (full unsigned or full signed),
// in which case generation-bound neighbors add nothing new.
func trivialFullRange(mini, maxi int64, vt ValueType) bool {
	bits, ok := vt.Size()
	if !ok {
		// No fixed width (an integer-string-like type): bounds are
		// always considered meaningful.
		return false
	}
	fullUnsigned := mini == 0 && maxi == (int64(1)<<uint(bits))-1
	fullSigned := bits > 0 && mini == -(int64(1)<<uint(bits-1)) && maxi == (int64(1)<<uint(bits-1))-1
	return fullUnsigned || fullSigned
}
