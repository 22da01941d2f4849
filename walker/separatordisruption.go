package walker

import "bytes"

// SeparatorDisruption targets separator nodes (AttrSeparator-tagged
// terminals, such as delimiters or padding) rather than payload-carrying
// ones. For each separator it tries a fixed candidate list — an empty
// value followed by the caller-supplied separators, in order, skipping
// whichever candidate equals the node's current bytes — one emission per
// candidate. Node attributes, AttrSeparator included, are preserved
// across the substitution. Callers that also want to test relaxed
// subnode ordering should call RelaxOrdering on the tree before walking,
// since a corrupted separator is only interesting to a parser if the
// surrounding nodes are still free to reassemble around it.
type SeparatorDisruption struct {
	ConsumerBase

	separators [][]byte

	currentNode Node
	candidates  [][]byte
}

// NewSeparatorDisruption returns a SeparatorDisruption restricted to
// mutable separator terminals, trying an empty value followed by each of
// separators (in order) as a replacement.
func NewSeparatorDisruption(separators ...[]byte) *SeparatorDisruption {
	c := &SeparatorDisruption{
		ConsumerBase: NewConsumerBase(),
		separators:   separators,
	}
	c.SetNodeInterest(NodeCriteria{
		MandatoryAttrs: AttrMutable | AttrSeparator,
		Kinds:          []Kind{KindTerminal},
	}, nil, nil, "")
	return c
}

// ConsumeNode installs node's next untried candidate separator value.
// The candidate list is built on the first consumption of each node by
// filtering out whichever candidate equals the node's current raw bytes.
func (c *SeparatorDisruption) ConsumeNode(node Node) bool {
	if node != c.currentNode {
		c.currentNode = node

		cur := node.ToBytes()
		all := append([][]byte{{}}, c.separators...)
		c.candidates = c.candidates[:0]
		for _, cand := range all {
			if bytes.Equal(cand, cur) {
				continue
			}
			c.candidates = append(c.candidates, cand)
		}
	}

	if len(c.candidates) == 0 {
		return false
	}
	next := c.candidates[0]
	c.candidates = c.candidates[1:]

	node.SetValues(newSeparatorValue(next), SetValuesOpts{PreserveNode: true})
	node.Unfreeze(UnfreezeOpts{IgnoreEntanglement: true})
	node.MakeFinite(false)
	node.MakeDeterminist(false)

	return true
}

// StillInterestedBy reports whether node has untried candidates left.
func (c *SeparatorDisruption) StillInterestedBy(node Node) bool {
	return node == c.currentNode && len(c.candidates) > 0
}

// separatorValue is a minimal string ValueType carrying a single fixed
// candidate byte string, with no further fuzzy variants of its own: the
// variation across candidates is driven by SeparatorDisruption, not by
// this type.
type separatorValue struct {
	b []byte
}

func newSeparatorValue(b []byte) *separatorValue {
	return &separatorValue{b: append([]byte(nil), b...)}
}

func (v *separatorValue) Bytes() []byte                       { return append([]byte(nil), v.b...) }
func (v *separatorValue) CurrentRawVal() (int64, bool)        { return 0, false }
func (v *separatorValue) Values() ([]int64, bool)             { return nil, false }
func (v *separatorValue) Bounds() (int64, int64, bool)        { return 0, 0, false }
func (v *separatorValue) GenBounds() (int64, int64, bool)     { return 0, 0, false }
func (v *separatorValue) Size() (int, bool)                   { return 0, false }
func (v *separatorValue) IsAlternating() bool                 { return false }
func (v *separatorValue) FuzzyClasses() []func() ValueType    { return nil }
func (v *separatorValue) SpecificFuzzyValues() []int64        { return nil }
func (v *separatorValue) FuzzedVariant() (ValueType, bool)    { return nil, false }
func (v *separatorValue) IsCompatible(x int64) bool           { return false }
func (v *separatorValue) ExtendValues(vals []int64)           {}
func (v *separatorValue) RemoveValues(vals []int64)           {}
func (v *separatorValue) CopyAttrsFrom(src ValueType)         {}
func (v *separatorValue) MakePrivate(forgetCurrentState bool) {}
func (v *separatorValue) EnableFuzzMode(magnitude float64)    {}
func (v *separatorValue) Clone() ValueType {
	return &separatorValue{b: append([]byte(nil), v.b...)}
}
