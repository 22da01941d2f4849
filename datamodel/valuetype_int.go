package datamodel

import "github.com/5l1v3r1/fuddly/walker"

// IntValue is an integer-like walker.ValueType: a current value, an
// optional enumerated value set, and/or min/max bounds with a fixed bit
// width. An enumerated IntValue cycles through its value set one entry
// per unfreeze/refreeze of its node; a bounded or pinned one serializes
// a single fixed value.
type IntValue struct {
	cur     int64
	values  []int64
	idx     int
	mini    int64
	maxi    int64
	hasMini bool
	bits    int
}

// NewIntValueRange returns an IntValue bounded to [mini, maxi], bits wide,
// currently set to mini.
func NewIntValueRange(mini, maxi int64, bits int) *IntValue {
	return &IntValue{cur: mini, mini: mini, maxi: maxi, hasMini: true, bits: bits}
}

// NewIntValueEnum returns an IntValue restricted to the given values,
// currently set to the first one.
func NewIntValueEnum(bits int, values ...int64) *IntValue {
	var cur int64
	if len(values) > 0 {
		cur = values[0]
	}
	return &IntValue{cur: cur, values: append([]int64(nil), values...), bits: bits}
}

// Set pins the current value, independent of Values()/Bounds().
func (v *IntValue) Set(x int64) { v.cur = x }

// stepValue advances an enumerated value to the next entry, wrapping at
// the end. LeafNode drives it on each state-changing Unfreeze.
func (v *IntValue) stepValue() {
	if len(v.values) == 0 {
		return
	}
	if v.idx < len(v.values)-1 {
		v.idx++
	} else {
		v.idx = 0
	}
	v.cur = v.values[v.idx]
}

// hasNextValue reports whether untried enumerated entries remain.
func (v *IntValue) hasNextValue() bool { return v.idx < len(v.values)-1 }

func (v *IntValue) Bytes() []byte {
	n := v.bits / 8
	if n <= 0 {
		n = 8
	}
	out := make([]byte, n)
	u := uint64(v.cur)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}
	return out
}

func (v *IntValue) CurrentRawVal() (int64, bool) { return v.cur, true }

func (v *IntValue) Values() ([]int64, bool) {
	if len(v.values) == 0 {
		return nil, false
	}
	return append([]int64(nil), v.values...), true
}

func (v *IntValue) Bounds() (int64, int64, bool) {
	if !v.hasMini {
		return 0, 0, false
	}
	return v.mini, v.maxi, true
}

func (v *IntValue) GenBounds() (int64, int64, bool) { return v.Bounds() }

func (v *IntValue) Size() (int, bool) {
	if v.bits <= 0 {
		return 0, false
	}
	return v.bits, true
}

func (v *IntValue) IsAlternating() bool { return false }

// FuzzyClasses returns boundary-value siblings: zero, minus one, one past
// each declared bound, and the type's maximum representable magnitude.
func (v *IntValue) FuzzyClasses() []func() walker.ValueType {
	mini, maxi, bits := v.mini, v.maxi, v.bits
	hasBounds := v.hasMini
	factory := func(x int64) func() walker.ValueType {
		return func() walker.ValueType {
			return &IntValue{cur: x, mini: mini, maxi: maxi, hasMini: hasBounds, bits: bits}
		}
	}
	out := []func() walker.ValueType{factory(0), factory(-1), factory(maxBitsValue(bits))}
	if hasBounds {
		out = append(out, factory(maxi+1), factory(mini-1))
	}
	return out
}

func maxBitsValue(bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return 1<<63 - 1
	}
	return int64(1)<<uint(bits) - 1
}

func (v *IntValue) SpecificFuzzyValues() []int64 { return nil }

func (v *IntValue) FuzzedVariant() (walker.ValueType, bool) { return nil, false }

func (v *IntValue) IsCompatible(x int64) bool {
	if len(v.values) > 0 {
		for _, cv := range v.values {
			if cv == x {
				return true
			}
		}
		return false
	}
	if v.hasMini {
		return x >= v.mini && x <= v.maxi
	}
	return true
}

func (v *IntValue) ExtendValues(vals []int64) {
	wasEmpty := len(v.values) == 0
	v.values = append(v.values, vals...)
	if wasEmpty && len(v.values) > 0 {
		v.idx = 0
		v.cur = v.values[0]
	}
}

func (v *IntValue) RemoveValues(vals []int64) {
	drop := make(map[int64]bool, len(vals))
	for _, x := range vals {
		drop[x] = true
	}
	out := v.values[:0]
	for _, x := range v.values {
		if !drop[x] {
			out = append(out, x)
		}
	}
	v.values = out
	if v.idx >= len(v.values) {
		v.idx = 0
	}
	if len(v.values) > 0 {
		v.cur = v.values[v.idx]
	}
}

func (v *IntValue) CopyAttrsFrom(src walker.ValueType) {
	if s, ok := src.(*IntValue); ok {
		v.mini, v.maxi, v.hasMini, v.bits = s.mini, s.maxi, s.hasMini, s.bits
	}
}

func (v *IntValue) MakePrivate(forgetCurrentState bool) {
	if !forgetCurrentState {
		return
	}
	switch {
	case len(v.values) > 0:
		v.idx = 0
		v.cur = v.values[0]
	case v.hasMini:
		v.cur = v.mini
	}
}

func (v *IntValue) EnableFuzzMode(magnitude float64) {}

func (v *IntValue) Clone() walker.ValueType {
	cp := *v
	cp.values = append([]int64(nil), v.values...)
	return &cp
}
