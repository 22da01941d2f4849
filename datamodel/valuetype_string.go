package datamodel

import (
	"bytes"

	"github.com/5l1v3r1/fuddly/walker"
)

// StringValue is a free-form or length-bounded byte-string ValueType. It
// has no integer representation and no enumerated value set; its
// interesting fuzzy variants are boundary-length and format-string-style
// payloads rather than neighbor integers.
type StringValue struct {
	cur            []byte
	minLen, maxLen int
}

// NewStringValue returns a StringValue currently set to cur, with
// declared length bounds [minLen, maxLen].
func NewStringValue(cur []byte, minLen, maxLen int) *StringValue {
	return &StringValue{cur: append([]byte(nil), cur...), minLen: minLen, maxLen: maxLen}
}

// Set pins the current byte value.
func (v *StringValue) Set(b []byte) { v.cur = append([]byte(nil), b...) }

func (v *StringValue) Bytes() []byte { return append([]byte(nil), v.cur...) }

func (v *StringValue) CurrentRawVal() (int64, bool) { return 0, false }

func (v *StringValue) Values() ([]int64, bool) { return nil, false }

func (v *StringValue) Bounds() (int64, int64, bool) {
	if v.minLen == 0 && v.maxLen == 0 {
		return 0, 0, false
	}
	return int64(v.minLen), int64(v.maxLen), true
}

func (v *StringValue) GenBounds() (int64, int64, bool) { return v.Bounds() }

func (v *StringValue) Size() (int, bool) { return 0, false }

func (v *StringValue) IsAlternating() bool { return false }

// FuzzyClasses returns the canonical string-fuzzing corner cases: empty,
// one byte past the declared maximum length, and a format-string
// injection payload.
func (v *StringValue) FuzzyClasses() []func() walker.ValueType {
	maxLen := v.maxLen
	return []func() walker.ValueType{
		func() walker.ValueType { return &StringValue{cur: nil, minLen: v.minLen, maxLen: v.maxLen} },
		func() walker.ValueType {
			n := maxLen + 1
			if n <= 0 {
				n = 256
			}
			return &StringValue{cur: bytes.Repeat([]byte{'A'}, n), minLen: v.minLen, maxLen: v.maxLen}
		},
		func() walker.ValueType {
			return &StringValue{cur: []byte("%n%n%n%s%s%s"), minLen: v.minLen, maxLen: v.maxLen}
		},
	}
}

func (v *StringValue) SpecificFuzzyValues() []int64 { return nil }

func (v *StringValue) FuzzedVariant() (walker.ValueType, bool) { return nil, false }

func (v *StringValue) IsCompatible(x int64) bool { return false }

func (v *StringValue) ExtendValues(vals []int64) {}

func (v *StringValue) RemoveValues(vals []int64) {}

func (v *StringValue) CopyAttrsFrom(src walker.ValueType) {
	if s, ok := src.(*StringValue); ok {
		v.minLen, v.maxLen = s.minLen, s.maxLen
	}
}

func (v *StringValue) MakePrivate(forgetCurrentState bool) {}

func (v *StringValue) EnableFuzzMode(magnitude float64) {}

func (v *StringValue) Clone() walker.ValueType {
	return &StringValue{cur: append([]byte(nil), v.cur...), minLen: v.minLen, maxLen: v.maxLen}
}
