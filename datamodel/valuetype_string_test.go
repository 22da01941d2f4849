package datamodel

import (
	"bytes"
	"testing"
)

func TestStringValue_BytesAndSetCopy(t *testing.T) {
	v := NewStringValue([]byte("abc"), 0, 8)

	got := v.Bytes()
	got[0] = 'X'
	if !bytes.Equal(v.Bytes(), []byte("abc")) {
		t.Error("mutating the returned slice leaked into the value")
	}

	v.Set([]byte("de"))
	if !bytes.Equal(v.Bytes(), []byte("de")) {
		t.Errorf("Bytes() after Set = %q, want de", v.Bytes())
	}
}

func TestStringValue_HasNoIntegerRepresentation(t *testing.T) {
	v := NewStringValue([]byte("abc"), 0, 8)
	if _, ok := v.CurrentRawVal(); ok {
		t.Error("a string value should report no integer representation")
	}
	if v.IsCompatible(1) {
		t.Error("integer neighbors should never be compatible with a string")
	}
}

func TestStringValue_FuzzyClassesCoverLengthBoundaries(t *testing.T) {
	v := NewStringValue([]byte("abc"), 1, 4)

	var lens []int
	for _, factory := range v.FuzzyClasses() {
		lens = append(lens, len(factory().Bytes()))
	}

	sawEmpty, sawOverlong := false, false
	for _, n := range lens {
		if n == 0 {
			sawEmpty = true
		}
		if n > 4 {
			sawOverlong = true
		}
	}
	if !sawEmpty {
		t.Error("expected an empty-string fuzzy class")
	}
	if !sawOverlong {
		t.Error("expected a fuzzy class longer than the declared maximum")
	}
}
