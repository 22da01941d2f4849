package datamodel

import "testing"

func TestIntValue_BytesRespectsBitWidth(t *testing.T) {
	v := NewIntValueRange(0, 255, 8)
	v.Set(0xAB)
	if got := v.Bytes(); len(got) != 1 || got[0] != 0xAB {
		t.Fatalf("Bytes() = %x, want [ab]", got)
	}

	v32 := NewIntValueRange(0, 1<<31-1, 32)
	v32.Set(0x01020304)
	if got := v32.Bytes(); len(got) != 4 || got[0] != 0x01 || got[3] != 0x04 {
		t.Fatalf("Bytes() = %x, want big-endian 01020304", got)
	}
}

func TestIntValue_IsCompatible(t *testing.T) {
	v := NewIntValueRange(10, 20, 8)
	if !v.IsCompatible(15) {
		t.Error("15 should be compatible with [10,20]")
	}
	if v.IsCompatible(30) {
		t.Error("30 should not be compatible with [10,20]")
	}
}

func TestIntValue_FuzzyClassesIncludeBoundaries(t *testing.T) {
	v := NewIntValueRange(0, 255, 8)
	variants := v.FuzzyClasses()
	if len(variants) == 0 {
		t.Fatal("expected at least one fuzzy class")
	}
	sawOverflow := false
	for _, factory := range variants {
		fv := factory().(*IntValue)
		if fv.cur == 256 {
			sawOverflow = true
		}
	}
	if !sawOverflow {
		t.Error("expected a fuzzy class one past the upper bound (256)")
	}
}

func TestIntValue_CloneIsIndependent(t *testing.T) {
	v := NewIntValueEnum(8, 1, 2, 3)
	clone := v.Clone().(*IntValue)
	clone.ExtendValues([]int64{4})
	if len(v.values) != 3 {
		t.Errorf("mutating clone leaked into original: %v", v.values)
	}
}
