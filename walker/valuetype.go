package walker

// ValueType is the domain object behind a typed terminal or generator
// node: it exposes the current raw value, an optional enumerated value
// set, optional min/max bounds, a catalogue of related "fuzzy" types, and
// a list of type-specific fuzzy values. TypedNodeDisruption drives almost
// all of its methods; most other consumers never look past Bytes.
type ValueType interface {
	// Bytes returns the type's current serialized value.
	Bytes() []byte

	// CurrentRawVal returns the type's current value as an integer and
	// true, or (0, false) if the type has no meaningful integer
	// representation (e.g. a free-form string).
	CurrentRawVal() (int64, bool)

	// Values returns the enumerated value set, or (nil, false) if the
	// type does not restrict itself to an enumeration.
	Values() ([]int64, bool)

	// Bounds returns the type's declared min/max, or (0, 0, false) if
	// the type has no numeric bounds (e.g. a variable-length string).
	Bounds() (mini, maxi int64, ok bool)

	// GenBounds returns the bounds actually used to generate values,
	// which may differ from Bounds() for types like unsized integer
	// strings. Returns ok=false under the same conditions as Bounds.
	GenBounds() (miniGen, maxiGen int64, ok bool)

	// Size returns the type's bit width, or (0, false) if the type is
	// not a fixed-width integer (used to detect "full range" bounds).
	Size() (bits int, ok bool)

	// IsAlternating reports whether this type is itself a disjunction of
	// other types (a "VT_Alt"); such types are fuzzed by enabling their
	// own internal fuzz mode rather than by instantiating siblings.
	IsAlternating() bool

	// FuzzyClasses returns factories for sibling types engineered to
	// produce malformed or boundary values related to this type.
	FuzzyClasses() []func() ValueType

	// SpecificFuzzyValues returns type-declared values known to be
	// interesting to fuzz (e.g. format-specific magic numbers).
	SpecificFuzzyValues() []int64

	// FuzzedVariant returns a type-provided single fuzzed variant of
	// itself, or (nil, false) if the type declares none.
	FuzzedVariant() (ValueType, bool)

	// IsCompatible reports whether v is a value this type could accept
	// into its enumeration (used to pick a home for computed neighbor
	// values).
	IsCompatible(v int64) bool

	// ExtendValues appends vals to the type's enumerated value set.
	ExtendValues(vals []int64)
	// RemoveValues removes vals from the type's enumerated value set.
	RemoveValues(vals []int64)

	// CopyAttrsFrom copies display/behavioral attributes (but not the
	// current value) from src into the receiver.
	CopyAttrsFrom(src ValueType)
	// MakePrivate detaches the type from any shared backing storage so
	// it can be mutated without affecting siblings that cloned from the
	// same source. If forgetCurrentState is true the type's enumeration
	// cursor is also reset.
	MakePrivate(forgetCurrentState bool)
	// EnableFuzzMode switches an alternating type into fuzzing mode,
	// scaled by magnitude.
	EnableFuzzMode(magnitude float64)

	// Clone returns a value-identical copy of the type, used so a
	// consumer can derive a fuzzy variant without mutating the original.
	Clone() ValueType
}
