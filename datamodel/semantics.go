package datamodel

// Semantics is a concrete walker.SemanticsCriteria: it matches if any of
// its tags appears in the criteria's tag list.
type Semantics struct {
	tags []string
}

// NewSemantics returns a Semantics carrying tags.
func NewSemantics(tags ...string) *Semantics {
	return &Semantics{tags: tags}
}

// Match reports whether any of s's tags appears in tags.
func (s *Semantics) Match(tags []string) bool {
	for _, want := range s.tags {
		for _, got := range tags {
			if want == got {
				return true
			}
		}
	}
	return false
}

// Tags returns s's own tags, read by node.Semantics() callers that want
// to inspect rather than just match.
func (s *Semantics) Tags() []string { return append([]string(nil), s.tags...) }
