package datamodel

import "testing"

func TestSemantics_MatchAnyTag(t *testing.T) {
	s := NewSemantics("length", "header")

	if !s.Match([]string{"header"}) {
		t.Error("expected a shared tag to match")
	}
	if s.Match([]string{"payload", "crc"}) {
		t.Error("expected disjoint tag sets not to match")
	}
	if s.Match(nil) {
		t.Error("expected an empty tag list not to match")
	}
}

func TestSemantics_TagsReturnsACopy(t *testing.T) {
	s := NewSemantics("length")
	tags := s.Tags()
	tags[0] = "mutated"
	if s.Tags()[0] != "length" {
		t.Error("mutating the returned slice leaked into the semantics")
	}
}
