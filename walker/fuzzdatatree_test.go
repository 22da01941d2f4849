package walker

import (
	"regexp"
	"testing"
)

type cstsRecorder struct {
	stubNode
	mutable bool
	path    string
	rules   []string
	subs    []Node
}

func (r *cstsRecorder) Kind() Kind { return KindNonTerm }
func (r *cstsRecorder) IsAttrSet(a Attr) bool {
	attrs := Attr(0)
	if r.mutable {
		attrs = AttrMutable | AttrFinite
	}
	return attrs.Has(a)
}
func (r *cstsRecorder) AllPathsFrom(root Node) []string {
	if r.path == "" {
		return nil
	}
	return []string{r.path}
}
func (r *cstsRecorder) ChangeSubnodesCsts(rule string) { r.rules = append(r.rules, rule) }
func (r *cstsRecorder) ReachableNodes(criteria NodeCriteria, opts ReachOpts) []Node {
	var out []Node
	if !opts.ExcludeSelf && criteria.matchesAttrsAndKind(r) {
		out = append(out, r)
	}
	for _, s := range r.subs {
		out = append(out, s.ReachableNodes(criteria, opts)...)
	}
	return out
}

func TestRelaxOrdering_RewritesEveryMutableNonTerm(t *testing.T) {
	inner := &cstsRecorder{mutable: true, path: "top.inner"}
	top := &cstsRecorder{mutable: true, path: "top", subs: []Node{inner}}

	RelaxOrdering(top, nil)

	for name, r := range map[string]*cstsRecorder{"top": top, "inner": inner} {
		if len(r.rules) != 1 {
			t.Fatalf("%s received %d rewrites, want 1", name, len(r.rules))
		}
		if r.rules[0] != "*:u=." {
			t.Errorf("%s rule = %q, want the unordered wildcard", name, r.rules[0])
		}
	}
}

func TestRelaxOrdering_SkipsImmutableNonTerms(t *testing.T) {
	frozen := &cstsRecorder{mutable: false, path: "top.frozen"}
	top := &cstsRecorder{mutable: true, path: "top", subs: []Node{frozen}}

	RelaxOrdering(top, nil)

	if len(frozen.rules) != 0 {
		t.Errorf("immutable non-terminal was rewritten: %v", frozen.rules)
	}
	if len(top.rules) != 1 {
		t.Errorf("mutable top should still be rewritten once, got %v", top.rules)
	}
}

func TestRelaxOrdering_PathRegexpRestrictsTheStartingPoints(t *testing.T) {
	inner := &cstsRecorder{mutable: true, path: "top.inner"}
	other := &cstsRecorder{mutable: true, path: "top.other"}
	top := &cstsRecorder{mutable: true, path: "top", subs: []Node{inner, other}}

	RelaxOrdering(top, regexp.MustCompile(`\.inner$`))

	if len(inner.rules) != 1 {
		t.Errorf("inner received %d rewrites, want 1", len(inner.rules))
	}
	if len(other.rules) != 0 {
		t.Errorf("other matched nothing but was rewritten: %v", other.rules)
	}
	if len(top.rules) != 0 {
		t.Errorf("top matched nothing but was rewritten: %v", top.rules)
	}
}
