package walker

import "regexp"

// RelaxOrdering rewrites the child-ordering constraint of every mutable
// non-terminal to the unconstrained wildcard rule ("*:u=."), so the
// underlying data model stops re-sorting children back into their
// canonical order on every Freeze. Consumers that reorder or duplicate
// subnodes (a separator-disruption strategy, say) call this once before
// walking.
//
// With a nil pathRegexp the relaxation starts at top itself; otherwise
// it starts at every node reachable from top whose path matches, and
// covers the mutable non-terminals under each.
func RelaxOrdering(top Node, pathRegexp *regexp.Regexp) {
	criteria := NodeCriteria{
		MandatoryAttrs: AttrMutable,
		Kinds:          []Kind{KindNonTerm},
	}

	roots := []Node{top}
	if pathRegexp != nil {
		roots = nil
		for _, n := range top.ReachableNodes(NodeCriteria{}, ReachOpts{}) {
			for _, p := range n.AllPathsFrom(top) {
				if pathRegexp.MatchString(p) {
					roots = append(roots, n)
					break
				}
			}
		}
	}

	for _, r := range roots {
		for _, nt := range r.ReachableNodes(criteria, ReachOpts{}) {
			nt.ChangeSubnodesCsts("*:u=.")
		}
	}
}
