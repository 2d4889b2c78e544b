package graph

// StructurallyEqual reports whether g and other have the same live
// vertex set and the same live edges (as a multiset of source/scope/
// destination triples), independent of object identity or internal
// storage order. The driver uses this, alongside identity comparison,
// to detect in-place mutations that reuse the same *Graph container
// (see DESIGN.md, "identical end graph" open question).
func (g *Graph) StructurallyEqual(other *Graph) bool {
	if g == other {
		return true
	}
	av, bv := g.Vertices(), other.Vertices()
	if len(av) != len(bv) {
		return false
	}
	aSet := make(map[Element]bool, len(av))
	for _, e := range av {
		aSet[e] = true
	}
	for _, e := range bv {
		if !aSet[e] {
			return false
		}
	}

	type triple struct {
		src, dst Element
		scope    Scope
	}
	count := func(gr *Graph) map[triple]int {
		m := make(map[triple]int)
		for _, v := range gr.Vertices() {
			for _, succ := range gr.Successors(v) {
				m[triple{src: v, dst: succ.Element, scope: succ.Scope}]++
			}
		}
		return m
	}
	ac, bc := count(g), count(other)
	if len(ac) != len(bc) {
		return false
	}
	for k, n := range ac {
		if bc[k] != n {
			return false
		}
	}
	return true
}
