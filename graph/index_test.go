package graph

import "testing"

func TestIndexedTopologicalOrder(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	b := &stubElement{name: "b"}
	g.AddVertex(a)
	g.AddVertex(b)
	mustEdge(t, g, head, a, stubScope{"1"})
	mustEdge(t, g, a, b, stubScope{"2"})
	mustEdge(t, g, b, tail, stubScope{"3"})

	idx := NewIndexed(g, Topological)
	positions := make(map[Element]int)
	for i, pos := range idx.Order() {
		positions[idx.Element(pos)] = i
	}

	if positions[head] > positions[a] || positions[a] > positions[b] || positions[b] > positions[tail] {
		t.Fatalf("expected head < a < b < tail in topological order, got %v", positions)
	}
}

func TestIndexedReverseTopologicalIsReversed(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)
	mustEdge(t, g, head, a, stubScope{"1"})
	mustEdge(t, g, a, tail, stubScope{"2"})

	fwd := NewIndexed(g, Topological).Order()
	rev := NewIndexed(g, ReverseTopological).Order()

	if len(fwd) != len(rev) {
		t.Fatalf("length mismatch: %d vs %d", len(fwd), len(rev))
	}
	for i := range fwd {
		if fwd[i] != rev[len(rev)-1-i] {
			t.Fatalf("expected reverse-topological to be exactly reversed topological order")
		}
	}
}

func TestIndexedScopeBundling(t *testing.T) {
	g, head, tail := newTestGraph()
	mustEdge(t, g, head, tail, stubScope{"extra"})

	idx := NewIndexed(g, Topological)
	hi := idx.IndexOf(head)
	ti := idx.IndexOf(tail)

	scopes := idx.ScopesTo(hi, ti)
	if len(scopes) != 2 {
		t.Fatalf("expected the original zero-scope edge plus the extra one, got %d", len(scopes))
	}
}

func TestIndexedMaskedExcludesBookends(t *testing.T) {
	g, _, _ := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)

	idx := NewIndexedMasked(g.Mask(), Topological)
	if idx.N() != 1 {
		t.Fatalf("expected exactly one indexed vertex (a), got %d", idx.N())
	}
	if idx.IndexOf(a) != 0 {
		t.Fatalf("expected a at index 0, got %d", idx.IndexOf(a))
	}
}

func TestDeterministicOrderAcrossRuns(t *testing.T) {
	build := func() *Graph {
		g, head, tail := newTestGraph()
		a := &stubElement{name: "a"}
		b := &stubElement{name: "b"}
		g.AddVertex(a)
		g.AddVertex(b)
		mustEdge(t, g, head, a, stubScope{"1"})
		mustEdge(t, g, head, b, stubScope{"2"})
		mustEdge(t, g, a, tail, stubScope{"3"})
		mustEdge(t, g, b, tail, stubScope{"4"})
		return g
	}

	o1 := NewIndexed(build(), BreadthFirst).Order()
	o2 := NewIndexed(build(), BreadthFirst).Order()
	if len(o1) != len(o2) {
		t.Fatal("order lengths differ across runs")
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Fatalf("expected identical BFS order across two otherwise-identical graphs, diverged at %d", i)
		}
	}
}
