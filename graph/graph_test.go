package graph

import "testing"

type stubElement struct{ name string }
type stubScope struct{ label string }

func composeConcat(in, out Scope) Scope {
	a, _ := in.(stubScope)
	b, _ := out.(stubScope)
	return stubScope{label: a.label + "+" + b.label}
}

func newTestGraph() (*Graph, *stubElement, *stubElement) {
	head := &stubElement{name: "head"}
	tail := &stubElement{name: "tail"}
	g := New(head, tail, stubScope{label: "z"})
	return g, head, tail
}

func TestAddVertexAddEdge(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)

	if err := g.AddEdge(head, a, stubScope{"h-a"}); err != nil {
		t.Fatalf("AddEdge head->a: %v", err)
	}
	if err := g.AddEdge(a, tail, stubScope{"a-t"}); err != nil {
		t.Fatalf("AddEdge a->tail: %v", err)
	}

	succ := g.Successors(head)
	if len(succ) != 2 {
		t.Fatalf("expected head to have 2 successors (tail, a), got %d", len(succ))
	}
}

func TestAddEdgeMissingEndpointIsGraphShape(t *testing.T) {
	g, head, _ := newTestGraph()
	ghost := &stubElement{name: "ghost"}

	err := g.AddEdge(head, ghost, stubScope{"x"})
	if err == nil {
		t.Fatal("expected GraphShape error for missing endpoint")
	}
	var shapeErr *ShapeError
	if se, ok := err.(*ShapeError); ok {
		shapeErr = se
	}
	if shapeErr == nil {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
}

func TestAddEdgeRejectsSelfLoop(t *testing.T) {
	g, _, _ := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)
	if err := g.AddEdge(a, a, stubScope{"loop"}); err == nil {
		t.Fatal("expected self-loop to be rejected")
	}
}

func TestRemoveAndContractComposesScopes(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)
	mustEdge(t, g, head, a, stubScope{"in"})
	mustEdge(t, g, a, tail, stubScope{"out"})

	if err := g.RemoveAndContract(a, composeConcat); err != nil {
		t.Fatalf("RemoveAndContract: %v", err)
	}

	if g.Contains(a) {
		t.Fatal("a should have been removed")
	}

	scopes := g.ScopesBetween(head, tail)
	found := false
	for _, s := range scopes {
		if s.(stubScope).label == "in+out" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a composed in+out scope between head and tail, got %v", scopes)
	}
}

func TestRemoveAndContractFanOut(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	p1 := &stubElement{name: "p1"}
	p2 := &stubElement{name: "p2"}
	s1 := &stubElement{name: "s1"}
	g.AddVertex(a)
	g.AddVertex(p1)
	g.AddVertex(p2)
	g.AddVertex(s1)
	mustEdge(t, g, head, p1, stubScope{"h"})
	mustEdge(t, g, head, p2, stubScope{"h"})
	mustEdge(t, g, p1, a, stubScope{"p1"})
	mustEdge(t, g, p2, a, stubScope{"p2"})
	mustEdge(t, g, a, s1, stubScope{"s1"})
	mustEdge(t, g, s1, tail, stubScope{"t"})

	if err := g.RemoveAndContract(a, composeConcat); err != nil {
		t.Fatalf("RemoveAndContract: %v", err)
	}

	scopesP1 := g.ScopesBetween(p1, s1)
	scopesP2 := g.ScopesBetween(p2, s1)
	if len(scopesP1) != 1 || len(scopesP2) != 1 {
		t.Fatalf("expected one composed edge per predecessor, got p1=%v p2=%v", scopesP1, scopesP2)
	}
}

func TestReplaceElementWith(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	b := &stubElement{name: "b"}
	g.AddVertex(a)
	g.AddVertex(b)
	mustEdge(t, g, head, a, stubScope{"h-a"})
	mustEdge(t, g, a, tail, stubScope{"a-t"})

	if err := g.ReplaceElementWith(a, b); err != nil {
		t.Fatalf("ReplaceElementWith: %v", err)
	}
	if g.Contains(a) {
		t.Fatal("a should have been removed")
	}
	succ := g.Successors(head)
	sawB := false
	for _, s := range succ {
		if s.Element == b {
			sawB = true
		}
	}
	if !sawB {
		t.Fatal("expected head to point at b after replacement")
	}
}

func TestInsertFlowElementAfter(t *testing.T) {
	g, head, tail := newTestGraph()
	fresh := stubScope{"fresh"}

	if err := g.InsertFlowElementAfter(head, &stubElement{name: "mid"}, fresh); err != nil {
		t.Fatalf("InsertFlowElementAfter: %v", err)
	}

	succ := g.Successors(head)
	if len(succ) != 1 {
		t.Fatalf("expected head to have exactly one successor after split, got %d", len(succ))
	}
	mid := succ[0].Element
	midSucc := g.Successors(mid)
	if len(midSucc) != 1 || midSucc[0].Element != tail {
		t.Fatalf("expected mid->tail, got %v", midSucc)
	}
}

func TestMaskHidesBookends(t *testing.T) {
	g, _, _ := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)

	masked := g.Mask().Vertices()
	if len(masked) != 1 || masked[0] != a {
		t.Fatalf("expected mask to hide head/tail, got %v", masked)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	g, head, tail := newTestGraph()
	a := &stubElement{name: "a"}
	g.AddVertex(a)
	mustEdge(t, g, head, a, stubScope{"h-a"})

	clone := g.Copy()
	mustEdge(t, clone, a, tail, stubScope{"a-t"})

	if len(g.Successors(a)) != 0 {
		t.Fatalf("mutating the copy must not affect the original, got %v", g.Successors(a))
	}
	if len(clone.Successors(a)) != 1 {
		t.Fatalf("expected the copy's own mutation to take effect")
	}
}

func mustEdge(t *testing.T, g *Graph, src, dst Element, s Scope) {
	t.Helper()
	if err := g.AddEdge(src, dst, s); err != nil {
		t.Fatalf("AddEdge(%v, %v): %v", src, dst, err)
	}
}
