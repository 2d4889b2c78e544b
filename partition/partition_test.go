package partition

import (
	"testing"

	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
)

type stubElement struct{ name string }
type stubScope struct{ label string }

func byName(name string) expr.NodePredicate {
	return func(element graph.Element) bool {
		se, ok := element.(*stubElement)
		return ok && se.name == name
	}
}

func buildForkGraph(t *testing.T) (*graph.Graph, *stubElement, *stubElement) {
	t.Helper()
	head := &stubElement{name: "head"}
	tail := &stubElement{name: "tail"}
	g := graph.New(head, tail, stubScope{"zero"})

	tapA := &stubElement{name: "tap-a"}
	tapB := &stubElement{name: "tap-b"}
	g.AddVertex(tapA)
	g.AddVertex(tapB)
	must(t, g.AddEdge(head, tapA, stubScope{"1"}))
	must(t, g.AddEdge(head, tapB, stubScope{"2"}))
	must(t, g.AddEdge(tapA, tail, stubScope{"3"}))
	must(t, g.AddEdge(tapB, tail, stubScope{"4"}))
	return g, tapA, tapB
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestPartitionsWithoutExpressionReturnsWholeGraph(t *testing.T) {
	g, tapA, tapB := buildForkGraph(t)
	pt := &ExpressionGraphPartitioner{}
	parts := pt.Partitions(g)
	if len(parts) != 1 {
		t.Fatalf("expected exactly one partition, got %d", len(parts))
	}
	if parts[0].Match != nil {
		t.Fatal("expected no match for the whole-graph partition")
	}
	found := map[graph.Element]bool{}
	for _, e := range parts[0].Elements {
		found[e] = true
	}
	if !found[graph.Element(tapA)] || !found[graph.Element(tapB)] {
		t.Fatal("expected the whole-graph partition to include both taps")
	}
}

func TestPartitionsOneMatchPerTap(t *testing.T) {
	g, tapA, tapB := buildForkGraph(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "tap", Predicate: func(e graph.Element) bool {
		se, ok := e.(*stubElement)
		return ok && (se.name == "tap-a" || se.name == "tap-b")
	}, Label: expr.Primary})

	pt := &ExpressionGraphPartitioner{
		Expression:  p,
		SearchOrder: graph.Topological,
		Algorithm:   match.BipartiteMatching,
		Annotations: []Annotation{{Label: "tap", Capture: expr.Primary}},
	}
	parts := pt.Partitions(g)
	if len(parts) != 2 {
		t.Fatalf("expected 2 partitions (one per tap), got %d", len(parts))
	}
	for i, part := range parts {
		if part.Index != i {
			t.Fatalf("expected Index %d to match position, got %d", i, part.Index)
		}
		if len(part.Annotations["tap"]) != 1 {
			t.Fatalf("expected exactly one tap annotation, got %v", part.Annotations["tap"])
		}
	}

	all := map[graph.Element]bool{}
	for _, part := range parts {
		for _, e := range part.Annotations["tap"] {
			all[e] = true
		}
	}
	if !all[graph.Element(tapA)] || !all[graph.Element(tapB)] {
		t.Fatal("expected both taps to be captured across the two partitions")
	}
}
