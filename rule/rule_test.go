package rule

import (
	"testing"

	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
	"github.com/flowkit/planner/partition"
)

type stubElement struct{ name string }

func (s *stubElement) String() string { return s.name }

type stubScope struct{ label string }

func composeConcat(in, out graph.Scope) graph.Scope {
	return stubScope{label: in.(stubScope).label + "+" + out.(stubScope).label}
}

func byName(name string) expr.NodePredicate {
	return func(element graph.Element) bool {
		se, ok := element.(*stubElement)
		return ok && se.name == name
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// buildChain mirrors scenario S3: Source -> A -> B -> Sink.
func buildChain(t *testing.T) (*graph.Graph, *stubElement, *stubElement) {
	t.Helper()
	source := &stubElement{name: "Source"}
	sink := &stubElement{name: "Sink"}
	g := graph.New(source, sink, stubScope{"zero"})

	a := &stubElement{name: "A"}
	b := &stubElement{name: "B"}
	g.AddVertex(a)
	g.AddVertex(b)
	must(t, g.AddEdge(source, a, stubScope{"1"}))
	must(t, g.AddEdge(a, b, stubScope{"2"}))
	must(t, g.AddEdge(b, sink, stubScope{"3"}))
	return g, a, b
}

func TestAssertRuleFiresOnMatch(t *testing.T) {
	g, a, b := buildChain(t)

	p := expr.NewGraph()
	pa := p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	pb := p.AddNode(expr.ElementExpr{Name: "B", Predicate: byName("B"), Label: expr.Secondary})
	p.AddEdge(pa, pb, expr.Any())

	r := NewAssertRule("ABChainAssert", "", PreBalance, p, "{Primary} must not precede {Secondary}")
	_, err := r.Apply(g)
	if err == nil {
		t.Fatal("expected an assertion error")
	}
	ae, ok := err.(*AssertionError)
	if !ok {
		t.Fatalf("expected *AssertionError, got %T", err)
	}
	want := "A must not precede B"
	if ae.Message != want {
		t.Fatalf("expected message %q, got %q", want, ae.Message)
	}
	_ = a
	_ = b
}

func TestAssertRulePassesWhenNoMatch(t *testing.T) {
	g, _, _ := buildChain(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "nonexistent", Predicate: byName("nonexistent"), Label: expr.Primary})

	r := NewAssertRule("NeverAssert", "", PreBalance, p, "should never fire")
	_, err := r.Apply(g)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTransformerRuleReplace(t *testing.T) {
	g, a, b := buildChain(t)

	p := expr.NewGraph()
	pa := p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	pb := p.AddNode(expr.ElementExpr{Name: "B", Predicate: byName("B"), Label: expr.Secondary})
	p.AddEdge(pa, pb, expr.Any())

	r := NewTransformerRule("ReplaceABRule", "", PostPartitionSteps, Replace, p)
	r.Compose = composeConcat
	result, err := r.Apply(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a change")
	}
	if result.End.Contains(a) {
		t.Fatal("expected A to be removed")
	}
	if !result.End.Contains(b) {
		t.Fatal("expected B to survive")
	}
}

func TestTransformerRuleBadCaptures(t *testing.T) {
	g, _, _ := buildChain(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	// No Secondary node at all: Replace always sees zero Secondary captures.

	r := NewTransformerRule("BadReplaceRule", "", PostPartitionSteps, Replace, p)
	_, err := r.Apply(g)
	if err == nil {
		t.Fatal("expected a BadCapturesError")
	}
	if _, ok := err.(*BadCapturesError); !ok {
		t.Fatalf("expected *BadCapturesError, got %T", err)
	}
}

func TestPartitionerRuleAttachesPartitionsWithoutMutating(t *testing.T) {
	g, a, b := buildChain(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})

	pt := &partition.ExpressionGraphPartitioner{
		Expression:  p,
		SearchOrder: graph.Topological,
		Algorithm:   match.BipartiteMatching,
	}
	r := NewPartitionerRule("SplitOnARule", "", PartitionElements, pt)
	result, err := r.Apply(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed {
		t.Fatal("expected the partitioner rule to leave the parent graph unchanged")
	}
	if result.End != g {
		t.Fatal("expected the same graph object back")
	}
	parts := r.Partitions()
	if len(parts) != 1 {
		t.Fatalf("expected exactly one partition (one A), got %d", len(parts))
	}
	_ = a
	_ = b
}
