package planner

import (
	"context"
	"testing"

	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
	"github.com/flowkit/planner/partition"
	"github.com/flowkit/planner/rule"
)

type stubElement struct{ name string }
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

func TestDriverAbortsOnAssertion(t *testing.T) {
	g, _, _ := buildChain(t)

	p := expr.NewGraph()
	pa := p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	pb := p.AddNode(expr.ElementExpr{Name: "B", Predicate: byName("B"), Label: expr.Secondary})
	p.AddEdge(pa, pb, expr.Any())

	assertRule := rule.NewAssertRule("ChainOrderAssert", "", rule.PreBalance, p, "{Primary} must not precede {Secondary}")
	d := NewDriver([]rule.Rule{assertRule}, DefaultConfig(), nil, nil)

	_, err := d.Run(context.Background(), g)
	if err == nil {
		t.Fatal("expected the driver to abort")
	}
	planErr, ok := err.(*PlanError)
	if !ok {
		t.Fatalf("expected *PlanError, got %T", err)
	}
	if planErr.Phase != rule.PreBalance || planErr.Rule != "chain-order" {
		t.Fatalf("unexpected phase/rule annotation: %+v", planErr)
	}
	if _, ok := planErr.Err.(*rule.AssertionError); !ok {
		t.Fatalf("expected the wrapped error to be *rule.AssertionError, got %T", planErr.Err)
	}
}

func TestDriverAppliesTransformerAndAttachesPartitions(t *testing.T) {
	g, a, b := buildChain(t)

	replacePattern := expr.NewGraph()
	pa := replacePattern.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	pb := replacePattern.AddNode(expr.ElementExpr{Name: "B", Predicate: byName("B"), Label: expr.Secondary})
	replacePattern.AddEdge(pa, pb, expr.Any())
	replaceRule := rule.NewTransformerRule("ReplaceABRule", "", rule.PostPartitionSteps, rule.Replace, replacePattern)
	replaceRule.Compose = composeConcat

	partitionPattern := expr.NewGraph()
	partitionPattern.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	partitioner := &partition.ExpressionGraphPartitioner{
		Expression:  partitionPattern,
		SearchOrder: graph.Topological,
		Algorithm:   match.BipartiteMatching,
	}
	partitionerRule := rule.NewPartitionerRule("CaptureARule", "", rule.PartitionElements, partitioner)

	d := NewDriver([]rule.Rule{replaceRule, partitionerRule}, DefaultConfig(), nil, nil)
	result, err := d.Run(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// PartitionElements precedes PostPartitionSteps, so the partitioner
	// sees A while it still exists, even though the replace rule is
	// declared first in the rule list.
	parts, ok := result.Partitions["capture-a"]
	if !ok || len(parts) != 1 {
		t.Fatalf("expected exactly one partition under capture-a, got %+v", result.Partitions)
	}

	if result.Graph.Contains(a) {
		t.Fatal("expected A to have been removed by the replace rule")
	}
	if !result.Graph.Contains(b) {
		t.Fatal("expected B to survive")
	}
}

func TestDriverHonoursRuleFilterExclusion(t *testing.T) {
	g, _, _ := buildChain(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "A", Predicate: byName("A"), Label: expr.Primary})
	assertRule := rule.NewAssertRule("NeverAllowedAssert", "", rule.PreBalance, p, "should never fire because it is filtered out")

	cfg := DefaultConfig()
	cfg.RuleFilter.Exclude = []string{"never-allowed"}
	d := NewDriver([]rule.Rule{assertRule}, cfg, nil, nil)

	result, err := d.Run(context.Background(), g)
	if err != nil {
		t.Fatalf("expected the filtered-out rule to be skipped without error, got %v", err)
	}
	if result.Graph != g {
		t.Fatal("expected the graph to be untouched")
	}
}

func TestDriverReportsTimeoutBeforeNextRule(t *testing.T) {
	g, _, _ := buildChain(t)

	p := expr.NewGraph()
	p.AddNode(expr.ElementExpr{Name: "nonexistent", Predicate: byName("nonexistent"), Label: expr.Primary})
	r := rule.NewAssertRule("NeverAssert", "", rule.PreBalance, p, "never fires")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver([]rule.Rule{r}, DefaultConfig(), nil, nil)
	_, err := d.Run(ctx, g)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if _, ok := err.(*TimeoutError); !ok {
		t.Fatalf("expected *TimeoutError, got %T", err)
	}
}
