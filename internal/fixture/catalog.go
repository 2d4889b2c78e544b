package fixture

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/partition"
	"github.com/flowkit/planner/rule"
)

// NewBufferAfterEveryAssert builds the rule from scenario S1/S2: a
// GroupBy feeding an Every(Buffer) that itself feeds a further Every
// is a planning mistake (the buffered group should have been the last
// aggregation step), caught before the plan proceeds.
func NewBufferAfterEveryAssert(phase rule.Phase) *rule.AssertRule {
	p := expr.NewGraph()
	group := p.AddNode(expr.ElementExpr{Name: "GroupBy", Predicate: IsGroupBy, Label: expr.Include})
	bufferEvery := p.AddNode(expr.ElementExpr{Name: "Every(Buffer)", Predicate: IsEveryWrapping(IsBuffer), Label: expr.Primary})
	nextEvery := p.AddNode(expr.ElementExpr{Name: "Every(*)", Predicate: IsAnyEvery, Label: expr.Secondary})
	p.AddEdge(group, bufferEvery, expr.Any())
	p.AddEdge(bufferEvery, nextEvery, expr.Any())

	return rule.NewAssertRule("BufferAfterEveryAssert", "", phase, p,
		"{Primary} must not feed directly into {Secondary}; buffer the final aggregation only")
}

// NewReplaceTapWithPipeRule builds a transformer rule in the spirit of
// scenario S3: a Tap feeding a Pipe is removed and its remaining edges
// are rewired onto that Pipe. The pattern does not check how many
// consumers the Tap has; with several Pipe consumers, the first one
// matched takes the Tap's place.
func NewReplaceTapWithPipeRule(phase rule.Phase) *rule.TransformerRule {
	p := expr.NewGraph()
	tap := p.AddNode(expr.ElementExpr{Name: "Tap", Predicate: IsTap, Label: expr.Primary})
	pipe := p.AddNode(expr.ElementExpr{Name: "Pipe", Predicate: IsPipe, Label: expr.Secondary})
	p.AddEdge(tap, pipe, expr.Any())

	r := rule.NewTransformerRule("ReplaceTapWithPipeRule", "", phase, rule.Replace, p)
	r.Compose = Compose
	return r
}

// NewHashJoinSameSourcePartitioner builds the partitioner from scenario
// S4: a Pipe feeding the blocking side of a HashJoin is partitioned
// together with that HashJoin, one partition per blocking leg.
func NewHashJoinSameSourcePartitioner() *partition.ExpressionGraphPartitioner {
	p := expr.NewGraph()
	pipe := p.AddNode(expr.ElementExpr{Name: "Pipe", Predicate: IsPipe, Label: expr.Primary})
	join := p.AddNode(expr.ElementExpr{Name: "HashJoin", Predicate: IsHashJoin, Label: expr.Secondary})
	p.AddEdge(pipe, join, expr.ScopeExpr{Name: "blocking", Predicate: Blocking})

	return &partition.ExpressionGraphPartitioner{
		Expression: p,
		Annotations: []partition.Annotation{
			{Label: "Primary", Capture: expr.Primary},
			{Label: "Secondary", Capture: expr.Secondary},
		},
	}
}
