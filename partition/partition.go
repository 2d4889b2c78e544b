// Package partition implements the expression-graph partitioner: it
// carves a parent E-graph into an ordered, annotated sequence of
// sub-graph views that downstream rule phases iterate over.
package partition

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
	"github.com/flowkit/planner/transform"
)

// Annotation names a capture label to record in every partition's
// annotation map, and the output key to record it under.
type Annotation struct {
	Label   string
	Capture expr.Label
}

// Partition is one step of a SubGraphIterator: the elements belonging to
// this slice of the parent graph, the match that produced it (nil only
// for the "no expression pattern" whole-graph case), and its recorded
// annotations.
type Partition struct {
	Index       int
	Elements    []graph.Element
	Match       *match.Match
	Annotations map[string][]graph.Element
}

// ExpressionGraphPartitioner carves a parent graph into partitions. An
// absent Expression pattern yields the whole graph, masked, as a single
// partition; otherwise every match of Expression against an optional
// Contraction's anvil becomes one partition.
type ExpressionGraphPartitioner struct {
	Contraction *transform.ContractedTransformer // optional
	Expression  *expr.Graph                      // optional
	Annotations []Annotation
	SearchOrder graph.SearchOrder
	Algorithm   match.EdgeMatchAlgorithm
	Context     *match.FinderContext
}

// Partitions runs the partitioner against g and returns every partition
// in iteration order, with Index as the stable tie-breaker.
func (pt *ExpressionGraphPartitioner) Partitions(g *graph.Graph) []Partition {
	if pt.Expression == nil {
		return []Partition{{
			Index:       0,
			Elements:    g.Mask().Vertices(),
			Annotations: map[string][]graph.Element{},
		}}
	}

	anvil, lineage := pt.contract(g)
	idx := graph.NewIndexedMasked(anvil.Mask(), pt.searchOrder())
	matches := match.FindAll(pt.Expression, idx, pt.finderContext(), pt.algorithm())

	it := newSubGraphIterator(matches, lineage)
	var partitions []Partition
	for {
		elements, m, ok := it.Next()
		if !ok {
			break
		}
		partitions = append(partitions, Partition{
			Index:       len(partitions),
			Elements:    elements,
			Match:       m,
			Annotations: pt.annotate(m, lineage),
		})
	}
	return partitions
}

func (pt *ExpressionGraphPartitioner) contract(g *graph.Graph) (*graph.Graph, func(graph.Element) []graph.Element) {
	if pt.Contraction == nil {
		return g, func(e graph.Element) []graph.Element { return []graph.Element{e} }
	}
	result := pt.Contraction.Apply(g)
	return result.End, pt.Contraction.Lineage
}

func (pt *ExpressionGraphPartitioner) annotate(m *match.Match, lineage func(graph.Element) []graph.Element) map[string][]graph.Element {
	out := make(map[string][]graph.Element, len(pt.Annotations))
	for _, a := range pt.Annotations {
		var elements []graph.Element
		for _, captured := range m.Captures(a.Capture) {
			elements = append(elements, lineage(captured)...)
		}
		out[a.Label] = elements
	}
	return out
}

func (pt *ExpressionGraphPartitioner) searchOrder() graph.SearchOrder { return pt.SearchOrder }
func (pt *ExpressionGraphPartitioner) algorithm() match.EdgeMatchAlgorithm { return pt.Algorithm }
func (pt *ExpressionGraphPartitioner) finderContext() *match.FinderContext {
	if pt.Context == nil {
		return match.NewFinderContext()
	}
	return pt.Context
}
