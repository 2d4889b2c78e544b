package transform

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
)

// SubGraphTransformer composes a contraction with a second pattern: it
// first contracts the working graph, then matches the second pattern
// against the contraction, then projects every
// Primary-captured contracted vertex back to the set of original
// elements it stood for, a sub-graph view of the original graph that
// partitioners and replace-transforms consume.
type SubGraphTransformer struct {
	Contraction *ContractedTransformer
	Pattern     *expr.Graph
	SearchOrder graph.SearchOrder
	Algorithm   match.EdgeMatchAlgorithm
	Context     *match.FinderContext
}

// SubGraphView names, for each contracted vertex the match's Primary
// capture resolved to, the original elements it stands for.
type SubGraphView struct {
	Match     *match.Match
	Contracted *graph.Graph
	Originals map[graph.Element][]graph.Element
}

// Apply runs the contraction, matches Pattern against it, and returns a
// Transform whose End is the contracted graph; the projected view is
// attached in the Transform's Views field, and Children holds the
// contraction's own child transforms.
func (t *SubGraphTransformer) Apply(g *graph.Graph) Transform {
	contraction := t.Contraction.Apply(g)

	idx := graph.NewIndexedMasked(contraction.End.Mask(), t.searchOrder())
	m := match.Find(t.Pattern, idx, t.finderContext(), t.algorithm())
	if m == nil {
		return unchanged(contraction.End)
	}

	originals := t.projectOriginals(m)
	view := SubGraphView{Match: m, Contracted: contraction.End, Originals: originals}

	result := changed(contraction.End, contraction.Children)
	result.Views = append(result.Views, view)
	return result
}

// projectOriginals maps every Primary-captured contracted vertex to the
// original elements it stands for, using the contraction stage's own
// lineage record.
func (t *SubGraphTransformer) projectOriginals(m *match.Match) map[graph.Element][]graph.Element {
	out := make(map[graph.Element][]graph.Element)
	for _, element := range m.Primary() {
		out[element] = t.Contraction.Lineage(element)
	}
	return out
}

func (t *SubGraphTransformer) searchOrder() graph.SearchOrder { return t.SearchOrder }
func (t *SubGraphTransformer) algorithm() match.EdgeMatchAlgorithm { return t.Algorithm }
func (t *SubGraphTransformer) finderContext() *match.FinderContext {
	if t.Context == nil {
		return match.NewFinderContext()
	}
	return t.Context
}
