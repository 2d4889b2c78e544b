package transform

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
)

// ContractedTransformer repeatedly finds a match for its contraction
// pattern and collapses every captured element that is not labelled
// Include or Ignore, and is not the Primary capture itself, into its
// neighbours via removeAndContract. It reaches a fixed point when no
// further match is found and returns the final graph as the
// anvil downstream matchers operate on.
type ContractedTransformer struct {
	Contraction *expr.Graph
	Compose     graph.Composer
	SearchOrder graph.SearchOrder
	Algorithm   match.EdgeMatchAlgorithm
	Context     *match.FinderContext

	// lineage records, for each surviving Primary vertex, every original
	// element that has ever been contracted into it. SubGraphTransformer
	// reads this after Apply to project contracted vertices back to the
	// elements they stand for.
	lineage map[graph.Element][]graph.Element
}

// Apply runs the contraction to its fixed point.
func (t *ContractedTransformer) Apply(g *graph.Graph) Transform {
	current := g
	var children []Transform
	var diagnostics []string
	t.lineage = make(map[graph.Element][]graph.Element)

	for {
		idx := graph.NewIndexedMasked(current.Mask(), t.searchOrder())
		m := match.Find(t.Contraction, idx, t.finderContext(), t.algorithm())
		if m == nil {
			break
		}

		next := current.Copy()
		contractedAny := false
		primarySet := setOf(m.Primary())
		for _, label := range expr.LabelOrder {
			if label == expr.Include || label == expr.Ignore {
				continue
			}
			for _, element := range m.Captures(label) {
				if primarySet[element] {
					continue
				}
				if next.IsBookend(element) {
					continue
				}
				if err := next.RemoveAndContract(element, t.Compose); err != nil {
					diagnostics = append(diagnostics, err.Error())
					continue
				}
				t.absorb(m.Primary(), element)
				contractedAny = true
			}
		}

		if !contractedAny {
			// the match only captured Include/Ignore/Primary elements;
			// nothing to contract, so further search would repeat forever.
			break
		}
		current = next
		children = append(children, changed(next, nil))
	}

	if current == g {
		return unchanged(g)
	}
	return changed(current, children, diagnostics...)
}

// absorb folds element's own lineage (if it had absorbed anything in an
// earlier fixed-point step) into every vertex in the current match's
// Primary set, then records element itself.
func (t *ContractedTransformer) absorb(primaries []graph.Element, element graph.Element) {
	inherited := append([]graph.Element{element}, t.lineage[element]...)
	delete(t.lineage, element)
	for _, p := range primaries {
		t.lineage[p] = append(t.lineage[p], inherited...)
	}
}

// Lineage returns, for a surviving vertex, the vertex itself followed by
// every original element ever contracted into it by the most recent
// Apply call. A vertex that was never a contraction target returns just
// itself.
func (t *ContractedTransformer) Lineage(survivor graph.Element) []graph.Element {
	if originals, ok := t.lineage[survivor]; ok {
		return append([]graph.Element{survivor}, originals...)
	}
	return []graph.Element{survivor}
}

func (t *ContractedTransformer) searchOrder() graph.SearchOrder { return t.SearchOrder }

func (t *ContractedTransformer) algorithm() match.EdgeMatchAlgorithm { return t.Algorithm }

func (t *ContractedTransformer) finderContext() *match.FinderContext {
	if t.Context == nil {
		return match.NewFinderContext()
	}
	return t.Context
}

func setOf(elements []graph.Element) map[graph.Element]bool {
	out := make(map[graph.Element]bool, len(elements))
	for _, e := range elements {
		out[e] = true
	}
	return out
}
