package partition

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
)

// SubGraphIterator walks a pre-computed, deterministically ordered list
// of matches, projecting each one's full capture set back to original
// elements via lineage, once the matcher has already enumerated every
// candidate sub-graph.
type SubGraphIterator struct {
	matches []*match.Match
	lineage func(graph.Element) []graph.Element
	pos     int
}

func newSubGraphIterator(matches []*match.Match, lineage func(graph.Element) []graph.Element) *SubGraphIterator {
	return &SubGraphIterator{matches: matches, lineage: lineage}
}

// Next returns the projected element set and match for the next step, or
// ok=false once the iterator is exhausted.
func (it *SubGraphIterator) Next() (elements []graph.Element, m *match.Match, ok bool) {
	if it.pos >= len(it.matches) {
		return nil, nil, false
	}
	m = it.matches[it.pos]
	it.pos++

	seen := make(map[graph.Element]bool)
	for _, label := range expr.LabelOrder {
		for _, captured := range m.Captures(label) {
			for _, original := range it.lineage(captured) {
				if !seen[original] {
					seen[original] = true
					elements = append(elements, original)
				}
			}
		}
	}
	return elements, m, true
}
