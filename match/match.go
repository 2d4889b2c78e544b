package match

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
)

// Match is the result of one successful VF2 search: a total mapping from
// P-graph vertices to the E-graph elements they matched, plus the
// per-label capture sets a rule reads its arguments from. Capture sets
// are ordered by first occurrence and never contain the
// same element twice, even if two P-graph vertices with the same label
// happened to match the same E-graph element (which cannot occur for a
// simple mapping, but duplicate labels on distinct vertices are common).
type Match struct {
	byIndex  map[int]graph.Element
	captures map[expr.Label][]graph.Element
	seen     map[expr.Label]map[graph.Element]bool
}

func newMatch() *Match {
	return &Match{
		byIndex:  make(map[int]graph.Element),
		captures: make(map[expr.Label][]graph.Element),
		seen:     make(map[expr.Label]map[graph.Element]bool),
	}
}

func (m *Match) add(label expr.Label, element graph.Element) {
	if m.seen[label] == nil {
		m.seen[label] = make(map[graph.Element]bool)
	}
	if m.seen[label][element] {
		return
	}
	m.seen[label][element] = true
	m.captures[label] = append(m.captures[label], element)
}

// Element returns the E-graph element matched to P-graph vertex i.
func (m *Match) Element(i int) (graph.Element, bool) {
	e, ok := m.byIndex[i]
	return e, ok
}

// Captures returns the ordered, deduplicated capture set for label.
func (m *Match) Captures(label expr.Label) []graph.Element {
	return m.captures[label]
}

// Primary is a convenience accessor for the Primary capture set, which
// every rule kind reads its principal argument from.
func (m *Match) Primary() []graph.Element { return m.captures[expr.Primary] }

// Secondary is the equivalent convenience accessor for Secondary.
func (m *Match) Secondary() []graph.Element { return m.captures[expr.Secondary] }

// buildMatch assembles a Match from a completed VF2 state.
func buildMatch(p *expr.Graph, e *graph.Indexed, st *state) *Match {
	m := newMatch()
	for i := 0; i < st.n1; i++ {
		j := st.core1[i]
		if j == null {
			continue
		}
		element := e.Element(j)
		m.byIndex[i] = element
		m.add(p.Node(i).Label, element)
	}
	return m
}
