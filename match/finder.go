package match

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
)

// FinderContext narrows a search beyond what the pattern graph's own
// predicates express: elements a rule has already consumed this phase
// (Exclude), elements a Primary-labelled vertex is restricted to
// (Required), and elements the search should pretend do not exist
// (Ignore), typically the partition boundary currently being searched
// within.
type FinderContext struct {
	exclude  map[graph.Element]bool
	required map[graph.Element]bool
	ignore   map[graph.Element]bool
}

// NewFinderContext creates an empty context that admits every element.
func NewFinderContext() *FinderContext {
	return &FinderContext{
		exclude:  make(map[graph.Element]bool),
		required: make(map[graph.Element]bool),
		ignore:   make(map[graph.Element]bool),
	}
}

// Exclude marks elements that must never be matched into any vertex.
func (c *FinderContext) Exclude(elements ...graph.Element) *FinderContext {
	for _, e := range elements {
		c.exclude[e] = true
	}
	return c
}

// Require restricts Primary-labelled P-graph vertices: once the required
// set is non-empty, a Primary vertex can bind only to one of these
// elements. Vertices with other labels are unaffected.
func (c *FinderContext) Require(elements ...graph.Element) *FinderContext {
	for _, e := range elements {
		c.required[e] = true
	}
	return c
}

// Ignore marks elements the search should treat as absent from the
// E-graph entirely.
func (c *FinderContext) Ignore(elements ...graph.Element) *FinderContext {
	for _, e := range elements {
		c.ignore[e] = true
	}
	return c
}

func (c *FinderContext) admits(element graph.Element) bool {
	if c == nil {
		return true
	}
	if c.exclude[element] || c.ignore[element] {
		return false
	}
	return true
}

// admitsPrimary enforces the Primary/required rule: a P-graph vertex
// carrying the Primary label may only match an element that is in the
// required set, once that set is non-empty. Every other label is
// unconstrained by Required at search time.
func (c *FinderContext) admitsPrimary(label expr.Label, element graph.Element) bool {
	if c == nil || label != expr.Primary || len(c.required) == 0 {
		return true
	}
	return c.required[element]
}

// Find runs the VF2 search and returns the first match found, or nil if
// the pattern does not occur (subject to ctx's Exclude/Require/Ignore
// constraints).
func Find(p *expr.Graph, idx *graph.Indexed, ctx *FinderContext, algo EdgeMatchAlgorithm) *Match {
	var found *Match
	s := &searcher{p: p, e: idx, algo: algo, ctx: ctx}
	s.onMatch = func(st *state) bool {
		found = buildMatch(p, idx, st)
		return false // stop: first match is enough
	}
	s.search(newState(p.N(), idx.N()), null, null)
	return found
}

// FindAll runs the VF2 search to exhaustion and returns every match, in
// the order the search discovered them (deterministic given the
// P-graph's and E-graph's configured orders).
func FindAll(p *expr.Graph, idx *graph.Indexed, ctx *FinderContext, algo EdgeMatchAlgorithm) []*Match {
	var all []*Match
	s := &searcher{p: p, e: idx, algo: algo, ctx: ctx}
	s.onMatch = func(st *state) bool {
		all = append(all, buildMatch(p, idx, st))
		return true // keep searching for more
	}
	s.search(newState(p.N(), idx.N()), null, null)
	return all
}
