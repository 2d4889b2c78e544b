// Package expr implements the expression graph (P-graph): a directed
// multi-graph of predicates over flow elements and scopes, carrying
// capture labels that drive downstream transforms and partition
// annotations.
package expr

import "github.com/flowkit/planner/graph"

// Label is a capture label. The ordered set {Primary, Secondary, Include,
// Exclude, Ignore} is fixed; LabelOrder lists it in that order so
// capture-set iteration is always deterministic.
type Label int

const (
	Primary Label = iota
	Secondary
	Include
	Exclude
	Ignore
)

// LabelOrder is the capture label set in its canonical, fixed order.
var LabelOrder = []Label{Primary, Secondary, Include, Exclude, Ignore}

func (l Label) String() string {
	switch l {
	case Primary:
		return "Primary"
	case Secondary:
		return "Secondary"
	case Include:
		return "Include"
	case Exclude:
		return "Exclude"
	case Ignore:
		return "Ignore"
	default:
		return "Unknown"
	}
}

// NodePredicate decides whether a flow element matches an element
// expression.
type NodePredicate func(element graph.Element) bool

// EdgePredicate decides whether a scope matches a scope expression.
type EdgePredicate func(scope graph.Scope) bool

// ElementExpr is a P-graph vertex: a predicate over flow elements plus
// the capture label it contributes under when matched.
type ElementExpr struct {
	Name      string // diagnostic name only, never consulted by the matcher
	Predicate NodePredicate
	Label     Label
}

// Accepts reports whether element satisfies this vertex's predicate.
func (n ElementExpr) Accepts(element graph.Element) bool {
	if n.Predicate == nil {
		return true
	}
	return n.Predicate(element)
}

// ScopeExpr is one matcher in a P-graph edge's parallel-edge bundle. A
// wildcard ScopeExpr matches any scope and, when it is the sole member of
// a bundle, makes the whole bundle match any non-empty E-graph bundle.
type ScopeExpr struct {
	Name      string
	Predicate EdgePredicate
	Wildcard  bool
}

// Applies reports whether scope satisfies this scope expression.
func (s ScopeExpr) Applies(scope graph.Scope) bool {
	if s.Wildcard {
		return true
	}
	if s.Predicate == nil {
		return true
	}
	return s.Predicate(scope)
}

// Any is the wildcard scope expression: it matches any single E-graph
// bundle of one or more parallel edges, regardless of cardinality.
func Any() ScopeExpr {
	return ScopeExpr{Name: "*", Wildcard: true}
}

// edgeBundle is the P-graph's parallel-edge bundle between an ordered
// vertex pair.
type edgeBundle struct {
	matchers []ScopeExpr
}

// isWildcard reports whether this bundle is the single, distinguished
// wildcard-only bundle.
func (b edgeBundle) isWildcard() bool {
	return len(b.matchers) == 1 && b.matchers[0].Wildcard
}

// Graph is the expression graph: vertices are ElementExpr, edges are
// ordered-pair parallel bundles of ScopeExpr.
type Graph struct {
	nodes []ElementExpr
	// adjacency[i][j] is the parallel-edge bundle from vertex i to vertex j.
	adjacency map[[2]int]edgeBundle
	order     []int // optional explicit nextPair() visiting order; nil means "unconstrained"
}

// NewGraph creates an empty expression graph.
func NewGraph() *Graph {
	return &Graph{adjacency: make(map[[2]int]edgeBundle)}
}

// AddNode appends a new vertex and returns its index.
func (g *Graph) AddNode(n ElementExpr) int {
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

// AddEdge adds one ScopeExpr to the bundle between ordered pair (i, j).
// Calling AddEdge with expr.Any() after any other call on the same pair
// is a caller error (a wildcard bundle must be the bundle's only member);
// AddEdge enforces this by refusing to mix.
func (g *Graph) AddEdge(i, j int, e ScopeExpr) {
	key := [2]int{i, j}
	bundle := g.adjacency[key]
	if bundle.isWildcard() || (e.Wildcard && len(bundle.matchers) > 0) {
		return // refuse to mix a wildcard into a bundle that already has matchers, or vice versa
	}
	bundle.matchers = append(bundle.matchers, e)
	g.adjacency[key] = bundle
}

// SetOrder supplies an explicit nextPair() visiting order for when no
// terminal-set constraint applies. Indices are P-graph vertex indices,
// in the order they should be tried.
func (g *Graph) SetOrder(order []int) { g.order = order }

// N returns the number of vertices.
func (g *Graph) N() int { return len(g.nodes) }

// Node returns the vertex at index i.
func (g *Graph) Node(i int) ElementExpr { return g.nodes[i] }

// Bundle returns the parallel-edge bundle from i to j (possibly empty).
func (g *Graph) Bundle(i, j int) []ScopeExpr {
	return g.adjacency[[2]int{i, j}].matchers
}

// HasEdge reports whether any bundle exists from i to j.
func (g *Graph) HasEdge(i, j int) bool {
	b, ok := g.adjacency[[2]int{i, j}]
	return ok && len(b.matchers) > 0
}

// IsWildcardEdge reports whether the bundle from i to j is the
// distinguished wildcard bundle.
func (g *Graph) IsWildcardEdge(i, j int) bool {
	return g.adjacency[[2]int{i, j}].isWildcard()
}

// Successors returns the indices j for which an edge i->j exists.
func (g *Graph) Successors(i int) []int {
	var out []int
	for k := range g.adjacency {
		if k[0] == i && len(g.adjacency[k].matchers) > 0 {
			out = append(out, k[1])
		}
	}
	return out
}

// Predecessors returns the indices j for which an edge j->i exists.
func (g *Graph) Predecessors(i int) []int {
	var out []int
	for k := range g.adjacency {
		if k[1] == i && len(g.adjacency[k].matchers) > 0 {
			out = append(out, k[0])
		}
	}
	return out
}

// Order returns the explicit visiting order set via SetOrder, or nil.
func (g *Graph) Order() []int { return g.order }

// NodesWithLabel returns the indices of every vertex carrying label.
func (g *Graph) NodesWithLabel(label Label) []int {
	var out []int
	for i, n := range g.nodes {
		if n.Label == label {
			out = append(out, i)
		}
	}
	return out
}
