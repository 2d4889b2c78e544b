package expr

// Builder provides a fluent way to assemble a pattern graph without
// manually tracking vertex indices, mirroring the kind of small
// constructor helpers the rest of this codebase favours over exposing
// raw index bookkeeping to callers.
type Builder struct {
	g    *Graph
	byID map[string]int
}

// NewBuilder creates an empty pattern builder.
func NewBuilder() *Builder {
	return &Builder{g: NewGraph(), byID: make(map[string]int)}
}

// Node registers a named vertex and returns its id for use in Edge calls.
// Registering the same id twice overwrites the earlier definition but
// keeps its original index, so edges already wired to it stay valid.
func (b *Builder) Node(id string, n ElementExpr) string {
	if idx, ok := b.byID[id]; ok {
		b.g.nodes[idx] = n
		return id
	}
	b.byID[id] = b.g.AddNode(n)
	return id
}

// Edge adds a ScopeExpr to the bundle between two previously registered
// node ids.
func (b *Builder) Edge(fromID, toID string, e ScopeExpr) *Builder {
	from, fok := b.byID[fromID]
	to, tok := b.byID[toID]
	if !fok || !tok {
		return b
	}
	b.g.AddEdge(from, to, e)
	return b
}

// Build returns the assembled pattern graph.
func (b *Builder) Build() *Graph { return b.g }

// IndexOf returns the vertex index registered under id.
func (b *Builder) IndexOf(id string) int { return b.byID[id] }
