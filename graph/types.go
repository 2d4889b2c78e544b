// Package graph implements the element graph (E-graph): a directed
// multi-graph of flow elements connected by scopes. Vertex identity is
// reference equality on flow elements: two distinct elements of the same
// concrete type are always distinct vertices, and the graph never
// inspects their content, only identity and adjacency.
package graph

// Element is an opaque flow-element value. Implementations are expected
// to be pointer types so that Go's interface equality gives reference
// identity for free; the graph never compares elements structurally.
type Element any

// Scope is an opaque edge value carrying dataflow annotations. Predicates
// defined in package expr query scopes without the graph's help.
type Scope any

// Composer computes the scope that should replace a pair of scopes when
// the vertex between them is contracted away. Composition must be
// associative across successive contractions (see DESIGN.md).
type Composer func(in, out Scope) Scope

// vertexID is the graph's internal handle for a flow element. IDs are
// assigned on insertion and never reused within a Graph's lifetime.
type vertexID int

// edgeID is the graph's internal handle for a single directed edge.
type edgeID int

type vertexRecord struct {
	element Element
	out     []edgeID
	in      []edgeID
	bookend bool
	alive   bool
}

type edgeRecord struct {
	scope    Scope
	src, dst vertexID
	alive    bool
}

// Graph is a directed multi-graph of flow elements and scopes. The zero
// value is not usable; construct with New.
type Graph struct {
	vertices []vertexRecord
	edges    []edgeRecord
	byElem   map[Element]vertexID

	head, tail vertexID
}

// New creates an empty Graph with synthetic head and tail bookend
// vertices already present and connected by a single edge carrying
// zeroScope, satisfying the weak-connectivity invariant from the start.
func New(headElement, tailElement Element, zeroScope Scope) *Graph {
	g := &Graph{byElem: make(map[Element]vertexID)}
	g.head = g.insertVertex(headElement, true)
	g.tail = g.insertVertex(tailElement, true)
	g.insertEdge(g.head, g.tail, zeroScope)
	return g
}

func (g *Graph) insertVertex(e Element, bookend bool) vertexID {
	id := vertexID(len(g.vertices))
	g.vertices = append(g.vertices, vertexRecord{element: e, bookend: bookend, alive: true})
	g.byElem[e] = id
	return id
}

func (g *Graph) insertEdge(src, dst vertexID, s Scope) edgeID {
	id := edgeID(len(g.edges))
	g.edges = append(g.edges, edgeRecord{scope: s, src: src, dst: dst, alive: true})
	g.vertices[src].out = append(g.vertices[src].out, id)
	g.vertices[dst].in = append(g.vertices[dst].in, id)
	return id
}

func (g *Graph) vertexOf(e Element) (vertexID, bool) {
	id, ok := g.byElem[e]
	if !ok || !g.vertices[id].alive {
		return 0, false
	}
	return id, true
}

func (g *Graph) liveOut(v vertexID) []edgeID {
	return filterLive(g.edges, g.vertices[v].out)
}

func (g *Graph) liveIn(v vertexID) []edgeID {
	return filterLive(g.edges, g.vertices[v].in)
}

func filterLive(edges []edgeRecord, ids []edgeID) []edgeID {
	out := make([]edgeID, 0, len(ids))
	for _, id := range ids {
		if edges[id].alive {
			out = append(out, id)
		}
	}
	return out
}

// Head returns the synthetic source bookend element.
func (g *Graph) Head() Element { return g.vertices[g.head].element }

// Tail returns the synthetic sink bookend element.
func (g *Graph) Tail() Element { return g.vertices[g.tail].element }

// IsBookend reports whether element is the graph's head or tail.
func (g *Graph) IsBookend(element Element) bool {
	v, ok := g.vertexOf(element)
	return ok && g.vertices[v].bookend
}

// Vertices returns every live flow element in insertion order, including
// head and tail.
func (g *Graph) Vertices() []Element {
	out := make([]Element, 0, len(g.vertices))
	for id := range g.vertices {
		if g.vertices[id].alive {
			out = append(out, g.vertices[id].element)
		}
	}
	return out
}

// NumVertices reports the number of live vertices, including bookends.
func (g *Graph) NumVertices() int {
	n := 0
	for _, v := range g.vertices {
		if v.alive {
			n++
		}
	}
	return n
}

// NumEdges reports the number of live edges.
func (g *Graph) NumEdges() int {
	n := 0
	for _, e := range g.edges {
		if e.alive {
			n++
		}
	}
	return n
}

// EdgeView is a read-only snapshot of one live edge, exposing the scope
// and the neighbouring element on the side opposite the element the
// lookup was made from.
type EdgeView struct {
	Scope   Scope
	Element Element
}

// Successors returns the live out-edges of element, as (scope, target)
// pairs, in insertion order.
func (g *Graph) Successors(element Element) []EdgeView {
	v, ok := g.vertexOf(element)
	if !ok {
		return nil
	}
	ids := g.liveOut(v)
	out := make([]EdgeView, 0, len(ids))
	for _, id := range ids {
		e := g.edges[id]
		out = append(out, EdgeView{Scope: e.scope, Element: g.vertices[e.dst].element})
	}
	return out
}

// Predecessors returns the live in-edges of element, as (scope, source)
// pairs, in insertion order.
func (g *Graph) Predecessors(element Element) []EdgeView {
	v, ok := g.vertexOf(element)
	if !ok {
		return nil
	}
	ids := g.liveIn(v)
	out := make([]EdgeView, 0, len(ids))
	for _, id := range ids {
		e := g.edges[id]
		out = append(out, EdgeView{Scope: e.scope, Element: g.vertices[e.src].element})
	}
	return out
}

// ScopesBetween returns the parallel-edge bundle of scopes directed from
// src to dst, in insertion order.
func (g *Graph) ScopesBetween(src, dst Element) []Scope {
	sv, ok1 := g.vertexOf(src)
	dv, ok2 := g.vertexOf(dst)
	if !ok1 || !ok2 {
		return nil
	}
	var out []Scope
	for _, id := range g.liveOut(sv) {
		if g.edges[id].dst == dv {
			out = append(out, g.edges[id].scope)
		}
	}
	return out
}

// Contains reports whether element is a live vertex of the graph.
func (g *Graph) Contains(element Element) bool {
	_, ok := g.vertexOf(element)
	return ok
}
