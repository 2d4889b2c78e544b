package graph

// AddVertex inserts a new flow element as an isolated vertex. Adding the
// same element twice is a no-op on the second call.
func (g *Graph) AddVertex(element Element) {
	if _, ok := g.vertexOf(element); ok {
		return
	}
	g.insertVertex(element, false)
}

// AddEdge inserts a directed edge carrying scope from src to dst. Both
// endpoints must already be present; AddEdge never creates vertices
// implicitly, and rejects self-loops, matching the E-graph's invariants.
func (g *Graph) AddEdge(src, dst Element, scope Scope) error {
	sv, ok := g.vertexOf(src)
	if !ok {
		return newShapeError("AddEdge", src)
	}
	dv, ok := g.vertexOf(dst)
	if !ok {
		return newShapeError("AddEdge", dst)
	}
	if sv == dv {
		return newShapeError("AddEdge: self-loop", src)
	}
	g.insertEdge(sv, dv, scope)
	return nil
}

// RemoveAndContract removes element from the graph. For every
// (predecessor, successor) pair of element, an edge predecessor→successor
// is installed carrying compose(predecessorScope, successorScope); this
// happens once per (predecessor edge, successor edge) combination, so a
// vertex with m in-edges and n out-edges yields m*n replacement edges,
// the fan-out a real contraction must account for.
func (g *Graph) RemoveAndContract(element Element, compose Composer) error {
	v, ok := g.vertexOf(element)
	if !ok {
		return newShapeError("RemoveAndContract", element)
	}
	if g.vertices[v].bookend {
		return newShapeError("RemoveAndContract: cannot contract bookend", element)
	}

	inIDs := g.liveIn(v)
	outIDs := g.liveOut(v)

	for _, inID := range inIDs {
		inEdge := g.edges[inID]
		if inEdge.src == v {
			continue // self-loop guard; AddEdge already forbids these
		}
		for _, outID := range outIDs {
			outEdge := g.edges[outID]
			if outEdge.dst == v {
				continue
			}
			composed := compose(inEdge.scope, outEdge.scope)
			g.insertEdge(inEdge.src, outEdge.dst, composed)
		}
	}

	g.removeVertex(v)
	return nil
}

// ReplaceElementWith rewires every incoming and outgoing edge of old to
// terminate at replacement instead, preserving scope identity and
// insertion order, then removes old. replacement must already be present
// in the graph.
func (g *Graph) ReplaceElementWith(old, replacement Element) error {
	ov, ok := g.vertexOf(old)
	if !ok {
		return newShapeError("ReplaceElementWith", old)
	}
	rv, ok := g.vertexOf(replacement)
	if !ok {
		return newShapeError("ReplaceElementWith", replacement)
	}
	if ov == rv {
		return nil
	}

	for _, id := range g.liveIn(ov) {
		e := &g.edges[id]
		if e.src == rv {
			e.alive = false // would become a self-loop; drop it
			continue
		}
		e.dst = rv
		g.vertices[rv].in = append(g.vertices[rv].in, id)
	}
	for _, id := range g.liveOut(ov) {
		e := &g.edges[id]
		if e.dst == rv {
			e.alive = false
			continue
		}
		e.src = rv
		g.vertices[rv].out = append(g.vertices[rv].out, id)
	}

	// Every edge that was live in old's in/out lists has already been
	// either retargeted onto replacement or dropped above; clear the
	// lists so a plain removeVertex doesn't re-kill the retargeted ones.
	g.vertices[ov].in = nil
	g.vertices[ov].out = nil
	g.removeVertex(ov)
	return nil
}

// InsertFlowElementAfter splits every outgoing edge prev→s into
// prev→newElement→s. The leg nearest prev inherits the original scope;
// the leg nearest s carries freshScope, a fixed, documented choice the
// collaborator is free to normalise after the fact.
func (g *Graph) InsertFlowElementAfter(prev, newElement Element, freshScope Scope) error {
	pv, ok := g.vertexOf(prev)
	if !ok {
		return newShapeError("InsertFlowElementAfter", prev)
	}
	if _, exists := g.vertexOf(newElement); !exists {
		g.insertVertex(newElement, false)
	}
	nv := g.byElem[newElement]

	outIDs := g.liveOut(pv)
	for _, id := range outIDs {
		e := &g.edges[id]
		successor := e.dst
		originalScope := e.scope

		e.alive = false
		g.insertEdge(pv, nv, originalScope)
		g.insertEdge(nv, successor, freshScope)
	}
	return nil
}

// removeVertex marks a vertex and all of its incident edges (in either
// direction) dead. Dead storage is never compacted within a Graph's
// lifetime so that vertexID/edgeID values handed out earlier stay valid
// to detect use of stale references.
func (g *Graph) removeVertex(v vertexID) {
	for _, id := range g.vertices[v].in {
		g.edges[id].alive = false
	}
	for _, id := range g.vertices[v].out {
		g.edges[id].alive = false
	}
	delete(g.byElem, g.vertices[v].element)
	g.vertices[v].alive = false
}

// Copy returns a deep copy of the graph's structure; flow elements and
// scopes themselves are shared by reference, not copied.
func (g *Graph) Copy() *Graph {
	out := &Graph{
		vertices: make([]vertexRecord, len(g.vertices)),
		edges:    make([]edgeRecord, len(g.edges)),
		byElem:   make(map[Element]vertexID, len(g.byElem)),
		head:     g.head,
		tail:     g.tail,
	}
	for i, v := range g.vertices {
		out.vertices[i] = vertexRecord{
			element: v.element,
			out:     append([]edgeID(nil), v.out...),
			in:      append([]edgeID(nil), v.in...),
			bookend: v.bookend,
			alive:   v.alive,
		}
	}
	copy(out.edges, g.edges)
	for e, id := range g.byElem {
		out.byElem[e] = id
	}
	return out
}

// Mask returns a read-only view that omits the graph's head and tail
// bookends without copying any storage.
func (g *Graph) Mask() *MaskedView {
	return &MaskedView{g: g}
}

// MaskedView is a read-only projection of a Graph that hides head/tail.
type MaskedView struct {
	g *Graph
}

// Vertices returns every live vertex except head and tail.
func (m *MaskedView) Vertices() []Element {
	all := m.g.Vertices()
	out := make([]Element, 0, len(all))
	for _, e := range all {
		if !m.g.IsBookend(e) {
			out = append(out, e)
		}
	}
	return out
}

// Graph exposes the underlying graph for operations the mask itself does
// not wrap (e.g. Successors); callers must not use it to observe head or
// tail through iteration helpers that assume masking.
func (m *MaskedView) Graph() *Graph { return m.g }
