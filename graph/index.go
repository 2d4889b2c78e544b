package graph

// SearchOrder selects the deterministic vertex ordering an Indexed view
// exposes to the matcher. Indexing and search order are the sole source
// of the matcher's determinism.
type SearchOrder int

const (
	// Topological orders vertices so every predecessor precedes its
	// successors, breaking ties by insertion order (a stable Kahn's
	// algorithm).
	Topological SearchOrder = iota
	// ReverseTopological is Topological reversed.
	ReverseTopological
	// DepthFirst orders vertices by DFS preorder, starting at index 0 and
	// restarting at each still-unvisited index in turn.
	DepthFirst
	// BreadthFirst orders vertices by BFS order, starting at index 0 and
	// restarting at each still-unvisited index in turn.
	BreadthFirst
)

// Indexed wraps a Graph (or a MaskedView of one) with a dense integer
// index 0..n-1 and materialised successor/predecessor tables, so the
// matcher never has to re-walk map-backed adjacency during a search.
type Indexed struct {
	g        *Graph
	elements []Element          // index -> element
	indexOf  map[Element]int    // element -> index
	succ     [][]indexedEdge    // index -> out neighbours
	pred     [][]indexedEdge    // index -> in neighbours
	order    []int              // the search order, as a permutation of indices
}

// indexedEdge names a neighbour by index together with the parallel-edge
// scope bundle toward it (each neighbour appears in exactly one entry).
type indexedEdge struct {
	to     int
	scopes []Scope
}

// To returns the neighbour index this bundle points at.
func (e indexedEdge) To() int { return e.to }

// Scopes returns the parallel-edge scope bundle toward the neighbour.
func (e indexedEdge) Scopes() []Scope { return e.scopes }

// NewIndexed builds an Indexed view over every live vertex of g in the
// given search order. Head and tail are included; use NewIndexedMasked to
// exclude them.
func NewIndexed(g *Graph, order SearchOrder) *Indexed {
	return newIndexed(g, g.Vertices(), order)
}

// NewIndexedMasked builds an Indexed view over a masked graph, excluding
// head and tail from both the index and all adjacency tables.
func NewIndexedMasked(m *MaskedView, order SearchOrder) *Indexed {
	return newIndexed(m.g, m.Vertices(), order)
}

func newIndexed(g *Graph, elements []Element, order SearchOrder) *Indexed {
	idx := &Indexed{
		g:        g,
		elements: elements,
		indexOf:  make(map[Element]int, len(elements)),
	}
	for i, e := range elements {
		idx.indexOf[e] = i
	}

	idx.succ = make([][]indexedEdge, len(elements))
	idx.pred = make([][]indexedEdge, len(elements))
	for i, e := range elements {
		idx.succ[i] = bundleByNeighbour(idx, g.Successors(e))
		idx.pred[i] = bundleByNeighbour(idx, g.Predecessors(e))
	}

	idx.order = computeOrder(idx, order)
	return idx
}

func bundleByNeighbour(idx *Indexed, views []EdgeView) []indexedEdge {
	order := make([]int, 0, len(views))
	byTo := make(map[int][]Scope)
	for _, v := range views {
		to, ok := idx.indexOf[v.Element]
		if !ok {
			continue // neighbour outside the indexed vertex set (masked out)
		}
		if _, seen := byTo[to]; !seen {
			order = append(order, to)
		}
		byTo[to] = append(byTo[to], v.Scope)
	}
	out := make([]indexedEdge, 0, len(order))
	for _, to := range order {
		out = append(out, indexedEdge{to: to, scopes: byTo[to]})
	}
	return out
}

// N returns the number of indexed vertices.
func (idx *Indexed) N() int { return len(idx.elements) }

// Element returns the flow element at index i.
func (idx *Indexed) Element(i int) Element { return idx.elements[i] }

// IndexOf returns the index of element, or -1 if it is not indexed.
func (idx *Indexed) IndexOf(element Element) int {
	if i, ok := idx.indexOf[element]; ok {
		return i
	}
	return -1
}

// Successors returns the out-neighbour bundles of vertex i.
func (idx *Indexed) Successors(i int) []indexedEdge { return idx.succ[i] }

// Predecessors returns the in-neighbour bundles of vertex i.
func (idx *Indexed) Predecessors(i int) []indexedEdge { return idx.pred[i] }

// ScopesTo returns the parallel-edge scope bundle from i to j, or nil if
// no edge exists between them.
func (idx *Indexed) ScopesTo(i, j int) []Scope {
	for _, e := range idx.succ[i] {
		if e.to == j {
			return e.scopes
		}
	}
	return nil
}

// Order returns the configured deterministic visiting order, as a
// permutation of vertex indices.
func (idx *Indexed) Order() []int { return idx.order }

func computeOrder(idx *Indexed, order SearchOrder) []int {
	switch order {
	case ReverseTopological:
		topo := kahnOrder(idx)
		reverse(topo)
		return topo
	case DepthFirst:
		return dfsOrder(idx)
	case BreadthFirst:
		return bfsOrder(idx)
	default:
		return kahnOrder(idx)
	}
}

// kahnOrder computes a stable topological order (Kahn's algorithm, FIFO
// frontier so ties resolve by ascending index). If the graph is not a
// DAG (a longer cycle through parallel paths, since self-loops are
// forbidden), any vertex never reached by the time the frontier empties
// is appended in index order, so every vertex still appears exactly once.
func kahnOrder(idx *Indexed) []int {
	n := idx.N()
	indeg := make([]int, n)
	for i := 0; i < n; i++ {
		for _, e := range idx.succ[i] {
			indeg[e.to]++
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if visited[v] {
			continue
		}
		visited[v] = true
		order = append(order, v)
		for _, e := range idx.succ[v] {
			indeg[e.to]--
			if indeg[e.to] == 0 {
				queue = append(queue, e.to)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !visited[i] {
			order = append(order, i)
		}
	}
	return order
}

func dfsOrder(idx *Indexed) []int {
	n := idx.N()
	visited := make([]bool, n)
	order := make([]int, 0, n)

	var visit func(int)
	visit = func(v int) {
		if visited[v] {
			return
		}
		visited[v] = true
		order = append(order, v)
		for _, e := range idx.succ[v] {
			visit(e.to)
		}
	}
	for i := 0; i < n; i++ {
		visit(i)
	}
	return order
}

func bfsOrder(idx *Indexed) []int {
	n := idx.N()
	visited := make([]bool, n)
	order := make([]int, 0, n)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			order = append(order, v)
			for _, e := range idx.succ[v] {
				if !visited[e.to] {
					visited[e.to] = true
					queue = append(queue, e.to)
				}
			}
		}
	}
	return order
}

func reverse(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
