package match

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
)

// searcher drives the VF2 depth-first search over a fixed P-graph/E-graph
// pair. It is built once per Find/FindAll call and holds the read-only
// inputs the recursive step needs.
type searcher struct {
	p    *expr.Graph
	e    *graph.Indexed
	algo EdgeMatchAlgorithm
	ctx  *FinderContext

	onMatch func(*state) bool // return false to stop the search early
}

// nextPair chooses the next (i, j) candidate pair to try extending state
// with. It pins a single P-graph vertex, the first unmapped one in the
// strictest non-empty terminal tier (priority both, then out, then in,
// then the unconstrained fallback), and only advances the E-graph side
// across repeated calls at the same depth. Pinning one P vertex per
// depth, rather than trying every unmapped P vertex against every
// unmapped E vertex, is what keeps each complete mapping from being
// rediscovered once per pair-insertion order.
func (s *searcher) nextPair(st *state, prevI, prevJ int) (int, int, bool) {
	term1, term2 := s.terminalTier(st)

	order1 := s.pCandidates(st, term1)
	if len(order1) == 0 {
		return null, null, false
	}
	i := order1[0]

	order2 := s.eCandidates(st, term2)
	if len(order2) == 0 {
		return null, null, false
	}

	if prevI != i {
		return i, order2[0], true
	}

	pos := indexOf(order2, prevJ)
	if pos == null || pos+1 >= len(order2) {
		return null, null, false
	}
	return i, order2[pos+1], true
}

// terminalTier picks the strictest non-empty terminal tier both sides
// agree on, in priority order both, out, in, returning nil/nil (every
// unmapped vertex is a candidate) once none of the three has members on
// both sides.
func (s *searcher) terminalTier(st *state) (term1, term2 []int) {
	switch {
	case st.t1bothLen > 0 && st.t2bothLen > 0:
		return bothMask(st.in1, st.out1), bothMask(st.in2, st.out2)
	case st.t1outLen > 0 && st.t2outLen > 0:
		return st.out1, st.out2
	case st.t1inLen > 0 && st.t2inLen > 0:
		return st.in1, st.in2
	default:
		return nil, nil
	}
}

// bothMask builds a membership slice for the vertices stamped on both
// the in and the out side, the way pCandidates/eCandidates expect a
// single term slice to test against.
func bothMask(in, out []int) []int {
	mask := make([]int, len(in))
	for i := range in {
		if in[i] != 0 && out[i] != 0 {
			mask[i] = 1
		}
	}
	return mask
}

func (s *searcher) pCandidates(st *state, term []int) []int {
	order := s.p.Order()
	if order == nil {
		order = identityOrder(st.n1)
	}
	out := make([]int, 0, len(order))
	for _, i := range order {
		if st.core1[i] != null {
			continue
		}
		if term != nil && term[i] == 0 {
			continue
		}
		out = append(out, i)
	}
	return out
}

func (s *searcher) eCandidates(st *state, term []int) []int {
	order := s.e.Order()
	out := make([]int, 0, len(order))
	for _, j := range order {
		if st.core2[j] != null {
			continue
		}
		if term != nil && term[j] == 0 {
			continue
		}
		out = append(out, j)
	}
	return out
}

func indexOf(xs []int, v int) int {
	for pos, x := range xs {
		if x == v {
			return pos
		}
	}
	return null
}

func identityOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// isFeasiblePair is the feasibility test: the node
// predicates must accept each other's element/pattern, every P-graph edge
// between i and an already-mapped P vertex, in either direction, must
// have a compatible E-graph bundle between j and that vertex's image
// (checkNeighbours), and the VF2 lookahead counts must not rule the pair
// out before it is even added. E-graph edges with no P-graph counterpart
// are not checked, so a match need not be an induced subgraph.
func (s *searcher) isFeasiblePair(st *state, i, j int) bool {
	node := s.p.Node(i)
	element := s.e.Element(j)
	if !node.Accepts(element) {
		return false
	}
	if !s.ctx.admits(element) {
		return false
	}
	if !s.ctx.admitsPrimary(node.Label, element) {
		return false
	}

	if !s.checkNeighbours(st, i, j) {
		return false
	}

	return s.lookahead(st, i, j)
}

// checkNeighbours verifies every P-graph edge touching i against its
// mirror in the E-graph for every P vertex already in the mapping.
func (s *searcher) checkNeighbours(st *state, i, j int) bool {
	for pn := 0; pn < st.n1; pn++ {
		if st.core1[pn] == null {
			continue
		}
		en := st.core1[pn]

		if s.p.HasEdge(pn, i) {
			if !areCompatibleEdges(s.p.Bundle(pn, i), s.e.ScopesTo(en, j), s.algo) {
				return false
			}
		}
		if s.p.HasEdge(i, pn) {
			if !areCompatibleEdges(s.p.Bundle(i, pn), s.e.ScopesTo(j, en), s.algo) {
				return false
			}
		}
	}
	return true
}

// lookahead computes the termin1<=termin2, termout1<=termout2 and
// new1<=new2 counts: how many of i/j's unmapped neighbours fall into
// the terminal sets, versus entirely outside them.
func (s *searcher) lookahead(st *state, i, j int) bool {
	termin1, termout1, new1 := s.classifyNeighbours(st, i, true)
	termin2, termout2, new2 := s.classifyNeighboursE(st, j, true)
	if termin1 > termin2 || termout1 > termout2 || new1 > new2 {
		return false
	}
	return true
}

// classifyNeighbours counts i's unmapped P-graph successors/predecessors
// by whether they already carry an "in"/"out" terminal stamp, or neither.
func (s *searcher) classifyNeighbours(st *state, i int, outgoing bool) (termin, termout, fresh int) {
	for _, succ := range s.p.Successors(i) {
		if st.core1[succ] != null {
			continue
		}
		switch {
		case st.in1[succ] > 0:
			termin++
		case st.out1[succ] > 0:
			termout++
		default:
			fresh++
		}
	}
	for _, pred := range s.p.Predecessors(i) {
		if st.core1[pred] != null {
			continue
		}
		switch {
		case st.in1[pred] > 0:
			termin++
		case st.out1[pred] > 0:
			termout++
		default:
			fresh++
		}
	}
	return
}

func (s *searcher) classifyNeighboursE(st *state, j int, outgoing bool) (termin, termout, fresh int) {
	for _, succ := range s.e.Successors(j) {
		n := succ.To()
		if st.core2[n] != null {
			continue
		}
		switch {
		case st.in2[n] > 0:
			termin++
		case st.out2[n] > 0:
			termout++
		default:
			fresh++
		}
	}
	for _, pred := range s.e.Predecessors(j) {
		n := pred.To()
		if st.core2[n] != null {
			continue
		}
		switch {
		case st.in2[n] > 0:
			termin++
		case st.out2[n] > 0:
			termout++
		default:
			fresh++
		}
	}
	return
}

// addPair extends st with the pair (i, j), returning a fresh state: the
// original is left untouched so the caller can try the next candidate
// pair after backtracking simply by discarding the returned state.
func (s *searcher) addPair(st *state, i, j int) *state {
	next := st.clone()
	next.core1[i] = j
	next.core2[j] = i
	next.coreLen++

	s.stampTerminal1(next, i)
	s.stampTerminal2(next, j)
	s.recountTerminals(next)
	return next
}

func (s *searcher) stampTerminal1(st *state, i int) {
	for _, succ := range s.p.Successors(i) {
		if st.core1[succ] == null && st.out1[succ] == 0 {
			st.out1[succ] = st.coreLen
		}
	}
	for _, pred := range s.p.Predecessors(i) {
		if st.core1[pred] == null && st.in1[pred] == 0 {
			st.in1[pred] = st.coreLen
		}
	}
}

func (s *searcher) stampTerminal2(st *state, j int) {
	for _, succ := range s.e.Successors(j) {
		n := succ.To()
		if st.core2[n] == null && st.out2[n] == 0 {
			st.out2[n] = st.coreLen
		}
	}
	for _, pred := range s.e.Predecessors(j) {
		n := pred.To()
		if st.core2[n] == null && st.in2[n] == 0 {
			st.in2[n] = st.coreLen
		}
	}
}

// recountTerminals recomputes the six scalar terminal-set sizes from the
// stamp arrays, after a pair has just been added.
func (s *searcher) recountTerminals(st *state) {
	st.t1inLen, st.t1outLen, st.t1bothLen = 0, 0, 0
	for i := 0; i < st.n1; i++ {
		if st.core1[i] != null {
			continue
		}
		in, out := st.in1[i] > 0, st.out1[i] > 0
		switch {
		case in && out:
			st.t1bothLen++
		case in:
			st.t1inLen++
		case out:
			st.t1outLen++
		}
	}
	st.t2inLen, st.t2outLen, st.t2bothLen = 0, 0, 0
	for j := 0; j < st.n2; j++ {
		if st.core2[j] != null {
			continue
		}
		in, out := st.in2[j] > 0, st.out2[j] > 0
		switch {
		case in && out:
			st.t2bothLen++
		case in:
			st.t2inLen++
		case out:
			st.t2outLen++
		}
	}
}

// search is the recursive depth-first driver. It never mutates st; every
// branch works off its own clone, so callers that keep a reference to an
// ancestor state see it bit-identical after the subtree returns.
func (s *searcher) search(st *state, prevI, prevJ int) bool {
	if st.isGoal() {
		return s.onMatch(st)
	}
	if st.isDead() {
		return true // true = "keep searching siblings", not "found"
	}

	i, j := prevI, prevJ
	for {
		var ni, nj int
		var ok bool
		ni, nj, ok = s.nextPair(st, i, j)
		if !ok {
			return true
		}
		i, j = ni, nj
		if s.isFeasiblePair(st, i, j) {
			next := s.addPair(st, i, j)
			if !s.search(next, null, null) {
				return false
			}
		}
	}
}
