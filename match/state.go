// Package match implements the VF2-style subgraph isomorphism matcher
// and the Match object it produces.
package match

const null = -1

// state is the VF2 matcher's state-space search record: six integer
// arrays sized n1 (P-graph) and n2 (E-graph), plus scalar terminal-set
// counters. A state is copied at every branch point, so backtracking
// undoes nothing: the search discards the extended copy and resumes
// from the untouched parent.
type state struct {
	n1, n2 int

	core1, core2 []int // core1[i] = j, core2[j] = i; null if unmapped

	in1, out1 []int // stamped with coreLen when a P vertex first becomes a terminal neighbour
	in2, out2 []int // same, E-graph side

	coreLen, origCoreLen int

	t1inLen, t1outLen, t1bothLen int
	t2inLen, t2outLen, t2bothLen int
}

func newState(n1, n2 int) *state {
	s := &state{
		n1: n1, n2: n2,
		core1: make([]int, n1),
		core2: make([]int, n2),
		in1:   make([]int, n1),
		out1:  make([]int, n1),
		in2:   make([]int, n2),
		out2:  make([]int, n2),
	}
	fill(s.core1, null)
	fill(s.core2, null)
	return s
}

func fill(xs []int, v int) {
	for i := range xs {
		xs[i] = v
	}
}

// clone makes an independent copy of the state for the search driver's
// explicit depth-first branching.
func (s *state) clone() *state {
	c := &state{
		n1: s.n1, n2: s.n2,
		core1: append([]int(nil), s.core1...),
		core2: append([]int(nil), s.core2...),
		in1:   append([]int(nil), s.in1...),
		out1:  append([]int(nil), s.out1...),
		in2:   append([]int(nil), s.in2...),
		out2:  append([]int(nil), s.out2...),
		coreLen: s.coreLen, origCoreLen: s.origCoreLen,
		t1inLen: s.t1inLen, t1outLen: s.t1outLen, t1bothLen: s.t1bothLen,
		t2inLen: s.t2inLen, t2outLen: s.t2outLen, t2bothLen: s.t2bothLen,
	}
	return c
}

// equalTo reports whether two states are bit-identical, used by the
// backtracking-identity regression test.
func (s *state) equalTo(o *state) bool {
	if s.coreLen != o.coreLen || s.origCoreLen != o.origCoreLen {
		return false
	}
	if s.t1inLen != o.t1inLen || s.t1outLen != o.t1outLen || s.t1bothLen != o.t1bothLen {
		return false
	}
	if s.t2inLen != o.t2inLen || s.t2outLen != o.t2outLen || s.t2bothLen != o.t2bothLen {
		return false
	}
	return intsEqual(s.core1, o.core1) && intsEqual(s.core2, o.core2) &&
		intsEqual(s.in1, o.in1) && intsEqual(s.out1, o.out1) &&
		intsEqual(s.in2, o.in2) && intsEqual(s.out2, o.out2)
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *state) isGoal() bool { return s.coreLen == s.n1 }

// isDead reports the pruning condition: n1 > n2, or any terminal-set
// size on the P side exceeds its E-side counterpart.
func (s *state) isDead() bool {
	if s.n1 > s.n2 {
		return true
	}
	return s.t1inLen > s.t2inLen || s.t1outLen > s.t2outLen || s.t1bothLen > s.t2bothLen
}

