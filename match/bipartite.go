package match

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
)

// EdgeMatchAlgorithm selects how areCompatibleEdges decides whether a
// P-graph edge bundle is satisfied by an E-graph parallel-edge bundle.
type EdgeMatchAlgorithm int

const (
	// BipartiteMatching uses Hopcroft-Karp to find a maximum matching
	// between P-graph matchers and E-graph scopes. This is the default
	// and scales to bundles of any width.
	BipartiteMatching EdgeMatchAlgorithm = iota
	// PermutationEnumeration brute-forces every injective assignment.
	// Equivalent to BipartiteMatching for every input; kept only so the
	// regression suite can cross-check the two against each other on
	// small bundles.
	PermutationEnumeration
)

const unmatched = -1

// bipartiteGraph is the left(P matchers)/right(E scopes) adjacency a
// bundle-compatibility check runs over.
type bipartiteGraph struct {
	nLeft, nRight int
	adj           [][]int // adj[l] = right-side indices l can match
}

func buildBipartite(matchers []expr.ScopeExpr, scopes []graph.Scope) *bipartiteGraph {
	bg := &bipartiteGraph{nLeft: len(matchers), nRight: len(scopes)}
	bg.adj = make([][]int, bg.nLeft)
	for l, m := range matchers {
		for r, s := range scopes {
			if m.Applies(s) {
				bg.adj[l] = append(bg.adj[l], r)
			}
		}
	}
	return bg
}

// maxMatchingSaturatesLeft runs Hopcroft-Karp and reports whether every
// left vertex (every P-graph matcher) is covered by the maximum matching.
func (bg *bipartiteGraph) maxMatchingSaturatesLeft() bool {
	matchLeft := make([]int, bg.nLeft)
	matchRight := make([]int, bg.nRight)
	fill(matchLeft, unmatched)
	fill(matchRight, unmatched)

	for {
		dist := bg.bfsLayer(matchLeft, matchRight)
		if dist == nil {
			break
		}
		advanced := false
		for l := 0; l < bg.nLeft; l++ {
			if matchLeft[l] == unmatched {
				if bg.dfsAugment(l, dist, matchLeft, matchRight) {
					advanced = true
				}
			}
		}
		if !advanced {
			break
		}
	}

	for l := 0; l < bg.nLeft; l++ {
		if matchLeft[l] == unmatched {
			return false
		}
	}
	return true
}

const infDist = 1 << 30

// bfsLayer builds the alternating-path distance layering from every free
// left vertex. Returns nil once no augmenting path can possibly exist.
func (bg *bipartiteGraph) bfsLayer(matchLeft, matchRight []int) []int {
	dist := make([]int, bg.nLeft)
	queue := make([]int, 0, bg.nLeft)
	for l := 0; l < bg.nLeft; l++ {
		if matchLeft[l] == unmatched {
			dist[l] = 0
			queue = append(queue, l)
		} else {
			dist[l] = infDist
		}
	}

	found := false
	for len(queue) > 0 {
		l := queue[0]
		queue = queue[1:]
		for _, r := range bg.adj[l] {
			matched := matchRight[r]
			if matched == unmatched {
				found = true
				continue
			}
			if dist[matched] == infDist {
				dist[matched] = dist[l] + 1
				queue = append(queue, matched)
			}
		}
	}
	if !found {
		return nil
	}
	return dist
}

func (bg *bipartiteGraph) dfsAugment(l int, dist, matchLeft, matchRight []int) bool {
	for _, r := range bg.adj[l] {
		matched := matchRight[r]
		if matched == unmatched || (dist[matched] == dist[l]+1 && bg.dfsAugment(matched, dist, matchLeft, matchRight)) {
			matchLeft[l] = r
			matchRight[r] = l
			return true
		}
	}
	dist[l] = infDist
	return false
}

// permutationSaturatesLeft is the brute-force fallback: it tries every
// injective function from matchers to scopes and accepts if any satisfies
// every matcher. Exponential in len(matchers); only ever exercised on
// small bundles by the regression suite.
func permutationSaturatesLeft(matchers []expr.ScopeExpr, scopes []graph.Scope) bool {
	if len(matchers) > len(scopes) {
		return false
	}
	used := make([]bool, len(scopes))
	assignment := make([]int, len(matchers))
	return tryAssign(matchers, scopes, 0, used, assignment)
}

func tryAssign(matchers []expr.ScopeExpr, scopes []graph.Scope, i int, used []bool, assignment []int) bool {
	if i == len(matchers) {
		return true
	}
	for r, s := range scopes {
		if used[r] || !matchers[i].Applies(s) {
			continue
		}
		used[r] = true
		assignment[i] = r
		if tryAssign(matchers, scopes, i+1, used, assignment) {
			return true
		}
		used[r] = false
	}
	return false
}

// areCompatibleEdges decides whether bundle (the P-graph matchers between
// an ordered pair) is satisfied by scopes (the E-graph parallel-edge
// bundle toward the candidate neighbour). A wildcard bundle is satisfied
// by any non-empty scope set; otherwise the two bundles must have the
// same size and every matcher must be covered by a distinct scope.
func areCompatibleEdges(bundle []expr.ScopeExpr, scopes []graph.Scope, algo EdgeMatchAlgorithm) bool {
	if isWildcardBundle(bundle) {
		return len(scopes) > 0
	}
	if len(bundle) == 0 {
		return true
	}
	if len(scopes) != len(bundle) {
		return false
	}
	if algo == PermutationEnumeration {
		return permutationSaturatesLeft(bundle, scopes)
	}
	return buildBipartite(bundle, scopes).maxMatchingSaturatesLeft()
}

func isWildcardBundle(bundle []expr.ScopeExpr) bool {
	return len(bundle) == 1 && bundle[0].Wildcard
}
