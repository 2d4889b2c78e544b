package rule

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
	"github.com/flowkit/planner/transform"
)

// MutateKind selects which of the three MutateFlowGraphTransformer
// variants a TransformerRule applies.
type MutateKind int

const (
	Remove MutateKind = iota
	Replace
	Insert
)

// TransformerRule owns a pattern (optionally plus a contraction) and a
// MutateKind. Each variant's capture-arity requirement is checked before
// the corresponding graph.Graph mutation runs; a mismatch fails with
// *BadCapturesError.
type TransformerRule struct {
	name  string
	phase Phase

	Pattern     *expr.Graph
	Contraction *transform.ContractedTransformer // optional
	Kind        MutateKind

	Compose     graph.Composer // required for Remove
	FreshScope  graph.Scope    // required for Insert
	NewElement  func(m *match.Match) graph.Element // required for Insert

	SearchOrder graph.SearchOrder
	Algorithm   match.EdgeMatchAlgorithm
	Context     *match.FinderContext
}

// NewTransformerRule constructs a transformer rule. name, if empty,
// defaults via DefaultName(identifier).
func NewTransformerRule(identifier, name string, phase Phase, kind MutateKind, pattern *expr.Graph) *TransformerRule {
	if name == "" {
		name = DefaultName(identifier)
	}
	return &TransformerRule{name: name, phase: phase, Kind: kind, Pattern: pattern}
}

func (r *TransformerRule) Name() string { return r.name }
func (r *TransformerRule) Phase() Phase { return r.phase }

func (r *TransformerRule) Apply(g *graph.Graph) (transform.Transform, error) {
	anvil := g
	if r.Contraction != nil {
		result := r.Contraction.Apply(g)
		anvil = result.End
	}

	idx := graph.NewIndexedMasked(anvil.Mask(), r.SearchOrder)
	ctx := r.Context
	if ctx == nil {
		ctx = match.NewFinderContext()
	}
	m := match.Find(r.Pattern, idx, ctx, r.Algorithm)
	if m == nil {
		return transform.Transform{End: g}, nil
	}

	next := anvil.Copy()
	switch r.Kind {
	case Remove:
		return r.applyRemove(g, next, m)
	case Replace:
		return r.applyReplace(g, next, m)
	case Insert:
		return r.applyInsert(g, next, m)
	default:
		return transform.Transform{End: g}, nil
	}
}

func (r *TransformerRule) applyRemove(original, next *graph.Graph, m *match.Match) (transform.Transform, error) {
	primary := m.Primary()
	if len(primary) != 1 {
		return transform.Transform{End: original}, newBadCaptures(r.name, "Primary", "exactly one", len(primary))
	}
	if err := next.RemoveAndContract(primary[0], r.Compose); err != nil {
		return transform.Transform{End: original}, err
	}
	return transform.Transform{End: next, Changed: true}, nil
}

func (r *TransformerRule) applyReplace(original, next *graph.Graph, m *match.Match) (transform.Transform, error) {
	primary := m.Primary()
	secondary := m.Secondary()
	if len(primary) != 1 {
		return transform.Transform{End: original}, newBadCaptures(r.name, "Primary", "exactly one", len(primary))
	}
	if len(secondary) != 1 {
		return transform.Transform{End: original}, newBadCaptures(r.name, "Secondary", "exactly one", len(secondary))
	}
	if err := next.ReplaceElementWith(primary[0], secondary[0]); err != nil {
		return transform.Transform{End: original}, err
	}
	return transform.Transform{End: next, Changed: true}, nil
}

func (r *TransformerRule) applyInsert(original, next *graph.Graph, m *match.Match) (transform.Transform, error) {
	primary := m.Primary()
	if len(primary) != 1 {
		return transform.Transform{End: original}, newBadCaptures(r.name, "Primary", "exactly one", len(primary))
	}
	newElement := r.NewElement(m)
	if err := next.InsertFlowElementAfter(primary[0], newElement, r.FreshScope); err != nil {
		return transform.Transform{End: original}, err
	}
	return transform.Transform{End: next, Changed: true}, nil
}
