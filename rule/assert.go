package rule

import (
	"github.com/flowkit/planner/expr"
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
	"github.com/flowkit/planner/transform"
)

// AssertRule owns a pattern and a message template with {Primary} and
// {Secondary} placeholders. If the pattern matches, Apply fails with an
// *AssertionError carrying the interpolated message.
type AssertRule struct {
	name    string
	phase   Phase
	Pattern *expr.Graph
	Message string

	SearchOrder graph.SearchOrder
	Algorithm   match.EdgeMatchAlgorithm
	Context     *match.FinderContext
}

// NewAssertRule constructs an assert rule. name, if empty, defaults via
// DefaultName(identifier).
func NewAssertRule(identifier, name string, phase Phase, pattern *expr.Graph, message string) *AssertRule {
	if name == "" {
		name = DefaultName(identifier)
	}
	return &AssertRule{name: name, phase: phase, Pattern: pattern, Message: message}
}

func (r *AssertRule) Name() string  { return r.name }
func (r *AssertRule) Phase() Phase  { return r.phase }

func (r *AssertRule) Apply(g *graph.Graph) (transform.Transform, error) {
	idx := graph.NewIndexedMasked(g.Mask(), r.SearchOrder)
	ctx := r.Context
	if ctx == nil {
		ctx = match.NewFinderContext()
	}
	m := match.Find(r.Pattern, idx, ctx, r.Algorithm)
	if m == nil {
		return transform.Transform{End: g}, nil
	}
	err := &AssertionError{
		Rule:      r.name,
		Message:   interpolate(r.Message, m.Primary(), m.Secondary()),
		Primary:   m.Primary(),
		Secondary: m.Secondary(),
	}
	return transform.Transform{End: g}, err
}
