package planner

import (
	"context"
	"sort"

	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/partition"
	"github.com/flowkit/planner/rule"
)

// Driver sequences a rule catalogue across the ten plan phases, threading
// the current E-graph between rules and between phases, and aborting the
// plan on the first error a rule surfaces.
type Driver struct {
	Rules  []rule.Rule
	Filter *RuleFilter
	Logger Logger
	Trace  TraceWriter
}

// NewDriver builds a Driver from a rule catalogue and a Config. Logger
// and Trace may be nil; NewDriver substitutes no-op implementations.
func NewDriver(rules []rule.Rule, cfg *Config, logger Logger, trace TraceWriter) *Driver {
	return &Driver{
		Rules:  rules,
		Filter: NewRuleFilter(cfg),
		Logger: orNopLogger(logger),
		Trace:  orNopTraceWriter(trace),
	}
}

// PlanResult is the driver's output: the final E-graph plus any
// partition collections attached by PartitionerRules, keyed by rule
// name.
type PlanResult struct {
	Graph      *graph.Graph
	Partitions map[string][]partition.Partition
}

// Run executes every allowed rule in phase-then-declaration order
// against g, returning the final graph or the first error encountered.
// ctx is checked before each rule starts, never mid-rule, and a context
// already done before the very first rule still runs nothing and
// reports *TimeoutError.
func (d *Driver) Run(ctx context.Context, g *graph.Graph) (*PlanResult, error) {
	scheduled := d.schedule()
	current := g
	result := &PlanResult{Graph: current, Partitions: map[string][]partition.Partition{}}

	for _, r := range scheduled {
		if !d.Filter.Allows(r.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, newTimeoutError(r.Name(), r.Phase())
		}

		anvil := current.Copy()
		d.Logger.Printf("phase=%s rule=%s applying", r.Phase(), r.Name())
		if err := d.Trace.Write(r.Phase(), r.Name()+"-before", current); err != nil {
			d.Logger.Printf("phase=%s rule=%s trace-before failed: %v", r.Phase(), r.Name(), err)
		}

		out, err := r.Apply(anvil)
		if err != nil {
			return result, &PlanError{Phase: r.Phase(), Rule: r.Name(), Err: err}
		}
		if out.Err != nil {
			return result, &PlanError{Phase: r.Phase(), Rule: r.Name(), Err: out.Err}
		}

		if out.End != current && !current.StructurallyEqual(out.End) {
			current = out.End
			result.Graph = current
		}

		if err := d.Trace.Write(r.Phase(), r.Name()+"-after", current); err != nil {
			d.Logger.Printf("phase=%s rule=%s trace-after failed: %v", r.Phase(), r.Name(), err)
		}

		if provider, ok := r.(rule.PartitionsProvider); ok {
			result.Partitions[r.Name()] = provider.Partitions()
		}
	}
	return result, nil
}

// schedule returns the rule list sorted stably by phase, so that rules
// within one phase keep their original relative order regardless of how
// the caller built the list.
func (d *Driver) schedule() []rule.Rule {
	out := make([]rule.Rule, len(d.Rules))
	copy(out, d.Rules)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Phase() < out[j].Phase() })
	return out
}
