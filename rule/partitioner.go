package rule

import (
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/partition"
	"github.com/flowkit/planner/transform"
)

// PartitionerRule wraps an ExpressionGraphPartitioner. Unlike Assert and
// Transformer rules, its effect on the phase state is to attach a
// partitioned child-graph collection rather than mutate the parent.
// Apply always returns the parent graph unchanged, and the driver
// retrieves the computed partitions through PartitionsProvider.
type PartitionerRule struct {
	name  string
	phase Phase

	Partitioner *partition.ExpressionGraphPartitioner

	last []partition.Partition
}

// NewPartitionerRule constructs a partitioner rule. name, if empty,
// defaults via DefaultName(identifier).
func NewPartitionerRule(identifier, name string, phase Phase, partitioner *partition.ExpressionGraphPartitioner) *PartitionerRule {
	if name == "" {
		name = DefaultName(identifier)
	}
	return &PartitionerRule{name: name, phase: phase, Partitioner: partitioner}
}

func (r *PartitionerRule) Name() string { return r.name }
func (r *PartitionerRule) Phase() Phase { return r.phase }

func (r *PartitionerRule) Apply(g *graph.Graph) (transform.Transform, error) {
	r.last = r.Partitioner.Partitions(g)
	return transform.Transform{End: g, Changed: false}, nil
}

// Partitions returns the partition set computed by the most recent
// Apply call.
func (r *PartitionerRule) Partitions() []partition.Partition { return r.last }

// PartitionsProvider is implemented by any rule that attaches a
// partitioned child-graph collection instead of mutating the parent
// graph. The driver checks for it after every rule application.
type PartitionsProvider interface {
	Partitions() []partition.Partition
}
