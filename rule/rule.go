package rule

import (
	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/transform"
)

// Rule is the common interface every rule kind implements so the driver
// can run Assert, Transformer, and Partitioner rules through one
// uniform phase loop.
type Rule interface {
	Name() string
	Phase() Phase
	Apply(g *graph.Graph) (transform.Transform, error)
}
