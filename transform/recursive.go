package transform

import (
	"fmt"

	"github.com/flowkit/planner/graph"
)

// defaultIterationCap is unbounded in practice, but large enough that a
// pathological rule loops long before hitting it, at which point
// RecursiveTransformer reports it instead of spinning forever.
const defaultIterationCap = 1 << 31

// LoopError is returned when a RecursiveTransformer exhausts its
// iteration cap without reaching a fixed point.
type LoopError struct {
	Iterations int
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("transform: recursive transformer exceeded its iteration cap (%d) without reaching a fixed point", e.Iterations)
}

// RecursiveTransformer wraps any single-step Transformer and re-applies
// it to its own output until either the wrapped transform reports no
// change, or IterationCap steps have run. A zero IterationCap means
// "use the default unbounded cap".
type RecursiveTransformer struct {
	Inner        Transformer
	IterationCap int
}

// Apply drives Inner to its fixed point.
func (t *RecursiveTransformer) Apply(g *graph.Graph) Transform {
	iterationCap := t.IterationCap
	if iterationCap == 0 {
		iterationCap = defaultIterationCap
	}

	current := g
	var children []Transform
	for i := 0; i < iterationCap; i++ {
		step := t.Inner.Apply(current)
		if !step.Changed || step.End == current {
			if len(children) == 0 {
				return unchanged(g)
			}
			return changed(current, children)
		}
		children = append(children, step)
		current = step.End
	}

	result := changed(current, children)
	result.Err = &LoopError{Iterations: iterationCap}
	return result
}
