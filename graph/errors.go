package graph

import "fmt"

// ShapeError reports a violation of the E-graph's structural invariants:
// a dangling edge endpoint, an unknown vertex passed to a mutation, or an
// attempted self-loop.
type ShapeError struct {
	Op      string
	Element Element
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("graph: %s: %v", e.Op, e.Element)
}

func newShapeError(op string, element Element) error {
	return &ShapeError{Op: op, Element: element}
}
