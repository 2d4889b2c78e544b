package fixture

import "github.com/flowkit/planner/graph"

// Scope is this vocabulary's concrete edge value: a dataflow connection
// carrying a name and whether it is blocking (must materialise before
// downstream work can proceed, e.g. the accumulating side of a join).
type Scope struct {
	Name     string
	Blocking bool
}

func (s Scope) String() string {
	if s.Blocking {
		return s.Name + "(blocking)"
	}
	return s.Name
}

// Compose is the collaborator's scope-composition function: the composed
// scope's name concatenates both legs', and it is blocking iff either
// leg was. Both name concatenation and OR are associative, so repeated
// contraction never depends on grouping order.
func Compose(in, out graph.Scope) graph.Scope {
	is := in.(Scope)
	os := out.(Scope)
	name := is.Name
	if os.Name != "" {
		if name != "" {
			name += ">"
		}
		name += os.Name
	}
	return Scope{Name: name, Blocking: is.Blocking || os.Blocking}
}

// Blocking is the edge predicate matching only blocking scopes.
func Blocking(scope graph.Scope) bool {
	s, ok := scope.(Scope)
	return ok && s.Blocking
}

// NonBlocking is the edge predicate matching only non-blocking scopes.
func NonBlocking(scope graph.Scope) bool {
	s, ok := scope.(Scope)
	return ok && !s.Blocking
}
