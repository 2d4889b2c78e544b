package fixture

import "github.com/flowkit/planner/graph"

// IsSource, IsSink, IsTap, IsGroupBy, IsHashJoin accept exactly the
// concrete type they name, regardless of ID: the node predicates a
// P-graph vertex uses to recognise this vocabulary's elements.
func IsSource(element graph.Element) bool {
	_, ok := element.(*Source)
	return ok
}

func IsSink(element graph.Element) bool {
	_, ok := element.(*Sink)
	return ok
}

func IsTap(element graph.Element) bool {
	_, ok := element.(*Tap)
	return ok
}

func IsGroupBy(element graph.Element) bool {
	_, ok := element.(*GroupBy)
	return ok
}

func IsHashJoin(element graph.Element) bool {
	_, ok := element.(*HashJoin)
	return ok
}

// IsEveryWrapping builds a predicate matching an *Every whose wrapped
// Aggregator has the given concrete kind (e.g. IsEveryWrapping(IsBuffer)
// for "Every(Buffer)" in scenario S1).
func IsEveryWrapping(aggregatorKind func(graph.Element) bool) func(graph.Element) bool {
	return func(element graph.Element) bool {
		every, ok := element.(*Every)
		if !ok || every.Aggregator == nil {
			return false
		}
		return aggregatorKind(every.Aggregator)
	}
}

// IsAnyEvery matches any *Every regardless of the aggregator it wraps.
func IsAnyEvery(element graph.Element) bool {
	_, ok := element.(*Every)
	return ok
}

func IsBuffer(element graph.Element) bool {
	_, ok := element.(*Buffer)
	return ok
}

func IsSum(element graph.Element) bool {
	_, ok := element.(*Sum)
	return ok
}

func IsPipe(element graph.Element) bool {
	_, ok := element.(*Pipe)
	return ok
}
