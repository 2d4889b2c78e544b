// Package transform implements the three graph transforms
// (contracted, sub-graph, recursive) that rules compose to rewrite a
// working E-graph, unified under a single Transform result type in
// place of a transformer class hierarchy.
package transform

import "github.com/flowkit/planner/graph"

// Transform is the record a Transformer produces: the resulting graph
// (possibly the same object as the input, if nothing changed), the
// sequence of child transforms it produced along the way, and free-form
// diagnostics a rule may surface to the logger or a trace.
type Transform struct {
	End         *graph.Graph
	Children    []Transform
	Diagnostics []string
	Changed     bool
	Views       []SubGraphView
	Err         error
}

// Transformer is the common interface every transform kind implements,
// so a RecursiveTransformer can wrap any of them interchangeably.
type Transformer interface {
	Apply(g *graph.Graph) Transform
}

// unchanged wraps a graph that did not change, with no children. The base
// case every transformer returns when its fixed point is reached
// immediately.
func unchanged(g *graph.Graph) Transform {
	return Transform{End: g, Changed: false}
}

func changed(g *graph.Graph, children []Transform, diagnostics ...string) Transform {
	return Transform{End: g, Children: children, Diagnostics: diagnostics, Changed: true}
}
