package planner

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-graphviz"
	"lukechampine.com/blake3"

	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/rule"
)

// TraceWriter records a snapshot of the graph as it stood before or
// after a rule's application. It is constructor-injected, like Logger,
// and a nil TraceWriter is valid (the driver substitutes a no-op).
type TraceWriter interface {
	Write(phase rule.Phase, ruleName string, g *graph.Graph) error
}

type nopTraceWriter struct{}

func (nopTraceWriter) Write(rule.Phase, string, *graph.Graph) error { return nil }

func orNopTraceWriter(w TraceWriter) TraceWriter {
	if w == nil {
		return nopTraceWriter{}
	}
	return w
}

// DotTraceWriter renders each snapshot to a Graphviz SVG under Dir,
// naming the file by phase, rule name and the BLAKE3 hash of its DOT
// source so that tracing the same graph content twice under the same
// phase and rule name produces the same file rather than accumulating
// duplicates.
type DotTraceWriter struct {
	Dir string
	gv  *graphviz.Graphviz
}

// NewDotTraceWriter constructs a DotTraceWriter rooted at dir, creating
// the directory if it does not yet exist.
func NewDotTraceWriter(dir string) (*DotTraceWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("planner: trace: creating %s: %w", dir, err)
	}
	return &DotTraceWriter{Dir: dir, gv: graphviz.New()}, nil
}

// Close releases the underlying Graphviz instance.
func (w *DotTraceWriter) Close() error { return w.gv.Close() }

func (w *DotTraceWriter) Write(phase rule.Phase, ruleName string, g *graph.Graph) error {
	dot := renderDot(g)
	sum := blake3.Sum256([]byte(dot))
	name := fmt.Sprintf("%s-%s-%s.svg", phase, sanitizeRuleName(ruleName), hex.EncodeToString(sum[:8]))
	path := filepath.Join(w.Dir, name)

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("planner: trace: parsing dot: %w", err)
	}
	var buf bytes.Buffer
	if err := w.gv.Render(parsed, graphviz.SVG, &buf); err != nil {
		return fmt.Errorf("planner: trace: rendering %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("planner: trace: writing %s: %w", path, err)
	}
	return nil
}

func sanitizeRuleName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}

// renderDot produces a deterministic DOT description of g: vertices in
// a stable order (head, tail, then every other vertex as returned by
// Vertices, which is already insertion order) and edges grouped by
// source so identical graphs always serialise to identical bytes.
func renderDot(g *graph.Graph) string {
	var b bytes.Buffer
	b.WriteString("digraph trace {\n")

	ids := make(map[graph.Element]int)
	vertices := g.Vertices()
	for i, v := range vertices {
		ids[v] = i
		label := fmt.Sprintf("%v", v)
		if g.IsBookend(v) {
			fmt.Fprintf(&b, "  n%d [label=%q shape=doublecircle];\n", i, label)
		} else {
			fmt.Fprintf(&b, "  n%d [label=%q];\n", i, label)
		}
	}

	type edgeLine struct{ from, to int }
	var lines []string
	for _, v := range vertices {
		for _, succ := range g.Successors(v) {
			from, to := ids[v], ids[succ.Element]
			lines = append(lines, fmt.Sprintf("  n%d -> n%d;\n", from, to))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		b.WriteString(l)
	}

	b.WriteString("}\n")
	return b.String()
}
