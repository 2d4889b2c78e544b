package rule

import (
	"fmt"
	"strings"

	"github.com/flowkit/planner/graph"
)

// BadCapturesError reports that a transformer variant's match carried the
// wrong number of elements under the capture label it requires, e.g. a
// Replace rule's match had zero or more than one Secondary capture.
type BadCapturesError struct {
	Rule  string
	Label string
	Want  string
	Got   int
}

func (e *BadCapturesError) Error() string {
	return fmt.Sprintf("rule %q: expected %s captured element(s) under %s, got %d", e.Rule, e.Want, e.Label, e.Got)
}

func newBadCaptures(ruleName, label, want string, got int) error {
	return &BadCapturesError{Rule: ruleName, Label: label, Want: want, Got: got}
}

// AssertionError reports that an assert rule's pattern matched: the plan
// is invalid and the driver aborts with the interpolated message.
type AssertionError struct {
	Rule    string
	Message string
	Primary []graph.Element
	Secondary []graph.Element
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("rule %q: assertion failed: %s", e.Rule, e.Message)
}

// interpolate fills {Primary} and {Secondary} placeholders in template
// with the first element of each capture set, formatted with %v.
func interpolate(template string, primary, secondary []graph.Element) string {
	out := template
	out = strings.ReplaceAll(out, "{Primary}", formatFirst(primary))
	out = strings.ReplaceAll(out, "{Secondary}", formatFirst(secondary))
	return out
}

func formatFirst(elements []graph.Element) string {
	if len(elements) == 0 {
		return "<none>"
	}
	return fmt.Sprintf("%v", elements[0])
}
