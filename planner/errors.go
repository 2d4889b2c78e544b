package planner

import (
	"fmt"

	"github.com/flowkit/planner/rule"
)

// ConfigError reports an invalid or unrecognized configuration value,
// raised only at Config construction time.
type ConfigError struct {
	Field string
	Got   string
	Want  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("planner: config: %s: got %q, want one of %s", e.Field, e.Got, e.Want)
}

func newConfigError(field, got, want string) error {
	return &ConfigError{Field: field, Got: got, Want: want}
}

// TimeoutError reports that the driver's context was done before the
// next rule in the schedule could start. It is never raised mid-rule:
// a rule already running always finishes.
type TimeoutError struct {
	Rule  string
	Phase rule.Phase
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("planner: timed out before rule %q in phase %s", e.Rule, e.Phase)
}

func newTimeoutError(ruleName string, phase rule.Phase) error {
	return &TimeoutError{Rule: ruleName, Phase: phase}
}

// PlanError annotates an error raised while applying a rule with the
// phase and rule name the driver was in when it surfaced.
type PlanError struct {
	Phase rule.Phase
	Rule  string
	Err   error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("planner: phase %s, rule %q: %v", e.Phase, e.Rule, e.Err)
}

func (e *PlanError) Unwrap() error { return e.Err }

