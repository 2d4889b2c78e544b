package planner

import (
	"github.com/bmatcuk/doublestar/v4"
)

// RuleFilter decides, by glob-matching rule names, which rules in the
// schedule actually run. An include list of length zero behaves as
// "*" (include everything); Exclude always wins over Include.
type RuleFilter struct {
	Include []string
	Exclude []string
}

// NewRuleFilter builds a RuleFilter from a Config's rule-filter block.
func NewRuleFilter(cfg *Config) *RuleFilter {
	return &RuleFilter{Include: cfg.RuleFilter.Include, Exclude: cfg.RuleFilter.Exclude}
}

// Allows reports whether a rule named name should run.
func (f *RuleFilter) Allows(name string) bool {
	if f.matchesAny(f.Exclude, name) {
		return false
	}
	if len(f.Include) == 0 {
		return true
	}
	return f.matchesAny(f.Include, name)
}

func (f *RuleFilter) matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue // a malformed pattern matches nothing rather than panicking
		}
		if matched {
			return true
		}
	}
	return false
}
