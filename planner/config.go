package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowkit/planner/graph"
	"github.com/flowkit/planner/match"
)

// Config is the planner's YAML-backed configuration: trace settings, the
// matcher's search order and edge-matching algorithm, the recursive
// transformer's iteration cap, and rule-name filters.
type Config struct {
	Trace struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"trace"`

	Search struct {
		Order string `yaml:"order"`
	} `yaml:"search"`

	Recursive struct {
		MaxIterations int `yaml:"max-iterations"`
	} `yaml:"recursive"`

	EdgeMatching struct {
		Algorithm string `yaml:"algorithm"`
	} `yaml:"edge-matching"`

	RuleFilter struct {
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"rule-filter"`
}

// DefaultConfig returns the default configuration: tracing off,
// topological search order, an effectively unbounded recursion cap,
// bipartite edge matching, and no rule filtering.
func DefaultConfig() *Config {
	c := &Config{}
	c.Trace.Enabled = false
	c.Trace.Path = "./trace"
	c.Search.Order = "topological"
	c.Recursive.MaxIterations = 1 << 31
	c.EdgeMatching.Algorithm = "bipartite"
	c.RuleFilter.Include = []string{"*"}
	c.RuleFilter.Exclude = nil
	return c
}

// LoadConfig reads and parses a YAML configuration file, starting from
// DefaultConfig so an omitted key keeps its documented default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("planner: reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("planner: parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every enumerated option names a recognized value.
// Validate is the sole place *ConfigError is raised, and only at
// construction time.
func (c *Config) Validate() error {
	switch c.Search.Order {
	case "topological", "reverse", "dfs", "bfs":
	default:
		return newConfigError("search.order", c.Search.Order, "topological, reverse, dfs, bfs")
	}
	switch c.EdgeMatching.Algorithm {
	case "bipartite", "permutation":
	default:
		return newConfigError("edge-matching.algorithm", c.EdgeMatching.Algorithm, "bipartite, permutation")
	}
	if c.Recursive.MaxIterations <= 0 {
		return newConfigError("recursive.max-iterations", fmt.Sprint(c.Recursive.MaxIterations), "a positive integer")
	}
	return nil
}

// SearchOrder translates the configured string into a graph.SearchOrder.
func (c *Config) SearchOrder() graph.SearchOrder {
	switch c.Search.Order {
	case "reverse":
		return graph.ReverseTopological
	case "dfs":
		return graph.DepthFirst
	case "bfs":
		return graph.BreadthFirst
	default:
		return graph.Topological
	}
}

// EdgeMatchAlgorithm translates the configured string into a
// match.EdgeMatchAlgorithm.
func (c *Config) EdgeMatchAlgorithm() match.EdgeMatchAlgorithm {
	if c.EdgeMatching.Algorithm == "permutation" {
		return match.PermutationEnumeration
	}
	return match.BipartiteMatching
}
