package repositories

import (
	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/bazel"
)

// RuleRegistry manages the registered rule generators, in registration
// order so generated files keep a stable rule layout.
type RuleRegistry struct {
	generators []bazel.RuleGenerator
}

// NewRuleRegistry creates an empty rule registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{}
}

// Register appends a rule generator.
func (r *RuleRegistry) Register(g bazel.RuleGenerator) {
	r.generators = append(r.generators, g)
}

// All returns every registered generator in registration order.
func (r *RuleRegistry) All() []bazel.RuleGenerator {
	return r.generators
}

// Names returns the registered rule kinds.
func (r *RuleRegistry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for _, g := range r.generators {
		names = append(names, g.Kind())
	}
	return names
}
