package lint

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps rule IDs, names and legacy aliases to rules.
//
// Config files written for the ESLint plugin refer to the rule by its
// package name, so every key a user may write is resolved through one
// index to the canonical rule ID.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // by ID
	index map[string]string // ID, name or alias -> ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		index: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID. The old rule's
// name stops resolving.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[rule.ID()]; ok && r.index[old.Name()] == old.ID() {
		delete(r.index, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.index[rule.ID()] = rule.ID()
	r.index[rule.Name()] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID. The alias is dangling
// until a rule with that ID is registered.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.rules[alias]; taken {
		return
	}
	r.index[alias] = ruleID
}

// GetByID returns the rule registered under id.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	return rule, ok
}

// Resolve returns the canonical ID and rule for a rule ID, name, or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[r.index[key]]
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns every registered rule sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.rules))
	for _, id := range slices.Sorted(maps.Keys(r.rules)) {
		out = append(out, r.rules[id])
	}
	return out
}

// DefaultRegistry holds the built-in rules, which register themselves
// from init in package rules.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
