package lint

import (
	"maps"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use the New* constructors or struct literal with field names.
type BaseRule struct {
	id       string            // Unique identifier (e.g., "TSD001")
	name     string            // Human-readable name
	desc     string            // Detailed description
	tags     []string          // Categorization tags
	messages map[string]string // Message templates by message ID
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, messages map[string]string) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		messages: messages,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Messages returns a copy of the rule's message templates.
func (r *BaseRule) Messages() map[string]string {
	return maps.Clone(r.messages)
}

// Message returns the template for a message ID, or the ID itself.
func (r *BaseRule) Message(id string) string {
	if tmpl, ok := r.messages[id]; ok {
		return tmpl
	}
	return id
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no diagnostics.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
