package lint

import "github.com/yaklabco/tsdoclint/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// CLI enable/disable lists and config keys may name a rule by ID, name or alias.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Apply rule-specific config.
	for key, ruleCfg := range cfg.Rules {
		if !refersTo(registry, key, rule) {
			continue
		}
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		break
	}

	// CLI flags win over the config file.
	for _, key := range cfg.EnableRules {
		if refersTo(registry, key, rule) {
			rr.Enabled = true
			break
		}
	}
	for _, key := range cfg.DisableRules {
		if refersTo(registry, key, rule) {
			rr.Enabled = false
			break
		}
	}

	return rr
}

// refersTo reports whether key names rule by ID, name, or registered alias.
func refersTo(registry *Registry, key string, rule Rule) bool {
	if key == rule.ID() || key == rule.Name() {
		return true
	}
	if registry == nil {
		return false
	}
	id, _, ok := registry.Resolve(key)
	return ok && id == rule.ID()
}
