package rules

import (
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewTSDocRequiredRule()) // TSD001
}

// RegisterLegacyAliases registers alias names that differ from the rule's
// canonical Name(). They let configurations written for the ESLint plugin
// keep working:
//   - "@guardian/eslint-tsdoc-required" -> TSD001 (canonical: "tsdoc-required").
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("@guardian/eslint-tsdoc-required", "TSD001")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return ruleInfos(lint.DefaultRegistry)
	}
}
