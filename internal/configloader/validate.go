package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// ValidationError is one invalid config value. Field is the key path, such
// as "rules.TSD001.severity" or "ignore[2]".
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult holds what Validate found. Errors stop loading, warnings
// are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	severities  = []string{"error", "warning", "info"}
	formats     = []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatSummary}
	ruleFormats = []config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}
)

// oneOf checks an optional enumerated value; empty means unset.
func oneOf[T ~string](r *ValidationResult, field, what string, value T, allowed []T) {
	if value == "" || slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	r.errorf(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

// Validate checks enumerated values, jobs, extensions, globs and each rule's
// severity and options. Unknown rules and unknown options are warnings.
// Findings are in a stable order.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	oneOf(result, "severity_default", "severity", cfg.SeverityDefault, severities)
	oneOf(result, "format", "format", cfg.Format, formats)
	oneOf(result, "rule_format", "rule format", cfg.RuleFormat, ruleFormats)

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	for i, ext := range cfg.Extensions {
		if strings.TrimSpace(ext) == "" || strings.ContainsAny(ext, `/\*`) {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q", ext)
		}
	}

	validateRules(cfg.Rules, result)
	validateGlobs("ignore", cfg.Ignore, result)
	validateGlobs("include", cfg.Include, result)
	return result
}

func validateRules(ruleCfgs map[string]config.RuleConfig, result *ValidationResult) {
	for _, key := range slices.Sorted(maps.Keys(ruleCfgs)) {
		rc := ruleCfgs[key]
		field := "rules." + key

		ruleID, _, known := lint.DefaultRegistry.Resolve(key)
		if !known {
			result.warnf(field, key, "unknown rule %q; it will be ignored", key)
			continue
		}
		if rc.Severity != nil {
			oneOf(result, field+".severity", "severity", *rc.Severity, severities)
		}

		for _, issue := range rules.ValidateOptions(ruleID, rc.Options) {
			add := result.errorf
			if issue.Unknown {
				add = result.warnf
			}
			add(field+".options."+issue.Key, rc.Options[issue.Key], "%s", issue.Message)
		}
	}
}

func validateGlobs(field string, patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if err := runner.ValidateGlobs([]string{pattern}); err != nil {
			result.errorf(fmt.Sprintf("%s[%d]", field, i), pattern, "%v", err)
		}
	}
}

// IsValidRuleFormat reports whether f is a known rule identifier style.
func IsValidRuleFormat(f config.RuleFormat) bool {
	return slices.Contains(ruleFormats, f)
}
