package rules

import (
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// OptionKind is the expected type of a rule option value.
type OptionKind int

const (
	OptionBool OptionKind = iota
	OptionString
)

func (k OptionKind) String() string {
	if k == OptionBool {
		return "boolean"
	}
	return "string"
}

// OptionIssue describes a problem with one configured option.
type OptionIssue struct {
	Key     string
	Message string

	// Unknown is set when the key is not an option of the rule. Callers
	// treat it as a warning; type mismatches are errors.
	Unknown bool
}

// ruleOptionKinds lists the options each built-in rule accepts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ruleOptionKinds = map[string]map[string]OptionKind{
	"TSD001": {
		OptExemptPropsInterfaces: OptionBool,
		OptExemptNameSubstring:   OptionString,
	},
}

// ValidateOptions checks the options configured for ruleID. Rules without
// options accept nothing.
func ValidateOptions(ruleID string, opts map[string]any) []OptionIssue {
	kinds := ruleOptionKinds[ruleID]

	var issues []OptionIssue
	for _, key := range slices.Sorted(maps.Keys(opts)) {
		kind, known := kinds[key]
		if !known {
			issues = append(issues, OptionIssue{
				Key:     key,
				Message: fmt.Sprintf("unknown option %q for %s", key, ruleID),
				Unknown: true,
			})
			continue
		}

		var ok bool
		switch kind {
		case OptionBool:
			_, ok = opts[key].(bool)
		case OptionString:
			_, ok = opts[key].(string)
		}
		if !ok {
			issues = append(issues, OptionIssue{
				Key:     key,
				Message: fmt.Sprintf("option %q must be a %s, got %T", key, kind, opts[key]),
			})
		}
	}
	return issues
}

// DefaultOptionValues returns the default option values of ruleID.
func DefaultOptionValues(ruleID string) map[string]any {
	if ruleID != TSDocRequiredID {
		return nil
	}
	def := DefaultOptions()
	return map[string]any{
		OptExemptPropsInterfaces: def.ExemptPropsInterfaces,
		OptExemptNameSubstring:   def.ExemptNameSubstring,
	}
}

// ruleInfos describes the rules of registry for config templates.
func ruleInfos(registry *lint.Registry) []config.RuleInfo {
	rs := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rs))
	for _, r := range rs {
		infos = append(infos, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     r.DefaultEnabled(),
			Severity:    r.DefaultSeverity(),
			Tags:        r.Tags(),
			Options:     DefaultOptionValues(r.ID()),
		})
	}
	return infos
}
