package rules

import "github.com/yaklabco/tsdoclint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .tsdoclint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack returns the default policy: TSD001 as an error, with
// Props interfaces exempt.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Documentation required on the exported surface; Props interfaces exempt",
		Rules: map[string]config.RuleConfig{
			"TSD001": withOptions(enabled("error"), map[string]any{
				OptExemptPropsInterfaces: true,
				OptExemptNameSubstring:   defaultExemptNameSubstring,
			}),
		},
	}
}

// StrictPack returns a pack with no exemptions.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every exported declaration documented, no Props exemption",
		Rules: map[string]config.RuleConfig{
			"TSD001": withOptions(enabled("error"), map[string]any{
				OptExemptPropsInterfaces: false,
			}),
		},
	}
}

// RelaxedPack returns a pack suited to adopting the rule on an existing
// codebase: findings are warnings.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: warnings only, Props interfaces exempt",
		Rules: map[string]config.RuleConfig{
			"TSD001": withOptions(enabled("warning"), map[string]any{
				OptExemptPropsInterfaces: true,
				OptExemptNameSubstring:   defaultExemptNameSubstring,
			}),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

func withOptions(rc config.RuleConfig, opts map[string]any) config.RuleConfig {
	rc.Options = opts
	return rc
}
