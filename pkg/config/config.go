// Package config defines core configuration types for tsdoclint.
// These types are pure data structures with no dependency on how they are loaded.
package config

import (
	"slices"
	"strings"
)

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled" toml:"enabled"`
	Severity *string        `yaml:"severity" toml:"severity"`
	Options  map[string]any `yaml:"options" toml:"options"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "tsdoc-required"
	RuleFormatID       RuleFormat = "id"       // "TSD001"
	RuleFormatCombined RuleFormat = "combined" // "TSD001/tsdoc-required"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions linted when none are configured.
//
//nolint:gochecknoglobals // Read-only default list.
var DefaultExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// Config is the root configuration structure for tsdoclint.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	// Empty keeps each rule's built-in default.
	SeverityDefault string `yaml:"severity_default" toml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Include restricts discovery to files matching at least one glob pattern.
	Include []string `yaml:"include" toml:"include"`

	// Extensions lists the file extensions to lint, with leading dots.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// IncludeDeclarationFiles lints ".d.ts" files too.
	IncludeDeclarationFiles bool `yaml:"include_declaration_files" toml:"include_declaration_files"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Ignore:     nil,
		Extensions: append([]string(nil), DefaultExtensions...),
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// EffectiveExtensions returns the configured extensions, lower-cased and
// dot-prefixed, or the defaults when none are configured.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// Clone returns a deep copy of c, CLI-only fields included. Option values
// that are maps or slices are copied too.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.Include = slices.Clone(c.Include)
	out.Extensions = slices.Clone(c.Extensions)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)

	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for key, rc := range c.Rules {
			out.Rules[key] = rc.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of rc.
func (rc RuleConfig) Clone() RuleConfig {
	out := RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
	}
	if rc.Options != nil {
		out.Options = cloneValue(rc.Options).(map[string]any)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneValue copies the map and slice shapes produced by the YAML and TOML
// decoders. Scalars are returned as is.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	default:
		return v
	}
}
