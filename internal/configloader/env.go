package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

const envVarPrefix = "TSDOCLINT_"

// envVar is one TSDOCLINT_<suffix> override of the config key field.
type envVar struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // read-only lookup table
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "severity_default", "Default severity: error, warning, or info",
		func(cfg *config.Config, v string) error { cfg.SeverityDefault = v; return nil }},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intSetter(func(cfg *config.Config, n int) { cfg.Jobs = n })},
	{"FORMAT", "format", "Output format: text, json, sarif, or summary",
		func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil }},
	{"RULE_FORMAT", "rule_format", "Rule identifier style: name, id, or combined",
		func(cfg *config.Config, v string) error { cfg.RuleFormat = config.RuleFormat(v); return nil }},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil }},
	{"INCLUDE", "include", "Comma-separated list of include patterns",
		func(cfg *config.Config, v string) error { cfg.Include = splitList(v); return nil }},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions",
		func(cfg *config.Config, v string) error { cfg.Extensions = splitList(v); return nil }},
	{"INCLUDE_DECLARATION_FILES", "include_declaration_files", "Lint .d.ts files: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.IncludeDeclarationFiles = b })},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		set(cfg, n)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies the TSDOCLINT_* variables that are set and non-empty.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnvVarName returns the variable that overrides the config key field,
// or "" when there is none.
func GetEnvVarName(field string) string {
	for _, ev := range envVars {
		if ev.field == field {
			return envVarPrefix + ev.suffix
		}
	}
	return ""
}

// ListEnvVars maps every supported variable to its help text.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envVarPrefix+ev.suffix] = ev.help
	}
	return vars
}
