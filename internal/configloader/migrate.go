package configloader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// MigrationResult is an ESLint config converted to tsdoclint.
type MigrationResult struct {
	Config     *config.Config
	Warnings   []string
	SourcePath string
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	// eslintRuleKeys name tsdoc-required in ESLint configs besides the
	// names and aliases the registry resolves.
	eslintRuleKeys = []string{
		"@guardian/tsdoc-required/tsdoc-required",
		"@guardian/tsdoc-required",
		"tsdoc-required/tsdoc-required",
	}
	// eslintLevels maps ESLint levels to severities; "" means off.
	eslintLevels = map[string]config.Severity{
		"off": "", "0": "",
		"warn": config.SeverityWarning, "1": config.SeverityWarning,
		"error": config.SeverityError, "2": config.SeverityError,
	}
)

// ConvertESLintConfig reads a JSON, JSONC or YAML ESLint config and converts
// its tsdoc-required level and ignorePatterns. Everything else is dropped,
// with a warning for overrides.
func ConvertESLintConfig(path string) (*MigrationResult, error) {
	if !CanMigrate(path) {
		return nil, fmt.Errorf("cannot convert %q: %s", path, GetMigrationWarning(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if DetectConfigFormat(path) == FormatJSON {
		if err := json.Unmarshal(jsoncToJSON(content), &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	result := &MigrationResult{SourcePath: path, Config: config.NewConfig()}
	warnf := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	if _, ok := raw["overrides"]; ok {
		warnf("'overrides' are not converted; use ignore and include patterns instead")
	}
	result.Config.Ignore = stringList(raw["ignorePatterns"])

	eslintRules, _ := raw["rules"].(map[string]any)
	for key, setting := range eslintRules {
		ruleID, ok := eslintRuleID(key)
		if !ok {
			continue
		}
		rc, err := ruleConfigFromESLint(setting)
		if err != nil {
			warnf("rule %q: %v; skipping", key, err)
			continue
		}
		result.Config.Rules[ruleID] = rc
	}
	if len(result.Config.Rules) == 0 {
		warnf("no tsdoc-required rule found; the converted config uses defaults")
	}
	return result, nil
}

func eslintRuleID(key string) (string, bool) {
	if slices.Contains(eslintRuleKeys, key) {
		key = "tsdoc-required"
	}
	id, _, ok := lint.DefaultRegistry.Resolve(key)
	return id, ok
}

// ruleConfigFromESLint converts a level ("off", "warn", "error", 0, 1, 2)
// or a [level, ...options] array. tsdoc-required has no ESLint options.
func ruleConfigFromESLint(setting any) (config.RuleConfig, error) {
	level := setting
	if list, ok := setting.([]any); ok {
		if len(list) == 0 {
			return config.RuleConfig{}, errors.New("empty rule setting")
		}
		level = list[0]
	}

	var name string
	switch v := level.(type) {
	case string:
		name = strings.ToLower(v)
	case int, float64:
		name = fmt.Sprint(v)
	default:
		return config.RuleConfig{}, fmt.Errorf("unsupported setting %T", level)
	}
	severity, ok := eslintLevels[name]
	if !ok {
		return config.RuleConfig{}, fmt.Errorf("unknown level %q", name)
	}

	enabled := severity != ""
	rc := config.RuleConfig{Enabled: &enabled}
	if enabled {
		s := string(severity)
		rc.Severity = &s
	}
	return rc, nil
}

// stringList keeps the string elements of a decoded list.
func stringList(value any) []string {
	items, _ := value.([]any)
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// jsoncToJSON removes // and /* */ comments and trailing commas outside
// strings. Line comments keep their newline so offsets in errors stay close.
func jsoncToJSON(src []byte) []byte {
	out := make([]byte, 0, len(src))
	comma := -1 // index in out of a comma that may turn out to be trailing

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			end := stringEnd(src, i)
			out = append(out, src[i:end]...)
			i = end - 1
			comma = -1
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return out
			}
			i += end + 3
		case c == '}' || c == ']':
			if comma >= 0 {
				out = append(out[:comma], out[comma+1:]...)
				comma = -1
			}
			out = append(out, c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			out = append(out, c)
		case c == ',':
			comma = len(out)
			out = append(out, c)
		default:
			comma = -1
			out = append(out, c)
		}
	}
	return out
}

// stringEnd returns the index just past the string literal starting at
// src[start], or len(src) when it is unterminated.
func stringEnd(src []byte, start int) int {
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(src)
}

// GenerateMigrationHeader is the comment written above a migrated config.
func GenerateMigrationHeader(sourcePath string) string {
	return "# tsdoclint configuration\n# Migrated from: " + filepath.Base(sourcePath) +
		"\n# See: https://github.com/yaklabco/tsdoclint\n"
}

// CanMigrate reports whether path is a declarative ESLint config.
// JavaScript configs would have to be executed.
func CanMigrate(path string) bool {
	return DetectConfigFormat(path) != FormatJavaScript
}

// GetMigrationWarning explains why path cannot be migrated, or returns "".
func GetMigrationWarning(path string) string {
	if CanMigrate(path) {
		return ""
	}
	return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
		"run 'tsdoclint init' to create a config instead", filepath.Base(path))
}
