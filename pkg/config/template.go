package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
	TemplateJSON = "json"
)

// commentWidth is where rule descriptions wrap in YAML templates.
const commentWidth = 70

// TemplateOptions selects what GenerateTemplate writes.
type TemplateOptions struct {
	// Full lists every rule with its defaults. Otherwise a YAML template is
	// all comments; TOML and JSON templates are always full.
	Full bool
	// Format is TemplateYAML (the default), TemplateTOML or TemplateJSON.
	Format string
	// IncludeRules limits the listed rules to these IDs.
	IncludeRules []string
	// Overrides replaces rule defaults by rule ID. Options are merged key by
	// key over the defaults.
	Overrides map[string]RuleConfig
}

// RuleInfo describes a rule for templates.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	Options     map[string]any // defaults
}

// RuleInfoProvider lists the registered rules. The rules package sets
// DefaultRuleInfoProvider, which keeps this package free of lint imports.
type RuleInfoProvider func() []RuleInfo

//nolint:gochecknoglobals // set once by the rules package
var DefaultRuleInfoProvider RuleInfoProvider

// DefaultTemplateHeader is the comment at the top of generated configs.
func DefaultTemplateHeader() string {
	return "# tsdoclint configuration\n# See: https://github.com/yaklabco/tsdoclint"
}

// templateDoc is the persisted subset of Config, in the order it is written.
type templateDoc struct {
	SeverityDefault         string                  `yaml:"severity_default" toml:"severity_default" json:"severity_default"`
	Extensions              []string                `yaml:"extensions" toml:"extensions" json:"extensions"`
	IncludeDeclarationFiles bool                    `yaml:"include_declaration_files" toml:"include_declaration_files" json:"include_declaration_files"`
	Ignore                  []string                `yaml:"ignore" toml:"ignore" json:"ignore"`
	Rules                   map[string]templateRule `yaml:"rules" toml:"rules" json:"rules"`
}

type templateRule struct {
	Enabled  bool           `yaml:"enabled" toml:"enabled" json:"enabled"`
	Severity string         `yaml:"severity" toml:"severity" json:"severity"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty"`
}

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := selectRules(opts.IncludeRules, opts.Overrides)
	doc := newTemplateDoc(rules)

	var buf bytes.Buffer
	switch opts.Format {
	case TemplateJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON template: %w", err)
		}
		return append(data, '\n'), nil
	case TemplateTOML:
		buf.WriteString(DefaultTemplateHeader() + "\n\n")
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encode TOML template: %w", err)
		}
	default:
		if !opts.Full {
			return []byte(DefaultTemplateHeader() + "\n" + minimalYAML), nil
		}
		buf.WriteString(DefaultTemplateHeader() + "\n#\n# Every rule is listed with its defaults; edit or delete entries as needed.\n\n")
		if err := writeCommentedYAML(&buf, doc, rules); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

const minimalYAML = `
# Severity for rules that set none: error, warning or info
# severity_default: warning

# extensions: [".ts", ".tsx", ".mts", ".cts"]
# include_declaration_files: false

# Glob patterns ("**" supported) to skip, and to restrict linting to
# ignore:
#   - "dist/**"
#   - "**/*.test.ts"
# include:
#   - "src/**"

# rules:
#   TSD001:
#     enabled: true
#     severity: error
#     options:
#       exempt_props_interfaces: true
#       exempt_name_substring: Props
`

//nolint:gochecknoglobals // read-only
var keyComments = map[string]string{
	"severity_default":          "# Severity for rules that set none: error, warning or info",
	"extensions":                "# File extensions to lint",
	"include_declaration_files": "# Lint .d.ts declaration files too",
	"ignore":                    "# Glob patterns to skip. An include: list restricts linting to matching files.",
	"rules":                     "# Per-rule settings, keyed by rule ID, name or alias",
}

func newTemplateDoc(rules []RuleInfo) *templateDoc {
	doc := &templateDoc{
		SeverityDefault: string(SeverityWarning),
		Extensions:      slices.Clone(DefaultExtensions),
		Ignore:          []string{"dist/**", "build/**", "coverage/**"},
		Rules:           make(map[string]templateRule, len(rules)),
	}
	for _, r := range rules {
		doc.Rules[r.ID] = templateRule{Enabled: r.Enabled, Severity: string(r.Severity), Options: r.Options}
	}
	return doc
}

// writeCommentedYAML encodes doc through a yaml.Node so each top-level key
// and each rule gets a head comment.
func writeCommentedYAML(buf *bytes.Buffer, doc *templateDoc, rules []RuleInfo) error {
	var root yaml.Node
	if err := root.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML template: %w", err)
	}

	byID := make(map[string]RuleInfo, len(rules))
	for _, r := range rules {
		byID[r.ID] = r
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		key.HeadComment = keyComments[key.Value]
		if key.Value != "rules" {
			continue
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			ruleKey := value.Content[j]
			ruleKey.HeadComment = ruleComment(byID[ruleKey.Value])
		}
	}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(&root); err != nil {
		return fmt.Errorf("encode YAML template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode YAML template: %w", err)
	}
	return nil
}

func ruleComment(r RuleInfo) string {
	lines := []string{"# " + r.ID + ": " + r.Name}
	for _, line := range wrapWords(r.Description, commentWidth) {
		lines = append(lines, "# "+line)
	}
	if len(r.Tags) > 0 {
		lines = append(lines, "# Tags: "+strings.Join(r.Tags, ", "))
	}
	return strings.Join(lines, "\n")
}

// wrapWords breaks text into lines of at most width bytes. A single longer
// word gets a line of its own.
func wrapWords(text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// selectRules returns the known rules with overrides applied, limited to
// include when it is non-empty, sorted by ID.
func selectRules(include []string, overrides map[string]RuleConfig) []RuleInfo {
	var selected []RuleInfo
	for _, r := range ruleInfos() {
		if len(include) > 0 && !slices.Contains(include, r.ID) {
			continue
		}
		if rc, ok := overrides[r.ID]; ok {
			r = r.withOverride(rc)
		}
		selected = append(selected, r)
	}
	slices.SortFunc(selected, func(a, b RuleInfo) int { return cmp.Compare(a.ID, b.ID) })
	return selected
}

func (r RuleInfo) withOverride(rc RuleConfig) RuleInfo {
	if rc.Enabled != nil {
		r.Enabled = *rc.Enabled
	}
	if rc.Severity != nil {
		r.Severity = Severity(*rc.Severity)
	}
	if len(rc.Options) > 0 {
		opts := make(map[string]any, len(r.Options)+len(rc.Options))
		maps.Copy(opts, r.Options)
		maps.Copy(opts, rc.Options)
		r.Options = opts
	}
	return r
}

func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	// The rules package is not linked in.
	return []RuleInfo{{
		ID:          "TSD001",
		Name:        "tsdoc-required",
		Description: "Exported declarations and exported interface properties must have a valid TSDoc comment",
		Enabled:     true,
		Severity:    SeverityError,
		Tags:        []string{"tsdoc", "documentation"},
		Options:     map[string]any{"exempt_props_interfaces": true, "exempt_name_substring": "Props"},
	}}
}
