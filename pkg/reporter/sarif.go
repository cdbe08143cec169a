package reporter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifToolURI   = "https://github.com/yaklabco/tsdoclint"
)

// SARIFOutput is a SARIF 2.1.0 log with a single run.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one invocation of tsdoclint.
type SARIFRun struct {
	Tool struct {
		Driver SARIFDriver `json:"driver"`
	} `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFDriver describes tsdoclint and the rules that reported.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor. MessageStrings holds the text of each
// fixed-text message ID the run reported for the rule.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFText            `json:"shortDescription"`
	MessageStrings   map[string]SARIFText `json:"messageStrings,omitempty"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFRuleConfig is a rule's default level.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFText is a plain-text message. ID refers to a rule's MessageStrings.
type SARIFText struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// SARIFResult is one diagnostic.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    SARIFText       `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFLocation is a file and, for results, the region within it.
type SARIFLocation struct {
	PhysicalLocation struct {
		ArtifactLocation struct {
			URI string `json:"uri"`
		} `json:"artifactLocation"`
		Region *SARIFRegion `json:"region,omitempty"`
	} `json:"physicalLocation"`
}

// SARIFRegion is a 1-based line and column span.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFInvocation reports whether every file was linted. Files that failed
// become error notifications.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a tool message about one file.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter writes a SARIF log for code-scanning integrations.
type SARIFReporter struct {
	opts     Options
	out      io.Writer
	registry *lint.Registry
}

// NewSARIFReporter creates a SARIF reporter that describes rules from the
// default registry.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer, registry: lint.DefaultRegistry}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := r.buildOutput(result)

	enc := json.NewEncoder(r.out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(doc.Runs[0].Results), nil
}

// sarifRun accumulates one run, giving each rule an index on first use.
type sarifRun struct {
	r         *SARIFReporter
	run       SARIFRun
	ruleIndex map[string]int
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	b := &sarifRun{r: r, ruleIndex: make(map[string]int)}
	b.run.Tool.Driver = SARIFDriver{
		Name:           "tsdoclint",
		Version:        r.toolVersion(),
		InformationURI: sarifToolURI,
		Rules:          []SARIFRule{},
	}
	b.run.Results = []SARIFResult{}

	if result != nil {
		invocation := SARIFInvocation{ExecutionSuccessful: true}
		for _, file := range result.Files {
			if file.Error != nil {
				invocation.ExecutionSuccessful = false
				invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
					Level:     "error",
					Message:   SARIFText{Text: file.Error.Error()},
					Locations: []SARIFLocation{r.location(file.Path, nil)},
				})
			}
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			for _, diag := range file.Result.Diagnostics {
				b.add(diag, file.Path)
			}
		}
		b.run.Invocations = []SARIFInvocation{invocation}
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{b.run}}
}

func (b *sarifRun) add(diag lint.Diagnostic, filePath string) {
	idx, seen := b.ruleIndex[diag.RuleID]
	if !seen {
		idx = len(b.run.Tool.Driver.Rules)
		b.ruleIndex[diag.RuleID] = idx
		b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, b.r.describeRule(diag))
	}
	rule := &b.run.Tool.Driver.Rules[idx]

	res := SARIFResult{
		RuleID:    diag.RuleID,
		RuleIndex: idx,
		Level:     severityToSARIFLevel(diag.Severity),
		Message:   SARIFText{Text: diag.Message},
		Locations: []SARIFLocation{b.r.location(cmp.Or(diag.FilePath, filePath), &SARIFRegion{
			StartLine:   diag.StartLine,
			StartColumn: diag.StartColumn,
			EndLine:     diag.EndLine,
			EndColumn:   diag.EndColumn,
		})},
	}
	if diag.MessageID != "" {
		res.Properties = map[string]any{"messageId": diag.MessageID}
		if template, ok := b.r.messageTemplate(diag); ok {
			if rule.MessageStrings == nil {
				rule.MessageStrings = make(map[string]SARIFText)
			}
			rule.MessageStrings[diag.MessageID] = SARIFText{Text: template}
			res.Message.ID = diag.MessageID
		}
	}
	if diag.Suggestion != "" {
		if res.Properties == nil {
			res.Properties = make(map[string]any)
		}
		res.Properties["suggestion"] = diag.Suggestion
	}
	b.run.Results = append(b.run.Results, res)
}

// describeRule takes name, description, level and tags from the registered
// rule, falling back to the diagnostic for unknown rules.
func (r *SARIFReporter) describeRule(diag lint.Diagnostic) SARIFRule {
	rule := SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFText{Text: diag.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
	}
	registered, ok := r.lookup(diag.RuleID)
	if !ok {
		return rule
	}

	rule.Name = registered.Name()
	rule.ShortDescription.Text = registered.Description()
	rule.DefaultConfig.Level = severityToSARIFLevel(registered.DefaultSeverity())
	if tags := registered.Tags(); len(tags) > 0 {
		rule.Properties = map[string]any{"tags": tags}
	}
	return rule
}

func (r *SARIFReporter) messageTemplate(diag lint.Diagnostic) (string, bool) {
	registered, ok := r.lookup(diag.RuleID)
	if !ok {
		return "", false
	}
	// Templates with {{name}} placeholders vary per result.
	template, ok := registered.Messages()[diag.MessageID]
	return template, ok && !strings.Contains(template, "{{")
}

func (r *SARIFReporter) lookup(ruleID string) (lint.Rule, bool) {
	if r.registry == nil {
		return nil, false
	}
	return r.registry.GetByID(ruleID)
}

// location builds a location whose URI is relative to the working directory
// when path lies below it, always with forward slashes.
func (r *SARIFReporter) location(path string, region *SARIFRegion) SARIFLocation {
	if r.opts.WorkingDir != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(r.opts.WorkingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	var loc SARIFLocation
	loc.PhysicalLocation.ArtifactLocation.URI = filepath.ToSlash(path)
	loc.PhysicalLocation.Region = region
	return loc
}

func (r *SARIFReporter) toolVersion() string {
	if r.opts.ToolVersion != "" {
		return r.opts.ToolVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
