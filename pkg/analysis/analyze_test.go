package analysis

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

func tsdocDiag(messageID string, sev config.Severity) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:    rules.TSDocRequiredID,
		RuleName:  rules.TSDocRequiredName,
		MessageID: messageID,
		Severity:  sev,
	}
}

func linted(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			linted("/repo/src/button.ts",
				tsdocDiag(rules.MsgMissingDocstring, config.SeverityError),
				tsdocDiag(rules.MsgMissingDocstring, config.SeverityError),
				tsdocDiag(rules.MsgInvalidCommentFormat, config.SeverityError),
			),
			linted("/repo/src/index.ts",
				tsdocDiag("tsdoc-undefined-tag", config.SeverityWarning),
				tsdocDiag(rules.MsgMissingDocstring, ""),
			),
			linted("/repo/src/clean.ts"),
			{Path: "/repo/src/gen.ts", Result: &lint.PipelineResult{Skipped: true, SkipReason: "generated"}},
			{Path: "/repo/src/locked.ts", Error: errors.New("permission denied")},
		},
	}
}

func TestAnalyze_NilResult(t *testing.T) {
	t.Parallel()

	report := Analyze(nil, Options{})
	require.NotNil(t, report)
	assert.False(t, report.Totals.HasIssues())
	assert.Empty(t, report.ByRule)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByMessage)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{RuleFormat: config.RuleFormatName})
	totals := report.Totals

	assert.True(t, totals.HasIssues())
	assert.Equal(t, 5, totals.Issues)
	assert.Equal(t, 3, totals.Errors)
	assert.Equal(t, 2, totals.Warnings, "unset severity counts as a warning")
	assert.Equal(t, 0, totals.Infos)
	assert.Equal(t, 3, totals.Files)
	assert.Equal(t, 2, totals.FilesWithIssues)
	assert.Equal(t, 1, totals.FilesSkipped)
	assert.Equal(t, 1, totals.FilesErrored)
	assert.Equal(t, map[rules.ViolationClass]int{
		rules.ClassUndocumented: 3,
		rules.ClassLineComment:  1,
		rules.ClassMalformed:    1,
	}, totals.ByClass)
}

func TestAnalyze_Groups(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), Options{RuleFormat: config.RuleFormatCombined, WorkingDir: "/repo"})

	button := filepath.Join("src", "button.ts")
	index := filepath.Join("src", "index.ts")

	assert.Equal(t, []Group{
		{Key: "TSD001/tsdoc-required", Issues: 5, Errors: 3, Warnings: 2, Files: []string{button, index}},
	}, report.ByRule)

	assert.Equal(t, []Group{
		{Key: button, Issues: 3, Errors: 3},
		{Key: index, Issues: 2, Warnings: 2},
	}, report.ByFile)

	assert.Equal(t, []Group{
		{Key: rules.MsgMissingDocstring, Rule: "TSD001/tsdoc-required", Issues: 3, Errors: 2, Warnings: 1, Files: []string{button, index}},
		{Key: rules.MsgInvalidCommentFormat, Rule: "TSD001/tsdoc-required", Issues: 1, Errors: 1, Files: []string{button}},
		{Key: "tsdoc-undefined-tag", Rule: "TSD001/tsdoc-required", Issues: 1, Warnings: 1, Files: []string{index}},
	}, report.ByMessage)
}

func TestAnalyze_ForeignRuleIsNotClassified(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		linted("a.ts", lint.Diagnostic{RuleID: "TSD900", RuleName: "custom-policy", Severity: config.SeverityInfo}),
	}}

	report := Analyze(result, Options{RuleFormat: config.RuleFormatID})
	assert.Equal(t, 1, report.Totals.Infos)
	assert.Empty(t, report.Totals.ByClass)
	require.Len(t, report.ByRule, 1)
	assert.Equal(t, "TSD900", report.ByRule[0].Key)
}

func TestAnalyze_SyntaxErrorsCounted(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		linted("broken.ts"),
	}}
	report := Analyze(result, Options{})
	assert.Equal(t, 0, report.Totals.FilesWithSyntaxErrors, "no snapshot means no recovered tree")
	assert.Equal(t, 1, report.Totals.Files)
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		workDir string
		want    string
	}{
		{name: "no working dir", path: "/repo/a.ts", want: "/repo/a.ts"},
		{name: "inside working dir", path: "/repo/src/a.ts", workDir: "/repo", want: filepath.Join("src", "a.ts")},
		{name: "relative path cannot be made relative", path: "a.ts", workDir: "/repo", want: "a.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DisplayPath(tt.path, tt.workDir))
		})
	}
}
