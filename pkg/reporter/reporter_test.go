package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	_ "github.com/yaklabco/tsdoclint/pkg/lint/rules"
	"github.com/yaklabco/tsdoclint/pkg/reporter"
	"github.com/yaklabco/tsdoclint/pkg/runner"
	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "table was removed", input: "table", wantErr: true},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "diff is no longer supported", input: "diff", wantErr: true},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatJSON, true},
		{reporter.FormatSARIF, true},
		{reporter.FormatSummary, true},
		{reporter.Format("diff"), false},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			}

			rep, err := reporter.New(opts)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	result := &runner.Result{
		Files: []runner.FileOutcome{},
		Stats: runner.Stats{
			DiagnosticsBySeverity: make(map[string]int),
		},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTextReporter_WithDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		ShowContext: false,
	})

	result := createTestResult()

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "src/index.ts (2 issues)")
	assert.Contains(t, output, "(tsdoc-required)")
	assert.Contains(t, output, "2 issues (1 error, 1 warning) in 1 file\n")
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer: &buf,
		Color:  "never",
	})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Should still produce valid JSON
	var output reporter.JSONOutput
	err = json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", output.Version)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer: &buf,
		Color:  "never",
	})

	result := createTestResult()

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	err = json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", output.Version)
	assert.Len(t, output.Files, 1)
	assert.Len(t, output.Files[0].Diagnostics, 2)
	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{
		Writer:  &buf,
		Color:   "never",
		Compact: true,
	})

	result := createTestResult()

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	// Compact output should be a single line
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.False(t, opts.Compact)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
}

func TestSARIFReporter_IncludesRuleName(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	rep := reporter.NewSARIFReporter(opts)

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "src/index.ts",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					Diagnostics: []lint.Diagnostic{{
						RuleID:    "TSD001",
						RuleName:  "tsdoc-required",
						Message:   "Test",
						FilePath:  "src/index.ts",
						StartLine: 1,
					}},
				},
			},
		}},
	}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	// SARIF should contain the rule name in the rule's name field
	output := buf.String()
	assert.Contains(t, output, "tsdoc-required")
	assert.Contains(t, output, "TSD001")
}

func TestJSONReporter_IncludesRuleName(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = reporter.FormatJSON

	rep := reporter.NewJSONReporter(opts)

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "src/index.ts",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					Diagnostics: []lint.Diagnostic{{
						RuleID:    "TSD001",
						RuleName:  "tsdoc-required",
						Message:   "Test",
						FilePath:  "src/index.ts",
						StartLine: 1,
					}},
				},
			},
		}},
	}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	// JSON should contain both ruleId and ruleName
	assert.Contains(t, buf.String(), `"ruleId": "TSD001"`)
	assert.Contains(t, buf.String(), `"ruleName": "tsdoc-required"`)
}

func TestTextReporter_RuleFormat(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.RuleFormat = config.RuleFormatName
	opts.ShowContext = false
	opts.ShowSummary = false

	rep := reporter.NewTextReporter(opts)

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "src/index.ts",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					Diagnostics: []lint.Diagnostic{{
						RuleID:    "TSD001",
						RuleName:  "tsdoc-required",
						Message:   "Missing TSDoc comment",
						Severity:  config.SeverityWarning,
						FilePath:  "src/index.ts",
						StartLine: 1,
					}},
				},
			},
		}},
	}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tsdoc-required")
	assert.NotContains(t, buf.String(), "TSD001")
}

func TestJSONReporter_MessageIDAndSkippedFiles(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	result := createTestResult()
	result.Files = append(result.Files,
		runner.FileOutcome{
			Path: "i18n/app_de.ts",
			Result: &lint.PipelineResult{
				Path:       "i18n/app_de.ts",
				Skipped:    true,
				SkipReason: "not TypeScript (detected XML)",
				Language:   "XML",
			},
		},
		runner.FileOutcome{
			Path:  "broken.ts",
			Error: errors.New("read failed"),
		},
	)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 3)
	assert.Equal(t, "missingDocstring", output.Files[0].Diagnostics[0].MessageID)
	assert.Equal(t, "undocumented", output.Files[0].Diagnostics[0].Class)
	assert.Equal(t, "malformed", output.Files[0].Diagnostics[1].Class)
	assert.Equal(t, map[string]int{"undocumented": 1, "malformed": 1}, output.Summary.ByClass)

	skipped := output.Files[1]
	assert.True(t, skipped.Skipped)
	assert.Equal(t, "XML", skipped.Language)
	assert.Contains(t, skipped.SkipReason, "not TypeScript")
	assert.Empty(t, skipped.Diagnostics)

	assert.Equal(t, "read failed", output.Files[2].Error)
	assert.Equal(t, 1, output.Summary.FilesSkipped)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 2, output.Summary.FilesChecked, "skipped files are not counted as checked")
}

func TestJSONReporter_RuleErrorsSorted(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "a.ts",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{
					RuleErrors: map[string]error{
						"TSD002": errors.New("second"),
						"TSD001": errors.New("first"),
					},
				},
			},
		}},
	}

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files[0].RuleErrors, 2)
	assert.Equal(t, "TSD001", output.Files[0].RuleErrors[0].RuleID)
	assert.Equal(t, "first", output.Files[0].RuleErrors[0].Error)
}

func TestSARIFReporter_Document(t *testing.T) {
	var buf bytes.Buffer
	workDir := filepath.FromSlash("/work/project")
	rep := reporter.NewSARIFReporter(reporter.Options{
		Writer:      &buf,
		ToolVersion: "1.2.3",
		WorkingDir:  workDir,
	})

	absPath := filepath.Join(workDir, "src", "index.ts")
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: absPath,
				Result: &lint.PipelineResult{
					FileResult: &lint.FileResult{
						Diagnostics: []lint.Diagnostic{
							{
								RuleID: "TSD001", RuleName: "tsdoc-required", MessageID: "missingDocstring",
								Message:    "Ensure exported members are documented with a TSDoc-compatible comment.",
								Suggestion: "add a /** ... */ comment directly above the declaration",
								Severity:   config.SeverityError, FilePath: absPath, StartLine: 3, StartColumn: 1,
							},
							{
								RuleID: "TSD001", RuleName: "tsdoc-required", MessageID: "invalidCommentFormat",
								Message:  "TSDoc comments must be block style",
								Severity: config.SeverityError, FilePath: absPath, StartLine: 9, StartColumn: 1,
							},
						},
					},
				},
			},
			{Path: filepath.Join(workDir, "bad.ts"), Error: errors.New("read failed")},
		},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "tsdoclint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	// One rule entry, described from the registry rather than the first message.
	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "tsdoc-required", run.Tool.Driver.Rules[0].Name)
	assert.Equal(t, "Required TSDoc documentation on all exported members.", run.Tool.Driver.Rules[0].ShortDescription.Text)

	require.Len(t, run.Results, 2)
	assert.Equal(t, 0, run.Results[1].RuleIndex)
	assert.Equal(t, "src/index.ts", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "missingDocstring", run.Results[0].Properties["messageId"])
	assert.Equal(t, "add a /** ... */ comment directly above the declaration", run.Results[0].Properties["suggestion"])
	assert.Equal(t, "error", run.Results[0].Level)

	// Fixed-text messages are also published as rule message strings.
	assert.Equal(t, "missingDocstring", run.Results[0].Message.ID)
	assert.Equal(t, run.Results[0].Message.Text, run.Tool.Driver.Rules[0].MessageStrings["missingDocstring"].Text)
	assert.Contains(t, run.Tool.Driver.Rules[0].MessageStrings, "invalidCommentFormat")

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	require.Len(t, run.Invocations[0].ToolExecutionNotifications, 1)
	assert.Equal(t, "read failed", run.Invocations[0].ToolExecutionNotifications[0].Message.Text)
}

func TestSARIFReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewSARIFReporter(reporter.Options{Writer: &buf, ToolVersion: "dev"})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
	assert.Equal(t, "2.1.0", doc.Version)
}

func TestTextReporter_FileSections(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		RuleFormat:  config.RuleFormatName,
		WorkingDir:  filepath.FromSlash("/work"),
	})

	content := []byte("// keep\n\n\n\nexport const a = 1;\n\n\n\n\nexport @foo\n")
	path := filepath.Join(filepath.FromSlash("/work"), "src", "index.ts")

	result := createTestResult()
	result.Files[0].Path = path
	result.Files[0].Result.Snapshot = tsast.NewFileSnapshot(path, content)
	result.Files[0].Result.Snapshot.SyntaxErrors = []tsast.SourceRange{{}}
	result.Files = append(result.Files,
		runner.FileOutcome{Path: filepath.Join(filepath.FromSlash("/work"), "clean.ts"), Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
		runner.FileOutcome{Path: filepath.Join(filepath.FromSlash("/work"), "locked.ts"), Error: errors.New("permission denied")},
	)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, filepath.Join("src", "index.ts")+" (2 issues, recovered from syntax errors)\n")
	assert.Contains(t, output, "  5:1  error  ")
	assert.Contains(t, output, "(tsdoc-required) missingDocstring\n")
	assert.Contains(t, output, "    5 | export const a = 1;\n")
	assert.Contains(t, output, "   10 | export @foo\n")
	assert.Contains(t, output, "locked.ts: permission denied\n")
	assert.NotContains(t, output, "clean.ts", "files without diagnostics print nothing")
}

func TestTextReporter_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, err := rep.Report(ctx, createTestResult())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, count)
	assert.NotContains(t, buf.String(), "issues")
}

// createTestResult creates a test runner.Result with sample diagnostics.
func createTestResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "src/index.ts",
				Result: &lint.PipelineResult{
					FileResult: &lint.FileResult{
						Diagnostics: []lint.Diagnostic{
							{
								RuleID:      "TSD001",
								RuleName:    "tsdoc-required",
								MessageID:   "missingDocstring",
								Message:     "Ensure exported members are documented with a TSDoc-compatible comment.",
								Severity:    config.SeverityError,
								FilePath:    "src/index.ts",
								StartLine:   5,
								StartColumn: 1,
								EndLine:     5,
								EndColumn:   15,
							},
							{
								RuleID:      "TSD001",
								RuleName:    "tsdoc-required",
								MessageID:   "tsdoc-undefined-tag",
								Message:     "tsdoc-undefined-tag: The TSDoc tag \"@foo\" is not defined in this configuration",
								Severity:    config.SeverityWarning,
								FilePath:    "src/index.ts",
								StartLine:   10,
								StartColumn: 1,
								EndLine:     10,
								EndColumn:   5,
							},
						},
					},
				},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       1,
			FilesProcessed:        1,
			FilesWithIssues:       1,
			DiagnosticsTotal:      2,
			DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 1},
		},
	}
}
