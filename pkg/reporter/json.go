package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// jsonSchemaVersion changes when fields are removed or renamed.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one discovered file. A file that could not be read has
// only Path and Error; a skipped file has only Path, Language and the skip
// fields.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Skipped     bool             `json:"skipped,omitempty"`
	SkipReason  string           `json:"skipReason,omitempty"`
	SyntaxError bool             `json:"syntaxError,omitempty"`
	RuleErrors  []JSONRuleError  `json:"ruleErrors,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONRuleError is a rule that failed on a file.
type JSONRuleError struct {
	RuleID string `json:"ruleId"`
	Error  string `json:"error"`
}

// JSONDiagnostic is one diagnostic. Class is set for tsdoc-required only.
type JSONDiagnostic struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	MessageID   string `json:"messageId,omitempty"`
	Class       string `json:"class,omitempty"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// JSONSummary totals the run. FilesChecked counts every file that was not
// skipped, including files that failed to read.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByClass         map[string]int `json:"byClass,omitempty"`
}

// JSONReporter writes one JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := buildJSON(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return doc.Summary.TotalIssues, nil
}

func buildJSON(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return doc
	}

	for _, outcome := range result.Files {
		file := JSONFileResult{Path: outcome.Path, Diagnostics: []JSONDiagnostic{}}
		sum := &doc.Summary

		switch pr := outcome.Result; {
		case outcome.Error != nil:
			file.Error = outcome.Error.Error()
			sum.FilesErrored++
		case pr != nil && pr.Skipped:
			file.Language = pr.Language
			file.Skipped, file.SkipReason = true, pr.SkipReason
			sum.FilesSkipped++
			doc.Files = append(doc.Files, file)
			continue
		case pr != nil && pr.FileResult != nil:
			file.Language = pr.Language
			file.SyntaxError = pr.HasSyntaxErrors()
			file.RuleErrors = jsonRuleErrors(pr.RuleErrors)
			for _, diag := range pr.Diagnostics {
				jd := toJSONDiagnostic(diag)
				file.Diagnostics = append(file.Diagnostics, jd)
				sum.add(jd)
			}
		}

		if len(file.Diagnostics) > 0 {
			sum.FilesWithIssues++
		}
		sum.FilesChecked++
		doc.Files = append(doc.Files, file)
	}
	return doc
}

func toJSONDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		MessageID:   diag.MessageID,
		Severity:    string(cmp.Or(diag.Severity, config.SeverityWarning)),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
	}
	if diag.RuleID == rules.TSDocRequiredID {
		jd.Class = string(rules.ClassifyMessage(diag.MessageID))
	}
	return jd
}

func (s *JSONSummary) add(jd JSONDiagnostic) {
	s.TotalIssues++
	s.BySeverity[jd.Severity]++
	if jd.Class == "" {
		return
	}
	if s.ByClass == nil {
		s.ByClass = make(map[string]int)
	}
	s.ByClass[jd.Class]++
}

// jsonRuleErrors lists rule failures sorted by rule ID.
func jsonRuleErrors(errs map[string]error) []JSONRuleError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]JSONRuleError, 0, len(errs))
	for id, err := range errs {
		out = append(out, JSONRuleError{RuleID: id, Error: err.Error()})
	}
	slices.SortFunc(out, func(a, b JSONRuleError) int { return strings.Compare(a.RuleID, b.RuleID) })
	return out
}
