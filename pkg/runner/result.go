package runner

import (
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// diagnostics returns the file's diagnostics, or nil when it was not linted.
func (o FileOutcome) diagnostics() []lint.Diagnostic {
	if o.Result == nil || o.Result.FileResult == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// Stats are the counters of a run.
//
// Every discovered file ends up in exactly one of FilesProcessed,
// FilesSkipped and FilesErrored. FilesWithSyntaxErrors and FilesWithIssues
// are subsets of FilesProcessed.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	// FilesSkipped counts files the pipeline declined: generated, vendored
	// or not TypeScript after all.
	FilesSkipped          int
	FilesErrored          int
	FilesWithSyntaxErrors int
	FilesWithIssues       int

	DiagnosticsTotal int
	// DiagnosticsBySeverity is keyed by severity name. Diagnostics without a
	// severity count as warnings.
	DiagnosticsBySeverity map[string]int

	// RuleErrors counts rules that failed on a file.
	RuleErrors int
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

func (s *Stats) add(outcome FileOutcome) {
	switch {
	case outcome.Error != nil:
		s.FilesErrored++
		return
	case outcome.Result == nil:
		return
	case outcome.Result.Skipped:
		s.FilesSkipped++
		return
	}

	s.FilesProcessed++
	fr := outcome.Result.FileResult
	if fr == nil {
		return
	}
	if fr.HasSyntaxErrors() {
		s.FilesWithSyntaxErrors++
	}
	s.RuleErrors += len(fr.RuleErrors)

	if len(fr.Diagnostics) > 0 {
		s.FilesWithIssues++
	}
	s.DiagnosticsTotal += len(fr.Diagnostics)
	for _, diag := range fr.Diagnostics {
		sev := diag.Severity
		if sev == "" {
			sev = config.SeverityWarning
		}
		s.DiagnosticsBySeverity[string(sev)]++
	}
}

// Result is the outcome of a run, with Files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
	// Errors are failures not tied to a single file.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic was produced.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic in file order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var diags []lint.Diagnostic
	for _, f := range r.Files {
		diags = append(diags, f.diagnostics()...)
	}
	return diags
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.add(outcome)
}
