package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// FormatSummaryOneLine renders the closing line of a text report, e.g.
//
//	5 issues (3 errors, 2 warnings) in 2 files, 1 skipped, 1 with syntax errors
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Pass.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", Plural(stats.FilesProcessed, "file"))))
	} else {
		head := Plural(stats.DiagnosticsTotal, "issue")
		if breakdown := s.severityBreakdown(stats.DiagnosticsBySeverity); breakdown != "" {
			head += " (" + breakdown + ")"
		}
		parts = append(parts, head+" in "+Plural(stats.FilesWithIssues, "file"))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Fail.Render(Plural(stats.FilesErrored, "file")+" failed"))
	}
	if stats.FilesWithSyntaxErrors > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d with syntax errors", stats.FilesWithSyntaxErrors)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// severityBreakdown renders non-zero severity counts, most severe first.
func (s *Styles) severityBreakdown(counts map[string]int) string {
	var parts []string
	for _, sev := range []config.Severity{config.SeverityError, config.SeverityWarning, config.SeverityInfo} {
		n := counts[string(sev)]
		if n == 0 {
			continue
		}
		label := Plural(n, string(sev))
		if sev == config.SeverityInfo {
			label = fmt.Sprintf("%d info", n)
		}
		parts = append(parts, s.Severity(sev).Render(label))
	}
	return strings.Join(parts, ", ")
}
