package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

const excerptIndent = "    "

// FormatDiagnostic renders one diagnostic of a file report:
//
//	3:1  error  Ensure exported members are documented ...  (tsdoc-required) missingDocstring
//
// The message ID is omitted when the message already leads with it, as
// TSDoc grammar messages do. A non-empty excerpt is quoted underneath with
// the reported span marked.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, excerpt string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s  %s  %s  %s",
		s.Position.Render(fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn)),
		s.Severity(diag.Severity).Render(string(diag.Severity)),
		diag.Message,
		s.Rule.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)
	if diag.MessageID != "" && !strings.HasPrefix(diag.Message, diag.MessageID) {
		b.WriteString(" " + s.MessageID.Render(diag.MessageID))
	}
	b.WriteString("\n")

	if excerpt != "" {
		b.WriteString(s.FormatExcerpt(excerpt, diag))
	}
	if diag.Suggestion != "" {
		b.WriteString(excerptIndent + s.Dim.Render("hint:") + " " + diag.Suggestion + "\n")
	}
	return b.String()
}

// FormatExcerpt quotes a source line behind a line-number gutter and marks
// the diagnostic span under it. Spans that continue past the line are
// marked to its end.
func (s *Styles) FormatExcerpt(line string, diag *lint.Diagnostic) string {
	gutter := strconv.Itoa(diag.StartLine)
	blank := strings.Repeat(" ", len(gutter))

	out := excerptIndent + s.Dim.Render(gutter+" |") + " " + s.Excerpt.Render(line) + "\n"
	if diag.StartColumn < 1 {
		return out
	}

	width := len(line) - diag.StartColumn + 1
	if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
		width = diag.EndColumn - diag.StartColumn
	}
	width = max(width, 1)

	marker := "^" + strings.Repeat("~", width-1)
	return out + excerptIndent + s.Dim.Render(blank+" |") + " " +
		strings.Repeat(" ", diag.StartColumn-1) + s.Marker.Render(marker) + "\n"
}

// FormatFileHeader renders the heading of one file's diagnostics. Files
// linted from a tree with syntax errors are flagged, since their results
// come from error recovery.
func (s *Styles) FormatFileHeader(path string, issues int, recovered bool) string {
	header := s.Path.Render(path)

	notes := []string{Plural(issues, "issue")}
	if recovered {
		notes = append(notes, s.Warning.Render("recovered from syntax errors"))
	}
	return header + s.Dim.Render(" (") + strings.Join(notes, s.Dim.Render(", ")) + s.Dim.Render(")")
}

// Plural renders "1 issue" or "3 issues".
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
