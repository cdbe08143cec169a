package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/tsdoclint/internal/ui/pretty"
	"github.com/yaklabco/tsdoclint/pkg/analysis"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
)

// maxPathWidth bounds the file column; longer paths keep their tail.
const maxPathWidth = 60

// SummaryRenderer prints aggregate tables instead of individual diagnostics.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		fmt.Fprintln(r.out, r.styles.Pass.Render("No issues found"))
		return nil
	}

	sections := []string{
		r.section("Rules Summary", []string{"Rule", "Count", "Errors", "Warnings", "Files"}, 1, groupRows(report.ByRule, true)),
		r.section("Files Summary", []string{"File", "Count", "Errors", "Warnings"}, 1, groupRows(report.ByFile, false)),
	}
	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		sections[0], sections[1] = sections[1], sections[0]
	}

	messageRows := make([][]string, 0, len(report.ByMessage))
	for _, msg := range report.ByMessage {
		id := msg.Key
		if id == "" {
			id = "(unspecified)"
		}
		messageRows = append(messageRows, []string{id, msg.Rule, strconv.Itoa(msg.Issues), strconv.Itoa(len(msg.Files))})
	}
	sections = append(sections,
		r.section("Messages Summary", []string{"Message", "Rule", "Count", "Files"}, 2, messageRows),
		r.totals(report.Totals),
	)

	_, err := io.WriteString(r.out, strings.Join(sections, "\n"))
	return err
}

// section renders a heading over a borderless table. The first keyCols
// columns are left-aligned labels; the rest are right-aligned counts.
func (r *SummaryRenderer) section(title string, headers []string, keyCols int, rows [][]string) string {
	numeric := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	key := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Dim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := numeric
			if col < keyCols {
				style = key
			}
			if row == table.HeaderRow {
				return style.Inherit(r.styles.Heading)
			}
			return style
		})

	return r.styles.Heading.Render(title) + "\n" + tbl.Render() + "\n"
}

// groupRows renders rule or file groups. withFiles adds the
// files-affected column.
func groupRows(groups []analysis.Group, withFiles bool) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := []string{
			trimPath(g.Key),
			strconv.Itoa(g.Issues),
			strconv.Itoa(g.Errors),
			strconv.Itoa(g.Warnings),
		}
		if withFiles {
			row = append(row, strconv.Itoa(len(g.Files)))
		}
		rows = append(rows, row)
	}
	return rows
}

// trimPath keeps the tail of keys longer than maxPathWidth.
func trimPath(key string) string {
	if len(key) <= maxPathWidth {
		return key
	}
	return "…" + key[len(key)-maxPathWidth+1:]
}

// totals renders the closing lines: issue counts, then what kind of
// documentation problems they are.
func (r *SummaryRenderer) totals(t analysis.Totals) string {
	line := pretty.Plural(t.Issues, "issue")

	var severities []string
	if t.Errors > 0 {
		severities = append(severities, r.styles.Error.Render(pretty.Plural(t.Errors, "error")))
	}
	if t.Warnings > 0 {
		severities = append(severities, r.styles.Warning.Render(pretty.Plural(t.Warnings, "warning")))
	}
	if len(severities) > 0 {
		line += " (" + strings.Join(severities, ", ") + ")"
	}
	line += fmt.Sprintf(" in %d of %d files", t.FilesWithIssues, t.Files)
	if t.FilesSkipped > 0 {
		line += r.styles.Dim.Render(fmt.Sprintf(", %d skipped", t.FilesSkipped))
	}
	if t.FilesErrored > 0 {
		line += r.styles.Fail.Render(fmt.Sprintf(", %d failed", t.FilesErrored))
	}

	out := r.styles.Heading.Render("Total: ") + line + "\n"

	var classes []string
	for _, class := range []rules.ViolationClass{rules.ClassUndocumented, rules.ClassLineComment, rules.ClassMalformed} {
		if n := t.ByClass[class]; n > 0 {
			classes = append(classes, fmt.Sprintf("%d %s", n, class))
		}
	}
	if len(classes) > 0 {
		out += r.styles.Heading.Render("Documentation: ") + strings.Join(classes, ", ") + "\n"
	}
	return out
}
