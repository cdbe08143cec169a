package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/tsdoclint/internal/ui/pretty"
	"github.com/yaklabco/tsdoclint/pkg/analysis"
	"github.com/yaklabco/tsdoclint/pkg/runner"
	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

// TextReporter writes diagnostics grouped under a header per file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Files without diagnostics print nothing.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (n int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Pass.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		n += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return n, nil
}

// reportFile writes one file's section and returns its diagnostic count.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := analysis.DisplayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.Path.Render(path), r.styles.Fail.Render(file.Error.Error()))
		return 0
	}
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diags := file.Result.Diagnostics
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags), file.Result.HasSyntaxErrors()))
	for i := range diags {
		var excerpt string
		if r.opts.ShowContext {
			excerpt = sourceLine(file.Result.Snapshot, diags[i].StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diags[i], excerpt, r.opts.RuleFormat))
	}
	fmt.Fprintln(r.bw)
	return len(diags)
}

// sourceLine returns the 1-based line of snapshot, or "" when unavailable.
func sourceLine(snapshot *tsast.FileSnapshot, line int) string {
	if snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(line))
}
