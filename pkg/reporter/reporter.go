// Package reporter renders lint results as text, JSON, SARIF or a summary.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/tsdoclint/pkg/analysis"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

var _ Reporter = (*analyzedReporter)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for result and returns the number of
	// issues it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// analyzedReporter aggregates a result before handing it to a Renderer.
type analyzedReporter struct {
	renderer Renderer
	opts     analysis.Options
}

// Report implements Reporter.
func (a *analyzedReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return &analyzedReporter{
			renderer: NewSummaryRenderer(opts),
			opts:     analysis.Options{RuleFormat: opts.RuleFormat, WorkingDir: opts.WorkingDir},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
