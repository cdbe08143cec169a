package reporter

import (
	"context"

	"github.com/yaklabco/tsdoclint/pkg/analysis"
)

// Renderer writes an aggregated report. Reporters that only need the
// aggregate views implement Renderer and are wrapped by New.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
