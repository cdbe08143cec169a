package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report. Defaults to stdout.
	Writer io.Writer

	// ErrorWriter receives errors (typically os.Stderr).
	ErrorWriter io.Writer

	Format Format

	// Color is the --color mode: auto, always or never.
	Color string

	// ShowContext quotes the declaration's source line under each
	// text diagnostic.
	ShowContext bool

	// ShowSummary closes text output with the run totals.
	ShowSummary bool

	// Compact minifies JSON and SARIF output.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// SummaryOrder picks whether the summary lists rules or files first.
	SummaryOrder config.SummaryOrder

	// ToolVersion is reported as the driver version in SARIF output.
	// Empty means the module build info is consulted.
	ToolVersion string

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns the options the lint command starts from.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}
