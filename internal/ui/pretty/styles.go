// Package pretty renders tsdoclint output for terminals.
//
// Every element goes through a lipgloss style. Plain styles render text
// unchanged, which is what piped output and tests see.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

// Values accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGrey   = "8"
)

// Styles holds the lipgloss styles for lint reports and command help.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Path is a file path in a report header.
	Path lipgloss.Style
	// Position is the line:col of a diagnostic.
	Position lipgloss.Style
	// Rule is the rule identifier in parentheses.
	Rule lipgloss.Style
	// MessageID tags a diagnostic with its violation kind.
	MessageID lipgloss.Style
	// Excerpt is the quoted source line under a diagnostic.
	Excerpt lipgloss.Style
	// Marker underlines the reported span in an excerpt.
	Marker lipgloss.Style

	Heading lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles returns the colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	paint := func(color string, bold bool) lipgloss.Style {
		style := lipgloss.NewStyle()
		if !colorEnabled {
			return style
		}
		if color != "" {
			style = style.Foreground(lipgloss.Color(color))
		}
		return style.Bold(bold)
	}

	return &Styles{
		Error:     paint(colorRed, true),
		Warning:   paint(colorYellow, true),
		Info:      paint(colorBlue, true),
		Path:      paint("", true),
		Position:  paint(colorGrey, false),
		Rule:      paint(colorGrey, false),
		MessageID: paint(colorCyan, false),
		Excerpt:   paint("", false),
		Marker:    paint(colorRed, true),
		Heading:   paint(colorYellow, true),
		Command:   paint(colorCyan, true),
		Flag:      paint(colorBlue, false),
		Pass:      paint(colorGreen, true),
		Fail:      paint(colorRed, true),
		Dim:       paint(colorGrey, false),
	}
}

// Severity returns the style for a diagnostic severity.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	default:
		return s.Info
	}
}

// IsColorEnabled reports whether output written to w should be colorized.
// In auto mode (and for unknown values) color is used only on a terminal
// and only when NO_COLOR is unset.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
