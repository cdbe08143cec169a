package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

// formats lists every format in the order help text shows them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}

// ParseFormat parses a --format value. An empty value selects text.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	if f := Format(formatStr); f.IsValid() {
		return f, nil
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
