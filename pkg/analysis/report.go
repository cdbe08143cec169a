// Package analysis aggregates a lint run into the views the summary
// report prints: diagnostics grouped per rule, per file and per message
// ID, plus run totals broken down by violation class.
package analysis

import "github.com/yaklabco/tsdoclint/pkg/lint/rules"

// Report is the aggregated view of one lint run.
type Report struct {
	ByRule    []Group
	ByFile    []Group
	ByMessage []Group
	Totals    Totals
}

// Group counts the diagnostics that share a key.
type Group struct {
	// Key is the formatted rule identifier, the display path, or the
	// message ID, depending on the view.
	Key string
	// Rule is the formatted rule identifier of a message group.
	Rule string

	Issues   int
	Errors   int
	Warnings int
	Infos    int

	// Files lists the distinct display paths involved, sorted. File
	// groups leave it empty.
	Files []string
}

// Totals are run-wide counts.
type Totals struct {
	Files                 int
	FilesWithIssues       int
	FilesSkipped          int
	FilesErrored          int
	FilesWithSyntaxErrors int

	Issues   int
	Errors   int
	Warnings int
	Infos    int

	// ByClass counts tsdoc-required diagnostics per violation class.
	ByClass map[rules.ViolationClass]int
}

// HasIssues reports whether any diagnostic was counted.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}
