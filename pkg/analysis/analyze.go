package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// Options configures Analyze.
type Options struct {
	// RuleFormat controls how rule identifiers appear as group keys.
	RuleFormat config.RuleFormat

	// WorkingDir makes file paths relative when set.
	WorkingDir string
}

// Analyze aggregates result in a single pass. Groups are ordered by issue
// count, largest first, then by key.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Totals: Totals{ByClass: make(map[rules.ViolationClass]int)}}
	if result == nil {
		return report
	}

	byRule := newGrouper()
	byFile := newGrouper()
	byMessage := newGrouper()

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			report.Totals.FilesErrored++
			continue
		case file.Result == nil:
			continue
		case file.Result.Skipped:
			report.Totals.FilesSkipped++
			continue
		}

		report.Totals.Files++
		if file.Result.FileResult == nil {
			continue
		}
		if file.Result.HasSyntaxErrors() {
			report.Totals.FilesWithSyntaxErrors++
		}
		if len(file.Result.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := DisplayPath(file.Path, opts.WorkingDir)
		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			rule := config.FormatRuleID(opts.RuleFormat, diag.RuleID, diag.RuleName)

			report.Totals.Issues++
			count(&report.Totals.Errors, &report.Totals.Warnings, &report.Totals.Infos, diag.Severity)
			if diag.RuleID == rules.TSDocRequiredID {
				report.Totals.ByClass[rules.ClassifyMessage(diag.MessageID)]++
			}

			byRule.add(rule, "", path, diag)
			byFile.add(path, "", "", diag)
			byMessage.add(rule+"\x00"+diag.MessageID, rule, path, diag)
		}
	}

	report.ByRule = byRule.sorted()
	report.ByFile = byFile.sorted()
	report.ByMessage = byMessage.sorted()
	for i := range report.ByMessage {
		msg := &report.ByMessage[i]
		msg.Key = strings.TrimPrefix(msg.Key, msg.Rule+"\x00")
	}

	return report
}

// grouper accumulates Groups by key.
type grouper struct {
	groups map[string]*Group
	files  map[string]map[string]struct{}
}

func newGrouper() *grouper {
	return &grouper{
		groups: make(map[string]*Group),
		files:  make(map[string]map[string]struct{}),
	}
}

// add counts diag under key. An empty path records no file.
func (g *grouper) add(key, rule, path string, diag *lint.Diagnostic) {
	group, ok := g.groups[key]
	if !ok {
		group = &Group{Key: key, Rule: rule}
		g.groups[key] = group
		g.files[key] = make(map[string]struct{})
	}
	group.Issues++
	count(&group.Errors, &group.Warnings, &group.Infos, diag.Severity)
	if path != "" {
		g.files[key][path] = struct{}{}
	}
}

func (g *grouper) sorted() []Group {
	out := make([]Group, 0, len(g.groups))
	for key, group := range g.groups {
		for path := range g.files[key] {
			group.Files = append(group.Files, path)
		}
		slices.Sort(group.Files)
		out = append(out, *group)
	}
	slices.SortFunc(out, func(a, b Group) int {
		return cmp.Or(cmp.Compare(b.Issues, a.Issues), cmp.Compare(a.Key, b.Key))
	})
	return out
}

// count increments the counter matching sev. Unset severities count as
// warnings.
func count(errors, warnings, infos *int, sev config.Severity) {
	switch sev {
	case config.SeverityError:
		*errors++
	case config.SeverityInfo:
		*infos++
	default:
		*warnings++
	}
}

// DisplayPath returns path relative to workDir when possible.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil {
		return rel
	}
	return path
}
