package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

// FileResult is what the engine found in one file.
type FileResult struct {
	Snapshot *tsast.FileSnapshot

	// Diagnostics are grouped by rule, in resolution order, and within a
	// rule follow the order the rule reported them.
	Diagnostics []Diagnostic

	// RuleErrors maps the ID of every rule that failed to its error. A
	// failed rule contributes no diagnostics.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostic was produced.
func (fr *FileResult) HasIssues() bool { return len(fr.Diagnostics) > 0 }

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int { return len(fr.Diagnostics) }

// HasSyntaxErrors reports whether the diagnostics come from a tree the
// parser had to recover.
func (fr *FileResult) HasSyntaxErrors() bool {
	return fr.Snapshot != nil && fr.Snapshot.HasSyntaxErrors()
}

// Engine parses a file once and runs every enabled rule over the snapshot.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine returns an engine using parser for syntax and registry for rules.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile lints content as the file at path under cfg.
//
// A rule error is recorded in the result and does not stop the remaining
// rules. Only a parser failure or cancellation returns an error.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if snapshot.HasSyntaxErrors() {
		logSyntaxErrors(ctx, snapshot)
	}

	result := &FileResult{Snapshot: snapshot, RuleErrors: make(map[string]error)}
	cache := newNodeCache()

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
		ruleCtx.cache = cache

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}
		for i := range diags {
			stamp(&diags[i], rr, path)
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	return result, nil
}

// stamp applies the resolved severity and fills the identity fields a rule
// left empty.
func stamp(diag *Diagnostic, rr ResolvedRule, path string) {
	diag.Severity = rr.Severity
	if diag.FilePath == "" {
		diag.FilePath = path
	}
	if diag.RuleID == "" {
		diag.RuleID = rr.Rule.ID()
	}
	if diag.RuleName == "" {
		diag.RuleName = rr.Rule.Name()
	}
}

func logSyntaxErrors(ctx context.Context, snapshot *tsast.FileSnapshot) {
	first := snapshot.SyntaxErrors[0]
	line, col := snapshot.LineAt(first.StartOffset)
	logging.FromContext(ctx).Debug("syntax errors, linting the recovered tree",
		logging.FieldCount, len(snapshot.SyntaxErrors),
		logging.FieldLine, line,
		logging.FieldColumn, col,
	)
}
