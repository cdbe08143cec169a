package lint

import "github.com/yaklabco/tsdoclint/pkg/tsast"

// DiagnosticBuilder assembles a Diagnostic for a rule. Severity is left to
// the engine, which applies the configured level.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic anchored at node. A nil node, or one
// detached from its file, leaves the path and position empty for the
// engine to fill in.
func NewDiagnostic(ruleID string, node *tsast.Node, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{diag: Diagnostic{RuleID: ruleID, Message: message}}
	if node == nil {
		return b
	}
	if node.File != nil {
		b.diag.FilePath = node.File.Path
	}
	return b.WithPosition(node.SourcePosition())
}

// WithMessageID sets the violation kind.
func (b *DiagnosticBuilder) WithMessageID(id string) *DiagnosticBuilder {
	b.diag.MessageID = id
	return b
}

// WithPosition re-anchors the diagnostic, e.g. on the offending comment
// instead of the declaration.
func (b *DiagnosticBuilder) WithPosition(pos tsast.SourcePosition) *DiagnosticBuilder {
	b.diag.StartLine, b.diag.StartColumn = pos.StartLine, pos.StartColumn
	b.diag.EndLine, b.diag.EndColumn = pos.EndLine, pos.EndColumn
	return b
}

// WithSuggestion attaches a fix hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
