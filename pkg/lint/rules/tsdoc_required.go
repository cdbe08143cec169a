package rules

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/tsast"
	"github.com/yaklabco/tsdoclint/pkg/tsdoc"
)

// Option keys accepted by tsdoc-required.
const (
	OptExemptPropsInterfaces = "exempt_props_interfaces"
	OptExemptNameSubstring   = "exempt_name_substring"
)

const defaultExemptNameSubstring = "Props"

// SourceCode is the read-only view of a file the rule needs.
// *tsast.FileSnapshot implements it.
type SourceCode interface {
	// CommentsBefore returns the comments between the nearest preceding code
	// token and node, in source order.
	CommentsBefore(node *tsast.Node) []tsast.Comment

	// TokenBefore returns the nearest preceding code token, skipping comments.
	TokenBefore(node *tsast.Node) (tsast.Token, bool)

	// PositionAt maps a byte offset to a line and column.
	PositionAt(offset int) (tsast.Position, bool)
}

// Violation is one finding produced by the rule before it becomes a
// lint.Diagnostic.
type Violation struct {
	// Node is the declaration that was checked.
	Node *tsast.Node

	// Kind is a key of the rule's message table.
	Kind string

	// Data fills the message template placeholders.
	Data map[string]string

	// Position is the location inside the comment; when invalid the
	// violation is anchored at Node.
	Position tsast.SourcePosition
}

// Sink receives violations.
type Sink interface {
	Report(v Violation)
}

// DeclShape enumerates the declaration shapes that must be documented.
type DeclShape int

const (
	// ShapeInterfaceProperty is a property signature of an exported interface.
	ShapeInterfaceProperty DeclShape = iota + 1

	// ShapeExportedDeclaration is a named export statement.
	ShapeExportedDeclaration
)

// String returns a readable shape name.
func (s DeclShape) String() string {
	switch s {
	case ShapeInterfaceProperty:
		return "interface-property"
	case ShapeExportedDeclaration:
		return "exported-declaration"
	default:
		return "unknown"
	}
}

// Options holds the policy switches of tsdoc-required.
type Options struct {
	// ExemptPropsInterfaces skips exported interfaces whose name contains
	// ExemptNameSubstring. Their properties are still checked.
	ExemptPropsInterfaces bool

	// ExemptNameSubstring is matched case-sensitively.
	ExemptNameSubstring string
}

// DefaultOptions returns the default policy.
func DefaultOptions() Options {
	return Options{
		ExemptPropsInterfaces: true,
		ExemptNameSubstring:   defaultExemptNameSubstring,
	}
}

// Declaration is a node selected for checking.
type Declaration struct {
	Shape DeclShape
	Node  *tsast.Node
}

// selector pairs a node kind with the predicate that confirms the shape.
type selector struct {
	shape DeclShape
	kind  tsast.NodeKind
	match func(n *tsast.Node, opts Options) bool
}

// selectors is the rule's selector table. The kinds are disjoint, so each
// node matches at most one entry.
//
//nolint:gochecknoglobals // Read-only lookup table.
var selectors = [...]selector{
	{shape: ShapeInterfaceProperty, kind: tsast.NodePropertySignature, match: isExportedInterfaceProperty},
	{shape: ShapeExportedDeclaration, kind: tsast.NodeExportStatement, match: isCheckedExport},
}

func isExportedInterfaceProperty(n *tsast.Node, _ Options) bool {
	return lint.ExportedInterfaceOf(n) != nil
}

func isCheckedExport(n *tsast.Node, opts Options) bool {
	if !n.IsNamedExport() {
		return false
	}
	return !isExempt(n, opts)
}

// isExempt reports whether an export statement declares an interface whose
// name contains the exemption substring.
func isExempt(exportStmt *tsast.Node, opts Options) bool {
	if !opts.ExemptPropsInterfaces || opts.ExemptNameSubstring == "" {
		return false
	}
	decl := exportStmt.Declaration()
	return decl != nil &&
		decl.Kind == tsast.NodeInterfaceDeclaration &&
		strings.Contains(decl.Name, opts.ExemptNameSubstring)
}

// NodesOfKind returns the nodes of one kind in pre-order.
// (*lint.RuleContext).NodesOfKind satisfies it.
type NodesOfKind func(kind tsast.NodeKind) []*tsast.Node

// selectDeclarations returns the qualifying declarations in source order.
func selectDeclarations(nodesOfKind NodesOfKind, opts Options) []Declaration {
	var decls []Declaration
	for _, sel := range selectors {
		for _, n := range nodesOfKind(sel.kind) {
			if sel.match(n, opts) {
				decls = append(decls, Declaration{Shape: sel.shape, Node: n})
			}
		}
	}
	slices.SortStableFunc(decls, func(a, b Declaration) int {
		return cmp.Compare(a.Node.StartOffset, b.Node.StartOffset)
	})
	return decls
}

// locateComment finds the comment documenting node. It returns false when
// there is none.
//
// CommentsBefore already stops at the nearest code token, so the token
// check below only rejects a SourceCode that breaks that contract.
func locateComment(src SourceCode, node *tsast.Node) (tsast.Comment, bool) {
	comments := src.CommentsBefore(node)
	if len(comments) == 0 {
		return tsast.Comment{}, false
	}

	first := comments[0]
	if before, ok := src.TokenBefore(node); ok && before.EndOffset > first.Range.StartOffset {
		return tsast.Comment{}, false
	}
	return first, true
}

// commentClass is the outcome of the lexical stage.
type commentClass int

const (
	classBlock commentClass = iota
	classLineStyle
)

func classifyComment(c tsast.Comment) commentClass {
	if c.Style == tsast.CommentBlock {
		return classBlock
	}
	return classLineStyle
}

// validateComment parses a block comment and reports one violation per
// grammar message, located inside the comment.
func validateComment(src SourceCode, sink Sink, node *tsast.Node, c tsast.Comment) {
	text := "/*" + c.Value + "*/"
	pc := tsdoc.NewParser(tsdocConfig).ParseString(text)

	base := c.ValueStart() - len("/*")
	for _, msg := range pc.Log.Messages {
		v := Violation{
			Node: node,
			Kind: string(msg.MessageID),
			Data: map[string]string{unformattedTextKey: msg.UnformattedText},
		}
		if pos, ok := commentPosition(src, c.Range, base+msg.TextRange.Pos, base+msg.TextRange.End); ok {
			v.Position = pos
		}
		sink.Report(v)
	}
}

// commentPosition maps [start, end) into line/column form, keeping both
// ends inside rng.
func commentPosition(src SourceCode, rng tsast.SourceRange, start, end int) (tsast.SourcePosition, bool) {
	start = rng.Clamp(start)
	if start == rng.EndOffset && !rng.IsEmpty() {
		start--
	}
	end = max(rng.Clamp(end), start)

	from, ok := src.PositionAt(start)
	if !ok {
		return tsast.SourcePosition{}, false
	}
	to, ok := src.PositionAt(end)
	if !ok {
		return tsast.SourcePosition{}, false
	}
	return tsast.SourcePosition{
		StartLine:   from.Line,
		StartColumn: from.Column,
		EndLine:     to.Line,
		EndColumn:   to.Column,
	}, true
}

// checkDeclaration runs locate, classify and validate for one declaration.
// It reports either at most one structural violation or any number of
// grammar violations.
func checkDeclaration(src SourceCode, sink Sink, node *tsast.Node) {
	comment, ok := locateComment(src, node)
	if !ok {
		sink.Report(Violation{Node: node, Kind: MsgMissingDocstring})
		return
	}

	switch classifyComment(comment) {
	case classLineStyle:
		sink.Report(Violation{Node: node, Kind: MsgInvalidCommentFormat})
	case classBlock:
		validateComment(src, sink, node, comment)
	}
}

// TSDocRequiredRule requires a valid TSDoc comment on exported members.
type TSDocRequiredRule struct {
	lint.BaseRule
}

// NewTSDocRequiredRule creates the tsdoc-required rule.
func NewTSDocRequiredRule() *TSDocRequiredRule {
	return &TSDocRequiredRule{
		BaseRule: lint.NewBaseRule(
			TSDocRequiredID,
			TSDocRequiredName,
			"Required TSDoc documentation on all exported members.",
			[]string{"tsdoc", "documentation", "exports"},
			tsdocRequiredMessages,
		),
	}
}

// DefaultSeverity returns error.
func (r *TSDocRequiredRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Apply checks every exported declaration and exported interface property.
func (r *TSDocRequiredRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	opts := optionsFrom(ctx)
	sink := &diagnosticCollector{rule: r, path: ctx.File.Path}

	for _, decl := range selectDeclarations(ctx.NodesOfKind, opts) {
		if ctx.Cancelled() {
			return sink.diags, fmt.Errorf("tsdoc-required: %w", ctx.Ctx.Err())
		}
		checkDeclaration(ctx.File, sink, decl.Node)
	}

	return sink.diags, nil
}

func optionsFrom(ctx *lint.RuleContext) Options {
	def := DefaultOptions()
	return Options{
		ExemptPropsInterfaces: ctx.OptionBool(OptExemptPropsInterfaces, def.ExemptPropsInterfaces),
		ExemptNameSubstring:   ctx.OptionString(OptExemptNameSubstring, def.ExemptNameSubstring),
	}
}

// diagnosticCollector turns violations into diagnostics.
type diagnosticCollector struct {
	rule  *TSDocRequiredRule
	path  string
	diags []lint.Diagnostic
}

func (c *diagnosticCollector) Report(v Violation) {
	msg := lint.FormatMessage(c.rule.Message(v.Kind), v.Data)

	builder := lint.NewDiagnostic(c.rule.ID(), v.Node, msg).WithMessageID(v.Kind)
	if v.Position.IsValid() {
		builder = builder.WithPosition(v.Position)
	}
	if hint, ok := fixHints[v.Kind]; ok {
		builder = builder.WithSuggestion(hint)
	}

	diag := builder.Build()
	if diag.FilePath == "" {
		diag.FilePath = c.path
	}
	c.diags = append(c.diags, diag)
}
