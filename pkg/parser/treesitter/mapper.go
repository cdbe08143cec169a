package treesitter

import (
	"strings"

	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

const commentType = "comment"

// declarationTypes are the statement types an export statement can export.
//
//nolint:gochecknoglobals // Read-only lookup table.
var declarationTypes = map[string]bool{
	"lexical_declaration":            true,
	"variable_declaration":           true,
	"function_declaration":           true,
	"generator_function_declaration": true,
	"function_signature":             true,
	"class_declaration":              true,
	"abstract_class_declaration":     true,
	"interface_declaration":          true,
	"type_alias_declaration":         true,
	"enum_declaration":               true,
	"ambient_declaration":            true,
	"module":                         true,
	"internal_module":                true,
	"import_alias":                   true,
	"export_clause":                  true,
}

// mapper converts a tree-sitter tree into tsast nodes and collects tokens
// in the same pass.
type mapper struct {
	content      []byte
	tokens       []tsast.Token
	syntaxErrors []tsast.SourceRange
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

func (m *mapper) mapProgram(root tree_sitter.Node) *tsast.Node {
	program := tsast.NewNode(tsast.NodeProgram, 0, len(m.content))
	program.Type = "program"
	if root.IsNull() {
		return program
	}
	m.mapChildren(root, program)
	return program
}

func (m *mapper) mapChildren(tsParent tree_sitter.Node, parent *tsast.Node) {
	for i := range tsParent.ChildCount() {
		child := tsParent.Child(i)
		if mapped := m.mapNode(child, parent); mapped != nil {
			tsast.AppendChild(parent, mapped)
		}
	}
}

// mapNode maps one tree-sitter node. Leaves become tokens and return nil.
func (m *mapper) mapNode(tsNode tree_sitter.Node, parent *tsast.Node) *tsast.Node {
	if tsNode.IsNull() {
		return nil
	}

	start, end := m.byteRange(tsNode)
	nodeType := tsNode.Type()

	if tsNode.IsError() || tsNode.IsMissing() {
		m.syntaxErrors = append(m.syntaxErrors, tsast.SourceRange{StartOffset: start, EndOffset: end})
	}

	if tsNode.ChildCount() == 0 {
		m.addToken(nodeType, start, end)
		return nil
	}

	node := tsast.NewNode(kindFor(nodeType, parent), start, end)
	node.Type = nodeType
	m.mapChildren(tsNode, node)

	switch node.Kind {
	case tsast.NodeExportStatement:
		node.Attrs = exportAttrs(node, m.tokensIn(start, end))
	case tsast.NodeInterfaceDeclaration:
		node.Name = m.declaredName(tsNode)
	}

	return node
}

// addToken records a leaf. Zero-width leaves are MISSING nodes inserted by
// error recovery and carry no source text.
func (m *mapper) addToken(nodeType string, start, end int) {
	if end <= start {
		return
	}

	tok := tsast.Token{
		Kind:        tsast.TokCode,
		Type:        nodeType,
		StartOffset: start,
		EndOffset:   end,
	}
	if nodeType == commentType {
		tok.Kind = tsast.TokComment
		tok.Style = tsast.StyleOf(m.content[start:end])
	}

	// Leaves arrive in source order; guard against overlap after recovery.
	if n := len(m.tokens); n > 0 && m.tokens[n-1].EndOffset > start {
		return
	}
	m.tokens = append(m.tokens, tok)
}

// tokensIn returns the tokens collected so far that start within [start, end).
func (m *mapper) tokensIn(start, end int) []tsast.Token {
	var out []tsast.Token
	for i := len(m.tokens) - 1; i >= 0 && m.tokens[i].StartOffset >= start; i-- {
		if m.tokens[i].StartOffset < end {
			out = append(out, m.tokens[i])
		}
	}
	// Reverse into source order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (m *mapper) declaredName(tsNode tree_sitter.Node) string {
	for i := range tsNode.ChildCount() {
		child := tsNode.Child(i)
		if child.Type() == "type_identifier" || child.Type() == "identifier" {
			start, end := m.byteRange(child)
			return string(m.content[start:end])
		}
	}
	return ""
}

func (m *mapper) byteRange(tsNode tree_sitter.Node) (int, int) {
	start := min(int(tsNode.StartByte()), len(m.content))
	end := min(int(tsNode.EndByte()), len(m.content))
	return start, max(start, end)
}

// kindFor maps a grammar node type to a tsast kind.
func kindFor(nodeType string, parent *tsast.Node) tsast.NodeKind {
	switch nodeType {
	case "export_statement":
		return tsast.NodeExportStatement
	case "interface_declaration":
		return tsast.NodeInterfaceDeclaration
	case "interface_body":
		return tsast.NodeInterfaceBody
	case "object_type":
		if parent != nil && parent.Kind == tsast.NodeInterfaceDeclaration {
			return tsast.NodeInterfaceBody
		}
		return tsast.NodeObjectType
	case "property_signature":
		return tsast.NodePropertySignature
	default:
		return tsast.NodeOther
	}
}

// exportAttrs classifies an export statement from the tokens that are its
// direct children and from its child nodes.
func exportAttrs(node *tsast.Node, tokens []tsast.Token) *tsast.Attrs {
	attrs := &tsast.Attrs{}

	for _, tok := range tokens {
		if tok.IsComment() || insideChild(node, tok.StartOffset) {
			continue
		}
		switch tok.Type {
		case "default":
			attrs.Default = true
		case "*":
			attrs.Wildcard = true
		case "=", "namespace":
			attrs.Assignment = true
		}
	}

	for child := node.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Type == "namespace_export":
			attrs.Wildcard = true
		case declarationTypes[child.Type] && attrs.Declaration == nil:
			attrs.Declaration = unwrapAmbient(child)
		}
	}

	return attrs
}

func insideChild(node *tsast.Node, offset int) bool {
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.SourceRange().Contains(offset) {
			return true
		}
	}
	return false
}

// unwrapAmbient returns the interface inside "declare interface X {}",
// otherwise the node itself.
func unwrapAmbient(node *tsast.Node) *tsast.Node {
	if node.Type != "ambient_declaration" {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Kind == tsast.NodeInterfaceDeclaration || strings.HasSuffix(child.Type, "_declaration") {
			return child
		}
	}
	return node
}
