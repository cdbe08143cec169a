// Package tsast provides the syntax snapshot used by tsdoclint rules.
// It defines a lossless, immutable view of a TypeScript file including:
// - FileSnapshot: the complete file representation
// - Token stream: code and comment tokens in source order
// - AST nodes: the declarations rules care about, with source ranges
package tsast

// FileSnapshot is an immutable, lossless view of a TypeScript file.
// It holds the raw content, line metadata, token stream, and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens holds every code and comment token in source order.
	// Whitespace between tokens is not represented.
	Tokens []Token

	// Root is the AST root node (Program).
	Root *Node

	// SyntaxErrors lists the ranges the parser could not make sense of.
	// Rules still run on files with syntax errors.
	SyntaxErrors []SourceRange
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not tokenize or parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// HasSyntaxErrors reports whether the parser recovered from errors.
func (f *FileSnapshot) HasSyntaxErrors() bool {
	return len(f.SyntaxErrors) > 0
}
