package tsast

import "strings"

// TokenKind classifies a token in the TypeScript source.
type TokenKind uint8

const (
	// TokCode is any non-comment leaf token: keywords, identifiers, punctuation.
	TokCode TokenKind = iota
	// TokComment is a line or block comment.
	TokComment
)

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	if k == TokComment {
		return "Comment"
	}
	return "Code"
}

// CommentStyle distinguishes "// ..." comments from "/* ... */" comments.
type CommentStyle uint8

const (
	// CommentNone marks code tokens.
	CommentNone CommentStyle = iota
	// CommentLine is a "// ..." comment.
	CommentLine
	// CommentBlock is a "/* ... */" comment, including "/** ... */".
	CommentBlock
)

// String returns "line", "block", or "" for code tokens.
func (s CommentStyle) String() string {
	switch s {
	case CommentLine:
		return "line"
	case CommentBlock:
		return "block"
	default:
		return ""
	}
}

// Token is a classified span of bytes in the source.
// Tokens are non-overlapping and sorted by StartOffset.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Type is the grammar's name for the token (e.g. "export", "identifier").
	Type string

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Style is set for comment tokens.
	Style CommentStyle
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool {
	return t.Kind == TokComment
}

// Comment is a comment token with its delimiters stripped from Value.
type Comment struct {
	// Style is line or block.
	Style CommentStyle

	// Value is the comment body: "//" is removed from line comments,
	// "/*" and "*/" from block comments.
	Value string

	// Range covers the whole comment including delimiters.
	Range SourceRange
}

// ValueStart returns the offset of the first byte of Value.
func (c Comment) ValueStart() int {
	return c.Range.StartOffset + len("/*")
}

// CommentFromToken builds a Comment for a comment token.
// It returns false for code tokens.
func CommentFromToken(tok Token, content []byte) (Comment, bool) {
	if !tok.IsComment() {
		return Comment{}, false
	}

	text := string(tok.Text(content))
	rng := SourceRange{StartOffset: tok.StartOffset, EndOffset: tok.EndOffset}

	if tok.Style == CommentLine {
		return Comment{Style: CommentLine, Value: strings.TrimPrefix(text, "//"), Range: rng}, true
	}

	value := strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	return Comment{Style: CommentBlock, Value: value, Range: rng}, true
}

// StyleOf classifies comment text by its opening delimiter.
func StyleOf(text []byte) CommentStyle {
	if len(text) >= 2 && text[0] == '/' && text[1] == '*' {
		return CommentBlock
	}
	return CommentLine
}

// ValidateTokens checks that tokens are sorted, non-overlapping and
// within [0, contentLen).
func ValidateTokens(tokens []Token, contentLen int) bool {
	prevEnd := 0
	for _, tok := range tokens {
		if tok.StartOffset < prevEnd || tok.EndOffset < tok.StartOffset || tok.EndOffset > contentLen {
			return false
		}
		prevEnd = tok.EndOffset
	}
	return true
}
