package tsast

import "sort"

// CommentsBefore returns the comments between the nearest preceding code
// token and the start of node, in source order.
func (f *FileSnapshot) CommentsBefore(node *Node) []Comment {
	if node == nil {
		return nil
	}

	idx := f.tokenIndexBefore(node.StartOffset)

	var comments []Comment
	for ; idx >= 0; idx-- {
		tok := f.Tokens[idx]
		if !tok.IsComment() {
			break
		}
		if c, ok := CommentFromToken(tok, f.Content); ok {
			comments = append(comments, c)
		}
	}

	// Collected backwards.
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	return comments
}

// TokenBefore returns the nearest code token that ends at or before the
// start of node, skipping comments.
func (f *FileSnapshot) TokenBefore(node *Node) (Token, bool) {
	if node == nil {
		return Token{}, false
	}

	for idx := f.tokenIndexBefore(node.StartOffset); idx >= 0; idx-- {
		if !f.Tokens[idx].IsComment() {
			return f.Tokens[idx], true
		}
	}
	return Token{}, false
}

// PositionAt converts a byte offset to a 1-based line/column position.
// The second result is false when the offset is outside the file.
func (f *FileSnapshot) PositionAt(offset int) (Position, bool) {
	if offset < 0 || offset > len(f.Content) {
		return Position{}, false
	}
	line, col := f.LineAt(offset)
	pos := Position{Line: line, Column: col}
	return pos, pos.IsValid()
}

// tokenIndexBefore returns the index of the last token ending at or
// before offset, or -1.
func (f *FileSnapshot) tokenIndexBefore(offset int) int {
	idx := sort.Search(len(f.Tokens), func(i int) bool {
		return f.Tokens[i].EndOffset > offset
	})
	return idx - 1
}
