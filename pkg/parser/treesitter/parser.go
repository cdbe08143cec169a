// Package treesitter provides a Parser implementation using tree-sitter
// TypeScript and TSX grammars.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	forest "github.com/alexaandru/go-sitter-forest"
	tree_sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

// Dialect names the grammar used for a file.
const (
	DialectTypeScript = "typescript"
	DialectTSX        = "tsx"
)

// ErrGrammarUnavailable is returned when a grammar cannot be loaded.
var ErrGrammarUnavailable = errors.New("grammar unavailable")

// Parser implements lint.Parser using tree-sitter.
// It is safe for concurrent use; each call borrows a pooled tree-sitter parser.
type Parser struct {
	pools map[string]*sync.Pool
}

// New creates a parser with the TypeScript and TSX grammars.
func New() *Parser {
	p := &Parser{pools: make(map[string]*sync.Pool, 2)}
	for _, dialect := range []string{DialectTypeScript, DialectTSX} {
		p.pools[dialect] = newParserPool(dialect)
	}
	return p
}

// DialectFor picks the grammar for a path by its extension.
func DialectFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return DialectTSX
	}
	return DialectTypeScript
}

// Parse converts raw TypeScript bytes into a fully-populated FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, and lines.
//  3. Parses content with the grammar selected by extension.
//  4. Builds the tsast.Node tree and collects tokens.
//  5. Sets File back-references throughout the tree.
//  6. Validates the token stream.
//
// Files with syntax errors still produce a snapshot; the error ranges are
// recorded in SyntaxErrors.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*tsast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := &tsast.FileSnapshot{
		Path:    path,
		Content: copyContent(content),
		Lines:   tsast.BuildLines(content),
	}

	dialect := DialectFor(path)
	pool := p.pools[dialect]
	tsParser, ok := pool.Get().(*tree_sitter.Parser)
	if !ok || tsParser == nil {
		return nil, fmt.Errorf("%w: %s", ErrGrammarUnavailable, dialect)
	}
	defer pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, snapshot.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(snapshot.Content)
	snapshot.Root = m.mapProgram(tree.RootNode())
	snapshot.Tokens = m.tokens
	snapshot.SyntaxErrors = m.syntaxErrors

	tsast.SetFile(snapshot.Root, snapshot)

	if !tsast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
		return nil, errors.New("invalid token stream: tokens overlap or exceed content")
	}

	return snapshot, nil
}

func newParserPool(dialect string) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			grammar := forest.GetLanguage(dialect)
			if grammar == nil {
				return nil
			}
			parser := tree_sitter.NewParser()
			if parser == nil || !parser.SetLanguage(grammar) {
				return nil
			}
			return parser
		},
	}
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
