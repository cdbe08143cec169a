package lint

import (
	"context"

	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

// Parser parses TypeScript content into a FileSnapshot.
//
// Implementations (e.g., parser/treesitter) provide the concrete parsing
// logic. They must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines, if documented as such,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw source bytes into a fully-populated FileSnapshot.
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - tsast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) == true
	//   - snapshot.Root != nil && snapshot.Root.Kind == tsast.NodeProgram
	//   - All nodes have node.File == snapshot
	//
	// Source with syntax errors is not an error: the recovered tree is
	// returned and the error ranges are listed in snapshot.SyntaxErrors.
	Parse(ctx context.Context, path string, content []byte) (*tsast.FileSnapshot, error)
}
