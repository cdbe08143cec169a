package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/fsutil"
	"github.com/yaklabco/tsdoclint/pkg/langdetect"
)

// Errors for files the pipeline could not lint.
var (
	ErrFileNotFound     = fsutil.ErrNotFound
	ErrPermissionDenied = fsutil.ErrPermissionDenied
	ErrParseFailure     = errors.New("parse failure")
)

// PipelineResult is the outcome for one file: either FileResult is set or
// Skipped is true.
type PipelineResult struct {
	*FileResult

	Path string

	// Language is the go-enry classification; empty when detection is off.
	Language string

	Skipped    bool
	SkipReason string
}

// PipelineOptions controls which files reach the engine.
type PipelineOptions struct {
	// DetectLanguage classifies each file with go-enry and skips anything
	// that is not hand-written TypeScript, such as Qt translation files
	// sharing the .ts extension and generated or vendored code.
	DetectLanguage bool
}

// DefaultPipelineOptions turns language detection on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{DetectLanguage: true}
}

// Pipeline reads, classifies and lints single files.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path from disk and lints it.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.ProcessContent(ctx, path, content, cfg, opts)
}

// ProcessContent lints content as though it had been read from path.
// Engine failures wrap ErrParseFailure; cancellation is passed through.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}

	ctx = logging.With(ctx, logging.FieldPath, path)

	result := &PipelineResult{Path: path}
	if opts.DetectLanguage {
		verdict := langdetect.Detect(path, content)
		result.Language = verdict.Language
		if !verdict.Lintable() {
			result.Skipped = true
			result.SkipReason = verdict.Reason()
			return result, nil
		}
	}

	fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
	switch {
	case err == nil:
		result.FileResult = fileResult
		return result, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
}
