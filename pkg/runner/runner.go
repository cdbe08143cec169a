package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files concurrently, at most opts.Jobs at a time
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
//
// A file that fails to process is recorded in its FileOutcome; it never
// stops the other files.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker writes only its own slot, so collection needs no lock
	// and the output order follows the sorted discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.processFile(groupCtx, path, opts)
			done[idx] = true
			return nil
		})
	}

	// Workers only return context errors.
	_ = group.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldJobs, jobs,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// processFile lints one file and records its outcome.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, opts.Pipeline)
	if err != nil {
		logger.Debug("file failed", logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	if pr.Skipped {
		logger.Debug("file skipped", logging.FieldReason, pr.SkipReason)
	}
	if pr.FileResult != nil {
		for ruleID, ruleErr := range pr.RuleErrors {
			logger.Warn("rule failed", logging.FieldRule, ruleID, logging.FieldError, ruleErr)
		}
	}
	return FileOutcome{Path: path, Result: pr}
}
