// Package runner provides multi-file linting orchestration.
package runner

import (
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered TypeScript. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs are doublestar patterns, relative to WorkingDir, that a
	// file must match. Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// IncludeDeclarationFiles lints ".d.ts" files, which are skipped by default.
	IncludeDeclarationFiles bool

	// IncludeVendored lints files under node_modules and other vendored paths.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Pipeline controls per-file processing.
	Pipeline lint.PipelineOptions
}

// OptionsFromConfig fills the discovery options carried by cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{
		Paths:    paths,
		Config:   cfg,
		Pipeline: lint.DefaultPipelineOptions(),
	}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.EffectiveExtensions()
	opts.IncludeGlobs = cfg.Include
	opts.ExcludeGlobs = cfg.Ignore
	opts.IncludeDeclarationFiles = cfg.IncludeDeclarationFiles
	opts.Jobs = cfg.Jobs
	return opts
}

// DefaultExtensions returns the default set of TypeScript file extensions.
func DefaultExtensions() []string {
	return append([]string(nil), config.DefaultExtensions...)
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
