package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/tsdoclint/pkg/langdetect"
)

// declarationSuffix marks TypeScript declaration files.
const declarationSuffix = ".d.ts"

// discoverer collects the files selected by one set of Options.
type discoverer struct {
	opts       Options
	workDir    string
	extensions []string
	found      map[string]struct{}
	// walked holds the resolved directories already walked, so a symlink
	// cycle is entered once.
	walked map[string]struct{}
}

// Discover resolves opts.Paths against the working directory and returns
// the absolute, sorted, de-duplicated list of TypeScript files to lint.
//
// Directories are walked, skipping hidden and vendored subdirectories and
// anything matched by ExcludeGlobs. A file named explicitly only has to
// pass the extension, declaration-file and glob filters, so it is linted
// even when it sits in a directory a walk would skip.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		opts:       opts,
		workDir:    workDir,
		extensions: lowerAll(opts.effectiveExtensions()),
		found:      make(map[string]struct{}),
		walked:     make(map[string]struct{}),
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, arg); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(d.found))
	for path := range d.found {
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// add handles one command-line path.
func (d *discoverer) add(ctx context.Context, arg string) error {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", arg, err)
	}
	if !info.IsDir() {
		d.consider(path)
		return nil
	}
	if err := d.walk(ctx, path); err != nil {
		return fmt.Errorf("walk directory %s: %w", arg, err)
	}
	return nil
}

// walk visits root recursively. Symlinked directories are entered through
// their resolved target, and only when FollowSymlinks is set.
func (d *discoverer) walk(ctx context.Context, root string) error {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := d.walked[resolved]; done {
			return nil
		}
		d.walked[resolved] = struct{}{}
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != root && d.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, isDir, ok := resolveLink(path)
			if !ok {
				return nil
			}
			if isDir {
				if !d.opts.FollowSymlinks || d.skipDir(path, entry.Name()) {
					return nil
				}
				return d.walk(ctx, target)
			}
		}

		d.consider(path)
		return nil
	})
}

// skipDir reports whether a directory below the walk root is pruned.
func (d *discoverer) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel := d.rel(path)
	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return true
	}
	return !d.opts.IncludeVendored && langdetect.IsVendored(filepath.ToSlash(rel)+"/")
}

// consider records path when it passes the file filters.
func (d *discoverer) consider(path string) {
	if d.accepts(path) {
		d.found[path] = struct{}{}
	}
}

func (d *discoverer) accepts(path string) bool {
	lower := strings.ToLower(path)
	if !slices.Contains(d.extensions, filepath.Ext(lower)) {
		return false
	}
	if !d.opts.IncludeDeclarationFiles && strings.HasSuffix(lower, declarationSuffix) {
		return false
	}

	rel := d.rel(path)
	if matchesAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || matchesAny(rel, d.opts.IncludeGlobs)
}

// rel returns path relative to the working directory, or path itself when
// no relative form exists.
func (d *discoverer) rel(path string) string {
	if rel, err := filepath.Rel(d.workDir, path); err == nil {
		return rel
	}
	return path
}

// resolveLink follows a symlink. ok is false for broken or unreadable links,
// which discovery skips.
func resolveLink(path string) (target string, isDir, ok bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, false
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", false, false
	}
	return target, info.IsDir(), true
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a relative path against a doublestar pattern such as
// "*.ts", "dist/**" or "**/__generated__/**". A pattern with no "/" is also
// tried against the base name, so "*.test.ts" matches at any depth.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

// ValidateGlobs reports the first invalid pattern.
func ValidateGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}
