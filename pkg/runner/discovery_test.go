package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		opts  runner.Options
		want  []string
	}{
		{
			name:  "defaults to the working directory",
			files: []string{"index.ts"},
			want:  []string{"index.ts"},
		},
		{
			name:  "walks for TypeScript extensions only",
			files: []string{"readme.ts", "docs/guide.ts", "docs/api.tsx", "lib/a.mts", "lib/b.cts", "src/main.go", "notes.txt"},
			want:  []string{"docs/api.tsx", "docs/guide.ts", "lib/a.mts", "lib/b.cts", "readme.ts"},
		},
		{
			name:  "custom extensions",
			files: []string{"file.ts", "file.tsx", "file.vue"},
			opts:  runner.Options{Extensions: []string{".tsx", ".VUE"}},
			want:  []string{"file.tsx", "file.vue"},
		},
		{
			name:  "hidden files and directories are skipped",
			files: []string{"readme.ts", ".hidden.ts", ".git/config.ts", "docs/.secret.ts"},
			want:  []string{"readme.ts"},
		},
		{
			name:  "exclude globs prune directories",
			files: []string{"readme.ts", "dist/out.ts", "build/gen/x.ts", "docs/guide.ts"},
			opts:  runner.Options{ExcludeGlobs: []string{"dist/**", "build/**"}},
			want:  []string{"docs/guide.ts", "readme.ts"},
		},
		{
			name: "double-star and base-name excludes",
			files: []string{
				"src/a.ts",
				"src/__generated__/b.ts",
				"lib/deep/__generated__/c.ts",
				"lib/deep/d.test.ts",
			},
			opts: runner.Options{ExcludeGlobs: []string{"**/__generated__/**", "*.test.ts"}},
			want: []string{"src/a.ts"},
		},
		{
			name:  "include globs narrow the walk",
			files: []string{"readme.ts", "docs/guide.ts", "docs/api.ts", "src/readme.ts"},
			opts:  runner.Options{IncludeGlobs: []string{"docs/**"}},
			want:  []string{"docs/api.ts", "docs/guide.ts"},
		},
		{
			name:  "declaration files are skipped by default",
			files: []string{"index.ts", "types.d.ts", "globals.D.TS"},
			want:  []string{"index.ts"},
		},
		{
			name:  "declaration files on request",
			files: []string{"index.ts", "types.d.ts", "globals.D.TS"},
			opts:  runner.Options{IncludeDeclarationFiles: true},
			want:  []string{"globals.D.TS", "index.ts", "types.d.ts"},
		},
		{
			name:  "vendored directories are skipped",
			files: []string{"src/index.ts", "node_modules/lib/index.ts", "packages/app/node_modules/x/y.ts"},
			want:  []string{"src/index.ts"},
		},
		{
			name:  "vendored directories on request",
			files: []string{"src/index.ts", "node_modules/lib/index.ts", "packages/app/node_modules/x/y.ts"},
			opts:  runner.Options{IncludeVendored: true},
			want:  []string{"node_modules/lib/index.ts", "packages/app/node_modules/x/y.ts", "src/index.ts"},
		},
		{
			name:  "only the named directories",
			files: []string{"docs/readme.ts", "guides/readme.ts", "notes/readme.ts"},
			opts:  runner.Options{Paths: []string{"docs", "guides"}},
			want:  []string{"docs/readme.ts", "guides/readme.ts"},
		},
		{
			name:  "one file named several ways is listed once",
			files: []string{"readme.ts"},
			opts:  runner.Options{Paths: []string{"readme.ts", "./readme.ts", "readme.ts", "."}},
			want:  []string{"readme.ts"},
		},
		{
			name:  "explicit file inside a skipped directory",
			files: []string{"node_modules/lib/index.ts", ".config/setup.ts"},
			opts:  runner.Options{Paths: []string{"node_modules/lib/index.ts", ".config/setup.ts"}},
			want:  []string{".config/setup.ts", "node_modules/lib/index.ts"},
		},
		{
			name:  "explicit file still filtered by extension and globs",
			files: []string{"notes.txt", "gen/a.ts"},
			opts:  runner.Options{Paths: []string{"notes.txt", "gen/a.ts"}, ExcludeGlobs: []string{"gen/**"}},
			want:  []string{},
		},
		{
			name:  "results are sorted",
			files: []string{"z.ts", "a.ts", "m.ts", "b.ts"},
			want:  []string{"a.ts", "b.ts", "m.ts", "z.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tt.files...)

			opts := tt.opts
			opts.WorkingDir = dir
			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)

			assert.Equal(t, tt.want, relativeTo(t, dir, got))
		})
	}
}

func TestDiscover_AbsolutePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "src/a.ts")
	file := filepath.Join(dir, "src", "a.ts")

	got, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{file},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.ts")

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: dir,
	})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "stat missing")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "real/doc.ts")

	external := t.TempDir()
	writeTree(t, external, "external.ts")

	if err := os.Symlink(filepath.Join(dir, "real", "doc.ts"), filepath.Join(dir, "link.ts")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.ts"), filepath.Join(dir, "broken.ts")))

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.ts", "real/doc.ts"}, relativeTo(t, dir, got),
		"file links are linted, directory links are not followed, broken links are ignored")

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Contains(t, got, filepath.Join(resolved(t, external), "external.ts"))
}

func TestDiscover_SymlinkCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "src/a.ts")

	if err := os.Symlink(dir, filepath.Join(dir, "src", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts"}, relativeTo(t, dir, got))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{".ts", ".tsx", ".mts", ".cts"}, runner.DefaultExtensions())
}

func TestValidateGlobs(t *testing.T) {
	t.Parallel()

	require.NoError(t, runner.ValidateGlobs([]string{"**/*.ts", "dist/**", "*.d.ts"}))

	err := runner.ValidateGlobs([]string{"src/**", "src/[a-"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"src/[a-"`)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"dist/**"}
	cfg.Include = []string{"src/**"}
	cfg.Extensions = []string{"TS"}
	cfg.IncludeDeclarationFiles = true
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"src"})
	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, 3, opts.Jobs)
	assert.True(t, opts.IncludeDeclarationFiles)
	assert.Equal(t, []string{".ts"}, opts.Extensions)
	assert.Equal(t, []string{"dist/**"}, opts.ExcludeGlobs)
	assert.Equal(t, []string{"src/**"}, opts.IncludeGlobs)
	assert.True(t, opts.Pipeline.DetectLanguage)

	assert.Empty(t, runner.OptionsFromConfig(nil, nil).Extensions)
}

// writeTree creates the given slash-separated files under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\n"), 0o644))
	}
}

// relativeTo turns discovered paths back into slash-separated paths under dir.
func relativeTo(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func resolved(t *testing.T, path string) string {
	t.Helper()

	out, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return out
}
