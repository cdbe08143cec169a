package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// ConfigPaths are the configuration files found for a working directory.
// An empty field means no such file exists.
type ConfigPaths struct {
	System   string // /etc/tsdoclint/config.yaml or %ProgramData%\tsdoclint
	User     string // $XDG_CONFIG_HOME/tsdoclint/config.yaml
	Project  string // nearest .tsdoclint.yml at or above the working directory
	Explicit string // --config
	// ESLint is an ESLint config in the working directory, the source of a
	// possible migration.
	ESLint string
}

const appDir = "tsdoclint"

//nolint:gochecknoglobals // read-only lookup tables
var (
	// Names are listed in order of preference.
	projectConfigNames = []string{
		".tsdoclint.yml", ".tsdoclint.yaml", ".tsdoclint.toml",
		"tsdoclint.yml", "tsdoclint.yaml", "tsdoclint.toml",
	}
	globalConfigNames = []string{"config.yaml", "config.yml", "config.toml"}
	eslintConfigNames = []string{
		".eslintrc.json", ".eslintrc", ".eslintrc.yaml", ".eslintrc.yml",
		".eslintrc.js", ".eslintrc.cjs", "eslint.config.js", "eslint.config.mjs",
	}
	// The upward project search stops in a directory holding one of these.
	vcsMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user, project and ESLint config files for
// workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), globalConfigNames),
		User:    firstFile(userConfigDir(), globalConfigNames),
		Project: project,
		ESLint:  FindESLintConfig(workDir),
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDir)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appDir)
}

// userConfigDir is empty when neither XDG_CONFIG_HOME nor a home directory
// is available.
func userConfigDir() string {
	root := os.Getenv("XDG_CONFIG_HOME")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, appDir)
}

// FindProjectConfig walks up from startDir (the working directory when
// empty) and returns the first project config file. The walk ends without a
// result at a VCS root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if path := firstFile(dir, projectConfigNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// FindESLintConfig returns the ESLint config file in dir, if any.
func FindESLintConfig(dir string) string {
	return firstFile(dir, eslintConfigNames)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// Config file formats.
const (
	FormatYAML       = "yaml"
	FormatTOML       = "toml"
	FormatJSON       = "json"
	FormatJavaScript = "javascript"
	FormatUnknown    = "unknown"
)

// DetectConfigFormat names the format of a config file from its extension.
// A bare ".eslintrc" is JSON.
func DetectConfigFormat(path string) string {
	if filepath.Base(path) == ".eslintrc" {
		return FormatJSON
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json", ".jsonc":
		return FormatJSON
	case ".js", ".cjs", ".mjs":
		return FormatJavaScript
	default:
		return FormatUnknown
	}
}
