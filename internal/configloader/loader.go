// Package configloader finds, reads, merges and validates tsdoclint
// configuration. Sources are layered system, user, project, explicit file,
// environment and finally CLI flags, each overriding the one before.
// A project that only has ESLint settings for tsdoc-required can have them
// converted on first run.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/fsutil"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

const (
	configFilePermissions = 0o644
	// migratedConfigName is written next to the ESLint config it came from.
	migratedConfigName = ".tsdoclint.yml"
)

// LoadOptions selects the configuration sources Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means os.Getwd.
	WorkingDir string
	// ExplicitPath is the --config file. It is layered above the project
	// config and disables the ESLint migration offer.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool
	IgnoreESLint        bool

	// NonInteractive turns the ESLint migration prompt into a warning.
	NonInteractive bool
	// Prompt answers the migration prompt. Nil means the terminal.
	Prompt io.ReadWriter

	// CLIConfig holds flag values and overrides every other source.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and how it was assembled.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths
	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string
	// Warnings are problems that did not stop loading.
	Warnings []string
	// MigrationPerformed is set when an ESLint config was converted.
	MigrationPerformed bool
}

func (r *LoadResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// configLayer is one file source, in precedence order.
type configLayer struct {
	name string
	path string
	skip bool
}

// Load resolves the configuration for a run. Precedence, highest first:
// CLI flags, TSDOCLINT_* variables, the explicit file, the nearest
// .tsdoclint.{yml,yaml,toml}, the user config under XDG_CONFIG_HOME, the
// system config, and the built-in defaults.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := discover(ctx, workDir, opts.ExplicitPath)
	if err != nil {
		return nil, err
	}
	result := &LoadResult{Paths: paths}

	if !opts.IgnoreESLint && !opts.IgnoreProjectConfig && opts.ExplicitPath == "" {
		migrated, err := offerESLintMigration(ctx, paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			if result.Paths, err = discover(ctx, workDir, ""); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := loadLayers(ctx, []configLayer{
		{"system", result.Paths.System, opts.IgnoreSystemConfig},
		{"user", result.Paths.User, opts.IgnoreUserConfig},
		{"project", result.Paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}, result)
	if err != nil {
		return nil, err
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func discover(ctx context.Context, workDir, explicit string) (*ConfigPaths, error) {
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if explicit != "" {
		paths.Explicit = explicit
	}
	return paths, nil
}

// loadLayers merges the layer files over the defaults.
func loadLayers(ctx context.Context, layers []configLayer, result *LoadResult) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	cfg := config.NewConfig()
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		layerCfg, err := LoadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.path)
	}
	return cfg, nil
}

// LoadConfigFile reads one config file. ".toml" files are TOML, anything
// else is YAML.
func LoadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	decode := config.FromYAML
	if DetectConfigFormat(path) == FormatTOML {
		decode = config.FromTOML
	}
	cfg, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// offerESLintMigration converts the project's ESLint tsdoc-required
// settings when there is no tsdoclint project config yet. Without a
// terminal it only warns.
func offerESLintMigration(
	ctx context.Context,
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
	workDir string,
) (bool, error) {
	if paths.ESLint == "" || paths.Project != "" {
		return false, nil
	}
	if !CanMigrate(paths.ESLint) {
		logging.FromContext(ctx).Debug("eslint config not migratable", logging.FieldConfig, paths.ESLint)
		return false, nil
	}

	migration, err := ConvertESLintConfig(paths.ESLint)
	if err != nil {
		result.warnf("read %s: %v", paths.ESLint, err)
		return false, nil
	}
	if len(migration.Config.Rules) == 0 {
		return false, nil
	}

	eslintName := filepath.Base(paths.ESLint)
	prompt := opts.Prompt
	if prompt == nil {
		if opts.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
			result.warnf("found tsdoc-required settings in %s but no %s; run 'tsdoclint migrate' to convert",
				eslintName, migratedConfigName)
			return false, nil
		}
		prompt = terminal{}
	}

	if ok, err := confirm(prompt, fmt.Sprintf("Found tsdoc-required settings in %s but no %s\nConvert them?",
		eslintName, migratedConfigName)); err != nil || !ok {
		return false, err
	}

	outputPath := filepath.Join(workDir, migratedConfigName)
	if err := WriteConfig(ctx, migration.Config, outputPath, GenerateMigrationHeader(paths.ESLint)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.Warnings = append(result.Warnings, migration.Warnings...)
	result.warnf("migrated %s to %s", eslintName, migratedConfigName)
	result.MigrationPerformed = true
	return true, nil
}

// terminal is stdin and stdout as one io.ReadWriter.
type terminal struct{}

func (terminal) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (terminal) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// confirm asks a yes/no question that defaults to yes.
func confirm(rw io.ReadWriter, question string) (bool, error) {
	if _, err := fmt.Fprint(rw, question+" [Y/n] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(rw).ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// RenderConfig encodes cfg for path, as TOML for ".toml" and YAML
// otherwise, preceded by header.
func RenderConfig(cfg *config.Config, path, header string) ([]byte, error) {
	if DetectConfigFormat(path) != FormatTOML {
		return cfg.ToYAMLWithHeader(header)
	}
	content, err := cfg.ToTOML()
	if err != nil || header == "" {
		return content, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), content...), nil
}

// WriteConfig atomically writes the RenderConfig form of cfg to path.
func WriteConfig(ctx context.Context, cfg *config.Config, path, header string) error {
	content, err := RenderConfig(cfg, path, header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := fsutil.WriteFile(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// normalizeRuleKeys rekeys cfg.Rules by canonical rule ID, so files may
// name rules by ID, name or alias. Unknown keys are kept for Validate to
// report. When two keys name the same rule, the one sorting last wins.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rules := make(map[string]config.RuleConfig, len(cfg.Rules))
	keyFor := make(map[string]string)
	for _, key := range keys {
		id, _, found := registry.Resolve(key)
		if !found {
			rules[key] = cfg.Rules[key]
			continue
		}
		if prev, dup := keyFor[id]; dup {
			result.warnf("duplicate rule configuration: %q and %q both refer to %s; using %q", prev, key, id, key)
		}
		keyFor[id] = key
		rules[id] = cfg.Rules[key]
	}
	cfg.Rules = rules
}
