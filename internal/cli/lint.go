package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/tsdoclint/internal/configloader"
	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	_ "github.com/yaklabco/tsdoclint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/tsdoclint/pkg/parser/treesitter"
	"github.com/yaklabco/tsdoclint/pkg/reporter"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format                  string
	ruleFormat              string
	summaryOrder            string
	jobs                    int
	ignore                  []string
	include                 []string
	extensions              []string
	enable                  []string
	disable                 []string
	includeDeclarationFiles bool
	includeVendored         bool
	noDetect                bool
	strict                  bool
	noContext               bool
	compact                 bool
	cpuprofile              string
	memprofile              string
	trace                   string
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint TypeScript files for missing or invalid TSDoc",
		Long:  lintLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

const lintLongDescription = `Lint TypeScript files for missing or invalid TSDoc comments.

By default, lints all .ts, .tsx, .mts and .cts files in the current
directory and subdirectories. Declaration files (.d.ts) and node_modules
are skipped unless asked for. Specify paths to lint specific files or
directories.

Examples:
  tsdoclint lint                      # Lint current directory
  tsdoclint lint src/                 # Lint src directory
  tsdoclint lint src/index.ts         # Lint single file
  tsdoclint lint --format json        # Output as JSON for CI
  tsdoclint lint --format sarif       # Output SARIF for code scanning
  tsdoclint lint --ignore '**/*.test.ts'
  tsdoclint lint --strict             # Treat warnings as errors`

// envHelp lists the TSDOCLINT_* variables for the lint help text.
func envHelp() string {
	vars := configloader.ListEnvVars()

	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "  %-26s %s\n", name, vars[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) (err error) {
	ctx := contextOf(cmd)
	logger := logging.FromContext(ctx)

	stopProfiling, err := startProfiling(flags)
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}
	defer func() {
		if stopErr := stopProfiling(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := loadLintConfig(ctx, cmd, workDir, flags.toConfig(cmd.Flags()))
	if err != nil {
		return err
	}
	rep, err := newLintReporter(cmd, cfg, flags, workDir)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir
	opts.IncludeVendored = flags.includeVendored
	opts.Pipeline.DetectLanguage = !flags.noDetect
	logger.Debug("starting lint run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	engine := lint.NewEngine(treesitter.New(), lint.DefaultRegistry)
	result, err := runner.New(lint.NewPipeline(engine)).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}
	logRunStats(logger, result)

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &lintExitError{code: code}
	}
	return nil
}

// toConfig is the CLI layer of the config merge. Output and rule formats
// count only when given, so file settings are not masked by flag defaults.
func (f *lintFlags) toConfig(fs *pflag.FlagSet) *config.Config {
	cfg := &config.Config{
		Jobs:                    f.jobs,
		Ignore:                  f.ignore,
		Include:                 f.include,
		Extensions:              f.extensions,
		IncludeDeclarationFiles: f.includeDeclarationFiles,
		EnableRules:             f.enable,
		DisableRules:            f.disable,
	}
	if fs.Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if fs.Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	return cfg
}

func loadLintConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, errors.New("failed to load configuration"), err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	cfg := loaded.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loaded.LoadedFrom,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		"extensions", cfg.EffectiveExtensions(),
	)
	return cfg, nil
}

func newLintReporter(cmd *cobra.Command, cfg *config.Config, flags *lintFlags, workDir string) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, errors.Join(ErrInvalidUsage, err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		Compact:      flags.compact,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

func logRunStats(logger *log.Logger, result *runner.Result) {
	stats := result.Stats
	logger.Debug("lint run complete",
		logging.FieldFilesDiscovered, stats.FilesDiscovered,
		logging.FieldFilesProcessed, stats.FilesProcessed,
		logging.FieldFilesSkipped, stats.FilesSkipped,
		logging.FieldFilesWithIssues, stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, stats.DiagnosticsTotal,
	)
	for _, runErr := range result.Errors {
		logger.Warn("lint error", logging.FieldError, runErr)
	}
}

func (f *lintFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.format, "format", "text", "output format: text, json, sarif, summary")
	fs.StringVar(&f.ruleFormat, "rule-format", "name", "rule identifier format in output: name, id, or combined")
	fs.StringVar(&f.summaryOrder, "summary-order", "rules", "order of tables in summary output: rules, files")
	fs.IntVar(&f.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
	fs.StringSliceVar(&f.include, "include", nil, "only lint files matching these glob patterns")
	fs.StringSliceVar(&f.extensions, "ext", nil, "file extensions to lint (default .ts,.tsx,.mts,.cts)")
	fs.StringSliceVar(&f.enable, "enable", nil, "rule IDs or names to enable")
	fs.StringSliceVar(&f.disable, "disable", nil, "rule IDs or names to disable")
	fs.BoolVar(&f.includeDeclarationFiles, "include-dts", false, "also lint .d.ts declaration files")
	fs.BoolVar(&f.includeVendored, "include-vendored", false, "also lint files under node_modules")
	fs.BoolVar(&f.noDetect, "no-detect", false, "lint every matching file without language detection")
	fs.BoolVar(&f.strict, "strict", false, "treat warnings as errors for exit code")
	fs.BoolVar(&f.noContext, "no-context", false, "hide source line context in output")
	fs.BoolVar(&f.compact, "compact", false, "use compact output format")

	fs.StringVar(&f.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&f.memprofile, "memprofile", "", "write memory profile to file")
	fs.StringVar(&f.trace, "trace", "", "write execution trace to file")
}
