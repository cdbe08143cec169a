package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/fsutil"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// errInitDeclined is returned when the user answers no to the overwrite prompt.
var errInitDeclined = errors.New("overwrite declined")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	rules  []string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new tsdoclint configuration file",
		Long: `Create a new .tsdoclint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
rules, change severities, and set rule options.

An existing file is only replaced with --force or after confirmation on an
interactive terminal.

Examples:
  tsdoclint init                      Create minimal .tsdoclint.yml
  tsdoclint init --full               Create full config with all rules documented
  tsdoclint init --format toml        Create .tsdoclint.toml instead
  tsdoclint init --output custom.yml  Write to a custom file path
  tsdoclint init --pack strict        Start from the strict rule pack`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(contextOf(cmd), cmd.InOrStdin(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml, toml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .tsdoclint.yml, .tsdoclint.toml or .tsdoclint.json)")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "Only include these rule IDs in a full template")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func defaultInitOutput(format string) string {
	switch format {
	case "toml":
		return ".tsdoclint.toml"
	case "json":
		return ".tsdoclint.json"
	default:
		return ".tsdoclint.yml"
	}
}

func runInit(ctx context.Context, in io.Reader, out io.Writer, flags *initFlags) error {
	logger := logging.NewInteractive(out, "info")

	switch flags.format {
	case "yaml", "toml", "json":
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml, toml or json", ErrInvalidUsage, flags.format)
	}

	full := flags.full
	var overrides map[string]config.RuleConfig
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("%w: unknown pack %q: must be one of %s",
				ErrInvalidUsage, flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		overrides = pack.Rules
		// Pack settings only show up in the full template.
		full = true
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultInitOutput(flags.format)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			ok, err := confirmOverwrite(in, out, outputPath)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("file %q already exists; use --force to overwrite: %w", outputPath, errInitDeclined)
			}
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         full,
		Format:       flags.format,
		IncludeRules: flags.rules,
		Overrides:    overrides,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	written, err := fsutil.WriteFile(ctx, absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !written {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.pack != "" {
		logger.Info("applied rule pack", "pack", flags.pack)
	} else if full {
		logger.Info("full template includes all rules with documentation")
	}
	if flags.format == "json" {
		logger.Info("JSON files are not discovered automatically; pass them with --config")
	}

	logger.Info("run 'tsdoclint rules' to see all available rules")

	return nil
}

// confirmOverwrite asks before replacing path. It only prompts when in is
// a terminal; otherwise it declines.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, nil
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
