package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsdoclint/internal/configloader"
	"github.com/yaklabco/tsdoclint/internal/logging"
)

type migrateFlags struct {
	force  bool
	dryRun bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [eslint-config]",
		Short: "Convert ESLint tsdoc-required settings to tsdoclint format",
		Long: `Convert the tsdoc-required level and ignorePatterns of an ESLint config
(.eslintrc, .eslintrc.json, .eslintrc.yml, .eslintrc.yaml) into a tsdoclint
config. Without an argument the ESLint config in the current directory is
used. JavaScript configs (.eslintrc.js, eslint.config.mjs) are not supported.

Examples:
  tsdoclint migrate
  tsdoclint migrate .eslintrc.json
  tsdoclint migrate --output .tsdoclint.toml
  tsdoclint migrate --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd, flags, input)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the converted config instead of writing it")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".tsdoclint.yml", "Output file (.yml, .yaml or .toml)")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags, input string) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr(), "info")

	input, err := eslintInput(input)
	if err != nil {
		return err
	}
	logger.Debug("converting", logging.FieldInput, input)

	output, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if _, err := os.Stat(output); err == nil && !flags.dryRun {
		if !flags.force {
			return fmt.Errorf("%w: output file %q already exists; use --force to overwrite", ErrInvalidUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	migration, err := configloader.ConvertESLintConfig(input)
	if err != nil {
		return fmt.Errorf("%w: convert configuration: %w", ErrConfig, err)
	}
	for _, w := range migration.Warnings {
		logger.Warn(w)
	}

	header := configloader.GenerateMigrationHeader(input)
	if flags.dryRun {
		content, err := configloader.RenderConfig(migration.Config, output, header)
		if err != nil {
			return fmt.Errorf("render configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}

	if err := configloader.WriteConfig(contextOf(cmd), migration.Config, output, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	logger.Info("migration complete", logging.FieldInput, input, logging.FieldOutput, flags.output)
	logger.Info("remove tsdoc-required from your ESLint config to avoid duplicate reports")
	return nil
}

// eslintInput checks the named ESLint config, or finds one in the working
// directory when none is named.
func eslintInput(input string) (string, error) {
	if input == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		if input = configloader.FindESLintConfig(cwd); input == "" {
			return "", fmt.Errorf("%w: no ESLint configuration file found in current directory", ErrInvalidUsage)
		}
	}

	if _, err := os.Stat(input); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: input file does not exist: %s", ErrInvalidUsage, input)
	}
	if !configloader.CanMigrate(input) {
		return "", fmt.Errorf("%w: migration not supported: %s", ErrInvalidUsage, configloader.GetMigrationWarning(input))
	}
	return input, nil
}
