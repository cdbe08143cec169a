package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/lint"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of tsdoclint.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewInteractive(cmd.OutOrStdout(), "info")

			logger.Info("tsdoclint",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				"go", runtime.Version(),
				"rules", len(lint.DefaultRegistry.Rules()),
			)
		},
	}

	return cmd
}
