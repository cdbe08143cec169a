package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCommand_FlagDefaults(t *testing.T) {
	t.Parallel()

	lintCmd := subcommand(t, "lint")

	tests := []struct {
		flag      string
		def       string
		usageHint string
	}{
		{flag: "format", def: "text", usageHint: "summary"},
		{flag: "rule-format", def: "name", usageHint: "combined"},
		{flag: "summary-order", def: "rules", usageHint: "files"},
		{flag: "jobs", def: "0", usageHint: "auto"},
		{flag: "ext", def: "[]", usageHint: ".ts"},
		{flag: "include-dts", def: "false", usageHint: ".d.ts"},
		{flag: "include-vendored", def: "false", usageHint: "node_modules"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := lintCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.def, flag.DefValue)
			assert.Contains(t, flag.Usage, tt.usageHint)
		})
	}
}

func TestLintCommand_AcceptsPaths(t *testing.T) {
	t.Parallel()

	lintCmd := subcommand(t, "lint")
	assert.NoError(t, lintCmd.Args(lintCmd, []string{"index.ts", "button.tsx", "src/"}))
}

func TestLintCommand_HelpListsEnvironment(t *testing.T) {
	t.Parallel()

	lintCmd := subcommand(t, "lint")
	assert.Contains(t, lintCmd.Long, "Environment:")
	assert.Contains(t, lintCmd.Long, "TSDOCLINT_JOBS")
}
