package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsdoclint/internal/ui/pretty"
)

// helpTemplate lays out `tsdoclint <command> --help`. Headings, command
// names and flags are styled through the funcs from helpFuncs.
const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}{{if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}{{if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}{{end}}{{if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

// flagName matches the -x and --long-name tokens of a pflag usage line.
var flagName = regexp.MustCompile(`--?[A-Za-z0-9][-A-Za-z0-9]*`)

// applyHelp installs the styled help and usage output on cmd and, through
// cobra's inheritance, on every subcommand. Color follows the --color mode
// the same way lint output does.
func applyHelp(cmd *cobra.Command, colorMode string, w io.Writer) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	tmpl := template.Must(template.New("help").Funcs(helpFuncs(styles)).Parse(helpTemplate))

	render := func(c *cobra.Command) error {
		return tmpl.Execute(c.OutOrStdout(), c)
	}
	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading": func(s string) string { return styles.Heading.Render(s) },
		"command": func(s string) string { return styles.Command.Render(s) },
		"dim":     func(s string) string { return styles.Dim.Render(s) },
		"pad": func(s string, n int) string {
			return s + strings.Repeat(" ", max(n-len(s), 0))
		},
		"trimRight": func(s string) string {
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight(line, " \t")
			}
			return strings.Join(lines, "\n")
		},
		"flags": func(usages string) string {
			return styleFlagUsages(styles, usages)
		},
	}
}

// styleFlagUsages colors the flag names of pflag's usage block. Only the
// part before the description column is touched, so flag names quoted in
// descriptions stay plain.
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		split := descriptionColumn(line)
		lines[i] = flagName.ReplaceAllStringFunc(line[:split], func(name string) string {
			return styles.Flag.Render(name)
		}) + line[split:]
	}
	return strings.Join(lines, "\n")
}

// descriptionColumn returns where the description of a usage line starts:
// the first run of two or more spaces after the indentation.
func descriptionColumn(line string) int {
	body := strings.TrimLeft(line, " ")
	indent := len(line) - len(body)
	if idx := strings.Index(body, "  "); idx >= 0 {
		return indent + idx
	}
	return len(line)
}
