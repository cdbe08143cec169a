package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsdoclint/internal/configloader"
	"github.com/yaklabco/tsdoclint/internal/logging"
	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/lint"
	"github.com/yaklabco/tsdoclint/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	messages   bool
	tags       bool
}

const formatJSON = "json"

// tagInfo represents a TSDoc tag in JSON output.
type tagInfo struct {
	Name          string `json:"name"`
	Syntax        string `json:"syntax"`
	AllowMultiple bool   `json:"allowMultiple"`
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Tags        []string       `json:"tags,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	Messages    []string       `json:"messages,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, and configurable options.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleFormat := config.RuleFormat(flags.ruleFormat)
			if !configloader.IsValidRuleFormat(ruleFormat) {
				return fmt.Errorf("%w: invalid rule format %q: must be name, id or combined", ErrInvalidUsage, flags.ruleFormat)
			}

			if flags.tags {
				return outputTags(cmd.OutOrStdout(), flags.format)
			}

			registered := lint.DefaultRegistry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), registered, flags.messages)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout(), "info")

			if len(registered) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			for _, rule := range registered {
				ruleIdentifier := config.FormatRuleID(ruleFormat, rule.ID(), rule.Name())

				keyvals := []any{
					logging.FieldSeverity, rule.DefaultSeverity(),
					logging.FieldDescription, rule.Description(),
				}
				if opts := rules.DefaultOptionValues(rule.ID()); len(opts) > 0 {
					keyvals = append(keyvals, "options", formatOptions(opts))
				}
				logger.Info(ruleIdentifier, keyvals...)

				if flags.messages {
					for _, id := range messageIDs(rule) {
						logger.Info("  "+id, logging.FieldRule, rule.ID())
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.messages, "messages", false,
		"also list every message ID a rule can report")
	cmd.Flags().BoolVar(&flags.tags, "tags", false,
		"list the TSDoc tags accepted inside documentation comments instead of rules")

	return cmd
}

func messageIDs(rule lint.Rule) []string {
	msgs := rule.Messages()
	ids := make([]string, 0, len(msgs))
	for id := range msgs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func formatOptions(opts map[string]any) string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, opts[k]))
	}
	return strings.Join(parts, " ")
}

// outputTags lists the TSDoc tags known to the comment validator.
func outputTags(w io.Writer, format string) error {
	defs := rules.TSDocTags()

	if format == formatJSON {
		infos := make([]tagInfo, 0, len(defs))
		for _, def := range defs {
			infos = append(infos, tagInfo{Name: def.Name, Syntax: def.Syntax.String(), AllowMultiple: def.AllowMultiple})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encoding tags: %w", err)
		}
		return nil
	}

	logger := logging.NewInteractive(w, "info")
	logger.Info("supported TSDoc tags", "count", len(defs))
	for _, def := range defs {
		logger.Info(def.Name, "syntax", def.Syntax.String(), "multiple", def.AllowMultiple)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, registered []lint.Rule, withMessages bool) error {
	infos := make([]ruleInfo, 0, len(registered))
	for _, rule := range registered {
		info := ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
			Options:     rules.DefaultOptionValues(rule.ID()),
		}
		if withMessages {
			info.Messages = messageIDs(rule)
		}
		infos = append(infos, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
