package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal yaml", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# tsdoclint configuration")
		assert.Contains(t, string(data), "exempt_props_interfaces")
		assert.NotContains(t, string(data), "require_adjacent_comment")
	})

	t.Run("full yaml parses back", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		require.Contains(t, cfg.Rules, "TSD001")
		assert.Equal(t, "Props", cfg.Rules["TSD001"].Options["exempt_name_substring"])
		assert.Contains(t, cfg.Ignore, "dist/**")
	})

	t.Run("toml parses back", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML})
		require.NoError(t, err)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		require.Contains(t, cfg.Rules, "TSD001")
		assert.Equal(t, true, cfg.Rules["TSD001"].Options["exempt_props_interfaces"])
		assert.NotContains(t, cfg.Rules["TSD001"].Options, "require_adjacent_comment")
	})

	t.Run("json is valid", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateJSON})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Contains(t, doc, "rules")
		assert.Equal(t, false, doc["include_declaration_files"])
	})

	t.Run("full yaml documents keys and rules", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		out := string(data)
		assert.Contains(t, out, "# TSD001: tsdoc-required\n")
		assert.Contains(t, out, "# Tags: tsdoc, documentation\n")
		assert.Contains(t, out, "# Lint .d.ts declaration files too\n")
		assert.Contains(t, out, "exempt_name_substring: Props")
	})

	t.Run("json and toml honor rule filters", func(t *testing.T) {
		for _, format := range []string{config.TemplateJSON, config.TemplateTOML} {
			data, err := config.GenerateTemplate(config.TemplateOptions{
				Format:       format,
				IncludeRules: []string{"TSD999"},
			})
			require.NoError(t, err, format)
			assert.NotContains(t, string(data), "TSD001", format)
		}
	})

	t.Run("filters rules", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full:         true,
			IncludeRules: []string{"TSD999"},
		})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "TSD001:")
	})
}

func TestGenerateTemplate_Overrides(t *testing.T) {
	severity := "warning"
	data, err := config.GenerateTemplate(config.TemplateOptions{
		Full: true,
		Overrides: map[string]config.RuleConfig{
			"TSD001": {
				Severity: &severity,
				Options:  map[string]any{"exempt_props_interfaces": false},
			},
		},
	})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	rule := cfg.Rules["TSD001"]
	require.NotNil(t, rule.Severity)
	assert.Equal(t, "warning", *rule.Severity)
	assert.Equal(t, false, rule.Options["exempt_props_interfaces"])
	assert.Equal(t, "Props", rule.Options["exempt_name_substring"], "unlisted options keep their defaults")
}
