package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.Clone())

	original := &config.Config{
		SeverityDefault: "warning",
		Rules: map[string]config.RuleConfig{
			"TSD001": {
				Enabled:  ptr(true),
				Severity: ptr("error"),
				Options: map[string]any{
					"exempt_name_substring": "Props",
					"nested":                map[string]any{"list": []any{"a", "b"}},
				},
			},
		},
		Ignore:                  []string{"dist/**"},
		Include:                 []string{"src/**"},
		Extensions:              []string{".ts"},
		IncludeDeclarationFiles: true,
		Format:                  config.FormatJSON,
		RuleFormat:              config.RuleFormatCombined,
		Jobs:                    4,
		EnableRules:             []string{"TSD001"},
		DisableRules:            []string{"tsdoc-required"},
	}

	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	// Mutating every reference type of the clone leaves the original alone.
	clone.Ignore[0] = "changed"
	clone.Include[0] = "changed"
	clone.Extensions[0] = ".tsx"
	clone.EnableRules[0] = "changed"
	clone.DisableRules[0] = "changed"
	rc := clone.Rules["TSD001"]
	*rc.Enabled = false
	*rc.Severity = "info"
	rc.Options["exempt_name_substring"] = "Options"
	rc.Options["nested"].(map[string]any)["list"].([]any)[0] = "z"
	clone.Rules["TSD002"] = config.RuleConfig{}

	assert.Equal(t, "dist/**", original.Ignore[0])
	assert.Equal(t, "src/**", original.Include[0])
	assert.Equal(t, ".ts", original.Extensions[0])
	assert.Equal(t, "TSD001", original.EnableRules[0])
	assert.Equal(t, "tsdoc-required", original.DisableRules[0])
	orig := original.Rules["TSD001"]
	assert.True(t, *orig.Enabled)
	assert.Equal(t, "error", *orig.Severity)
	assert.Equal(t, "Props", orig.Options["exempt_name_substring"])
	assert.Equal(t, []any{"a", "b"}, orig.Options["nested"].(map[string]any)["list"])
	assert.NotContains(t, original.Rules, "TSD002")
}

func TestConfigToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{SeverityDefault: "info"}

	tests := []struct {
		name   string
		header string
		prefix string
	}{
		{"no header", "", "severity_default: info\n"},
		{"header without newline", "# tsdoclint", "# tsdoclint\n\nseverity_default: info\n"},
		{"header with newline", "# tsdoclint\n", "# tsdoclint\n\nseverity_default: info\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := cfg.ToYAMLWithHeader(tt.header)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.prefix), string(data))

			back, err := config.FromYAML(data)
			require.NoError(t, err)
			assert.Equal(t, "info", back.SeverityDefault)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			SeverityDefault:         "warning",
			IncludeDeclarationFiles: true,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "severity_default: warning")
		assert.Contains(t, string(data), "include_declaration_files: true")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
severity_default: error
extensions: [".ts"]
rules:
  TSD001:
    enabled: true
    options:
      exempt_props_interfaces: false
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.SeverityDefault)
		assert.Equal(t, []string{".ts"}, cfg.Extensions)
		require.Contains(t, cfg.Rules, "TSD001")
		assert.True(t, *cfg.Rules["TSD001"].Enabled)
		assert.Equal(t, false, cfg.Rules["TSD001"].Options["exempt_props_interfaces"])
	})

	t.Run("initializes empty Rules map", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`severity_default: info`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("rules: [unclosed"))
		require.Error(t, err)
	})
}

func TestFromTOML(t *testing.T) {
	t.Run("parses valid TOML", func(t *testing.T) {
		data := []byte(`
severity_default = "error"
ignore = ["dist/**"]

[rules.TSD001]
enabled = false
severity = "info"

[rules.TSD001.options]
exempt_name_substring = "Options"
`)
		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.SeverityDefault)
		assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
		require.Contains(t, cfg.Rules, "TSD001")
		assert.False(t, *cfg.Rules["TSD001"].Enabled)
		assert.Equal(t, "info", *cfg.Rules["TSD001"].Severity)
		assert.Equal(t, "Options", cfg.Rules["TSD001"].Options["exempt_name_substring"])
	})

	t.Run("initializes empty Rules map", func(t *testing.T) {
		cfg, err := config.FromTOML([]byte(`severity_default = "info"`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		_, err := config.FromTOML([]byte("severity_default = "))
		require.Error(t, err)
	})

	t.Run("round trips through ToTOML", func(t *testing.T) {
		enabled := true
		cfg := config.NewConfig()
		cfg.Rules["TSD001"] = config.RuleConfig{Enabled: &enabled}
		data, err := cfg.ToTOML()
		require.NoError(t, err)

		back, err := config.FromTOML(data)
		require.NoError(t, err)
		require.Contains(t, back.Rules, "TSD001")
		assert.True(t, *back.Rules["TSD001"].Enabled)
		assert.Equal(t, cfg.Extensions, back.Extensions)
	})
}
