package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "TSD001", "tsdoc-required", "tsdoc-required"},
		{"id format", config.RuleFormatID, "TSD001", "tsdoc-required", "TSD001"},
		{"combined format", config.RuleFormatCombined, "TSD001", "tsdoc-required", "TSD001/tsdoc-required"},
		{"name format empty name", config.RuleFormatName, "TSD001", "", "TSD001"},
		{"default to name", config.RuleFormat(""), "TSD001", "tsdoc-required", "tsdoc-required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.False(t, cfg.IncludeDeclarationFiles)
	assert.Equal(t, config.DefaultExtensions, cfg.EffectiveExtensions())
}

func TestEffectiveExtensions(t *testing.T) {
	cfg := &config.Config{Extensions: []string{"ts", ".TSX"}}
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.EffectiveExtensions())
}
