package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsdoclint/pkg/config"
)

// mockRule for testing.
type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                               { return m.id }
func (m *mockRule) Name() string                             { return m.name }
func (m *mockRule) Description() string                      { return "mock" }
func (m *mockRule) DefaultEnabled() bool                     { return true }
func (m *mockRule) DefaultSeverity() config.Severity         { return config.SeverityWarning }
func (m *mockRule) Tags() []string                           { return nil }
func (m *mockRule) Messages() map[string]string              { return nil }
func (m *mockRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }

func newTestRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "TSD001", name: "tsdoc-required"})
	reg.RegisterAlias("@guardian/eslint-tsdoc-required", "TSD001")
	return reg
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	reg.RegisterAlias("dangling", "TSD404")

	tests := []struct {
		name   string
		key    string
		wantID string
		wantOK bool
	}{
		{name: "by ID", key: "TSD001", wantID: "TSD001", wantOK: true},
		{name: "by name", key: "tsdoc-required", wantID: "TSD001", wantOK: true},
		{name: "by ESLint plugin name", key: "@guardian/eslint-tsdoc-required", wantID: "TSD001", wantOK: true},
		{name: "alias to unregistered rule", key: "dangling"},
		{name: "unknown key", key: "require-jsdoc"},
		{name: "empty key", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, rule, ok := reg.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if tt.wantOK {
				require.NotNil(t, rule)
				assert.Equal(t, tt.wantID, rule.ID())
			} else {
				assert.Nil(t, rule)
			}
		})
	}
}

func TestRegistry_AliasBecomesLiveOnRegister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.RegisterAlias("require-tsdoc", "TSD001")

	_, _, ok := reg.Resolve("require-tsdoc")
	assert.False(t, ok)

	reg.Register(&mockRule{id: "TSD001", name: "tsdoc-required"})
	id, _, ok := reg.Resolve("require-tsdoc")
	assert.True(t, ok)
	assert.Equal(t, "TSD001", id)
}

func TestRegistry_AliasCannotShadowID(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	reg.Register(&mockRule{id: "TSD002", name: "other"})
	reg.RegisterAlias("TSD002", "TSD001")

	id, _, ok := reg.Resolve("TSD002")
	assert.True(t, ok)
	assert.Equal(t, "TSD002", id)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "TSD001", name: "old-name"})
	reg.Register(&mockRule{id: "TSD001", name: "tsdoc-required"})

	got, ok := reg.GetByID("TSD001")
	require.True(t, ok)
	assert.Equal(t, "tsdoc-required", got.Name())
	assert.Len(t, reg.Rules(), 1)

	_, _, ok = reg.Resolve("old-name")
	assert.False(t, ok, "a replaced rule's name no longer resolves")
}

func TestRegistry_GetByID(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()

	got, ok := reg.GetByID("TSD001")
	require.True(t, ok)
	assert.Equal(t, "tsdoc-required", got.Name())

	_, ok = reg.GetByID("tsdoc-required")
	assert.False(t, ok, "names are not IDs")
}

func TestRegistry_RulesSortedByID(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "TSD002", name: "second"})
	reg.Register(&mockRule{id: "TSD001", name: "tsdoc-required"})

	rules := reg.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "TSD001", rules[0].ID())
	assert.Equal(t, "TSD002", rules[1].ID())
}
