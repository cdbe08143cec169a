package lint

import (
	"context"

	"github.com/yaklabco/tsdoclint/pkg/config"
	"github.com/yaklabco/tsdoclint/pkg/tsast"
)

// RuleContext is what a rule sees of one file. The engine builds one per
// rule and file, so it carries its context.Context as a field.
type RuleContext struct {
	Ctx  context.Context
	File *tsast.FileSnapshot
	// Root is File.Root, or nil without a file.
	Root   *tsast.Node
	Config *config.Config
	// RuleConfig is the rule's own settings; nil when the config has none.
	RuleConfig *config.RuleConfig

	cache *NodeCache
}

// NewRuleContext returns a RuleContext for file. Any argument may be nil.
func NewRuleContext(ctx context.Context, file *tsast.FileSnapshot, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// NodesOfKind returns the nodes of one kind in pre-order. The slice is
// shared with other rules; do not modify it.
func (rc *RuleContext) NodesOfKind(kind tsast.NodeKind) []*tsast.Node {
	if rc.cache == nil {
		rc.cache = newNodeCache()
	}
	rc.cache.build(rc.Root)
	return rc.cache.OfKind(kind)
}

// Option returns the raw value of a rule option, or def when it is unset.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig != nil {
		if v, ok := rc.RuleConfig.Options[key]; ok {
			return v
		}
	}
	return def
}

// OptionString returns a string option. Unset or non-string values give def.
func (rc *RuleContext) OptionString(key, def string) string {
	return typedOption(rc, key, def)
}

// OptionBool returns a boolean option. Unset or non-boolean values give def.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return typedOption(rc, key, def)
}

func typedOption[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}
