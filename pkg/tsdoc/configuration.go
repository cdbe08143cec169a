// Package tsdoc parses TypeScript documentation comments according to the
// TSDoc grammar and reports every syntax problem as a Message.
//
// The parser never fails: malformed input, including input that is not a
// documentation comment at all, is described by messages in the log.
//
// Only the structural grammar is checked. The destination of {@link} and
// {@inheritDoc} is validated for emptiness and URL scheme but is not parsed
// as a declaration reference, so none of the TSDoc "tsdoc-reference-*"
// messages are ever emitted: {@link Foo.(bar:static)} and {@link Foo..bar}
// are both accepted.
package tsdoc

import (
	"strings"
)

// SyntaxKind describes how a tag may be written.
type SyntaxKind int

const (
	// SyntaxInlineTag tags are written inside braces: {@link Foo}.
	SyntaxInlineTag SyntaxKind = iota
	// SyntaxBlockTag tags start a section that runs to the next block tag.
	SyntaxBlockTag
	// SyntaxModifierTag tags carry no content: @public, @beta.
	SyntaxModifierTag
)

// String returns the TSDoc name of the syntax kind.
func (k SyntaxKind) String() string {
	switch k {
	case SyntaxInlineTag:
		return "inline"
	case SyntaxBlockTag:
		return "block"
	case SyntaxModifierTag:
		return "modifier"
	default:
		return "unknown"
	}
}

// TagDefinition describes a tag recognized by a Configuration.
type TagDefinition struct {
	// Name includes the leading "@", e.g. "@param".
	Name string

	// Syntax is the required syntax for the tag.
	Syntax SyntaxKind

	// AllowMultiple is false for tags that may appear once per comment.
	AllowMultiple bool
}

// Configuration holds the tag definitions used by a Parser.
type Configuration struct {
	tags map[string]TagDefinition
}

// standardTags are the tags defined by the TSDoc standard.
//
//nolint:gochecknoglobals // Read-only lookup table.
var standardTags = []TagDefinition{
	{Name: "@alpha", Syntax: SyntaxModifierTag},
	{Name: "@beta", Syntax: SyntaxModifierTag},
	{Name: "@decorator", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@defaultValue", Syntax: SyntaxBlockTag},
	{Name: "@deprecated", Syntax: SyntaxBlockTag},
	{Name: "@eventProperty", Syntax: SyntaxModifierTag},
	{Name: "@example", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@experimental", Syntax: SyntaxModifierTag},
	{Name: "@inheritDoc", Syntax: SyntaxInlineTag},
	{Name: "@internal", Syntax: SyntaxModifierTag},
	{Name: "@label", Syntax: SyntaxInlineTag},
	{Name: "@link", Syntax: SyntaxInlineTag, AllowMultiple: true},
	{Name: "@override", Syntax: SyntaxModifierTag},
	{Name: "@packageDocumentation", Syntax: SyntaxModifierTag},
	{Name: "@param", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@privateRemarks", Syntax: SyntaxBlockTag},
	{Name: "@public", Syntax: SyntaxModifierTag},
	{Name: "@readonly", Syntax: SyntaxModifierTag},
	{Name: "@remarks", Syntax: SyntaxBlockTag},
	{Name: "@returns", Syntax: SyntaxBlockTag},
	{Name: "@sealed", Syntax: SyntaxModifierTag},
	{Name: "@see", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@throws", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@typeParam", Syntax: SyntaxBlockTag, AllowMultiple: true},
	{Name: "@virtual", Syntax: SyntaxModifierTag},
}

// DefaultConfiguration returns a Configuration with the standard TSDoc tags.
func DefaultConfiguration() *Configuration {
	cfg := &Configuration{tags: make(map[string]TagDefinition, len(standardTags))}
	for _, def := range standardTags {
		cfg.tags[strings.ToUpper(def.Name)] = def
	}
	return cfg
}

// TryGetTagDefinition looks up a tag by name, case-insensitively.
// The name must include the leading "@".
func (c *Configuration) TryGetTagDefinition(name string) (TagDefinition, bool) {
	def, ok := c.tags[strings.ToUpper(name)]
	return def, ok
}

// TagDefinitions returns the configured tags sorted by name.
func (c *Configuration) TagDefinitions() []TagDefinition {
	defs := make([]TagDefinition, 0, len(c.tags))
	for _, def := range standardTags {
		if _, ok := c.tags[strings.ToUpper(def.Name)]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// AllMessageIDs returns every message identifier the parser can emit, sorted.
func (c *Configuration) AllMessageIDs() []MessageID {
	return sortedMessageIDs()
}
