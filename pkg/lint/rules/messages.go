package rules

import (
	"github.com/yaklabco/tsdoclint/pkg/tsdoc"
)

// Identity of the tsdoc-required rule.
const (
	TSDocRequiredID   = "TSD001"
	TSDocRequiredName = "tsdoc-required"
)

// Violation kinds reported by tsdoc-required in addition to the TSDoc
// grammar message IDs.
const (
	MsgMissingDocstring     = "missingDocstring"
	MsgInvalidCommentFormat = "invalidCommentFormat"
	MsgInvalidDocstring     = "invalidDocstring"
)

// ViolationClass groups message IDs by what the author has to fix.
type ViolationClass string

const (
	// ClassUndocumented: no comment precedes the declaration.
	ClassUndocumented ViolationClass = "undocumented"
	// ClassLineComment: the declaration is documented with a // comment.
	ClassLineComment ViolationClass = "line-comment"
	// ClassMalformed: a block comment exists but is not valid TSDoc.
	ClassMalformed ViolationClass = "malformed"
)

// ClassifyMessage returns the violation class of a tsdoc-required message ID.
// Grammar message IDs and unknown IDs are malformed comments.
func ClassifyMessage(messageID string) ViolationClass {
	switch messageID {
	case MsgMissingDocstring:
		return ClassUndocumented
	case MsgInvalidCommentFormat:
		return ClassLineComment
	default:
		return ClassMalformed
	}
}

// fixHints are attached to diagnostics as suggestions. Grammar messages
// already say what is wrong with the comment and carry no hint.
//
//nolint:gochecknoglobals // Read-only.
var fixHints = map[string]string{
	MsgMissingDocstring:     "add a /** ... */ comment directly above the declaration",
	MsgInvalidCommentFormat: "replace the // comment with a /** ... */ block",
}

// unformattedTextKey is the template placeholder filled with a grammar
// message's text.
const unformattedTextKey = "unformattedText"

// tsdocConfig is shared by every grammar-stage parse. It is never mutated.
//
//nolint:gochecknoglobals // Read-only after init.
var tsdocConfig = tsdoc.DefaultConfiguration()

// tsdocRequiredMessages maps every violation kind to its message template.
//
//nolint:gochecknoglobals // Read-only after init.
var tsdocRequiredMessages = buildMessages(tsdocConfig)

// TSDocTags returns the tags the grammar stage accepts, sorted by name.
func TSDocTags() []tsdoc.TagDefinition {
	return tsdocConfig.TagDefinitions()
}

func buildMessages(cfg *tsdoc.Configuration) map[string]string {
	ids := cfg.AllMessageIDs()

	messages := make(map[string]string, len(ids)+3)
	messages[MsgInvalidCommentFormat] = `TSDoc comments must be block style("/** ... */") not line ("// ...") style comments.`
	messages[MsgInvalidDocstring] = "Ensure docstring is a valid TSDoc comment."
	messages[MsgMissingDocstring] = "Ensure exported members are documented with a TSDoc-compatible comment."

	for _, id := range ids {
		messages[string(id)] = string(id) + ": {{" + unformattedTextKey + "}}"
	}
	return messages
}
