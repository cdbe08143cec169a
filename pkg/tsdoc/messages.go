package tsdoc

import (
	"fmt"
	"slices"
)

// MessageID is the stable identifier of a parser diagnostic.
type MessageID string

// Message identifiers emitted by the parser.
const (
	MsgCommentMissingOpeningDelimiter MessageID = "tsdoc-comment-missing-opening-delimiter"
	MsgCommentMissingClosingDelimiter MessageID = "tsdoc-comment-missing-closing-delimiter"

	MsgUnnecessaryBackslash  MessageID = "tsdoc-unnecessary-backslash"
	MsgEscapeRightBrace      MessageID = "tsdoc-escape-right-brace"
	MsgEscapeGreaterThan     MessageID = "tsdoc-escape-greater-than"
	MsgAtSignInWord          MessageID = "tsdoc-at-sign-in-word"
	MsgAtSignWithoutTagName  MessageID = "tsdoc-at-sign-without-tag-name"
	MsgMalformedTagName      MessageID = "tsdoc-malformed-tag-name"
	MsgCharactersAfterBlock  MessageID = "tsdoc-characters-after-block-tag"
	MsgUndefinedTag          MessageID = "tsdoc-undefined-tag"
	MsgInlineTagMissingBrace MessageID = "tsdoc-inline-tag-missing-braces"
	MsgTagShouldNotHaveBrace MessageID = "tsdoc-tag-should-not-have-braces"

	MsgMalformedInlineTag     MessageID = "tsdoc-malformed-inline-tag"
	MsgCharactersAfterInline  MessageID = "tsdoc-characters-after-inline-tag"
	MsgLinkTagEmpty           MessageID = "tsdoc-link-tag-empty"
	MsgLinkTagInvalidURL      MessageID = "tsdoc-link-tag-invalid-url"
	MsgExtraInheritDocTag     MessageID = "tsdoc-extra-inheritdoc-tag"
	MsgInheritDocIncompatible MessageID = "tsdoc-inheritdoc-incompatible-tag"
	MsgInheritDocSummary      MessageID = "tsdoc-inheritdoc-incompatible-summary"

	MsgParamTagWithInvalidType         MessageID = "tsdoc-param-tag-with-invalid-type"
	MsgParamTagWithInvalidOptionalName MessageID = "tsdoc-param-tag-with-invalid-optional-name"
	MsgParamTagWithInvalidName         MessageID = "tsdoc-param-tag-with-invalid-name"
	MsgParamTagMissingHyphen           MessageID = "tsdoc-param-tag-missing-hyphen"
	MsgMissingDeprecationMessage       MessageID = "tsdoc-missing-deprecation-message"

	MsgHTMLTagMissingGreaterThan MessageID = "tsdoc-html-tag-missing-greater-than"
	MsgHTMLTagMissingEquals      MessageID = "tsdoc-html-tag-missing-equals"
	MsgHTMLTagMissingString      MessageID = "tsdoc-html-tag-missing-string"
	MsgHTMLStringMissingQuote    MessageID = "tsdoc-html-string-missing-quote"
	MsgTextAfterHTMLString       MessageID = "tsdoc-text-after-html-string"
	MsgMalformedHTMLName         MessageID = "tsdoc-malformed-html-name"

	MsgCodeSpanEmpty            MessageID = "tsdoc-code-span-empty"
	MsgCodeSpanMissingDelimiter MessageID = "tsdoc-code-span-missing-delimiter"
	MsgCodeFenceOpeningIndent   MessageID = "tsdoc-code-fence-opening-indent"
	MsgCodeFenceSpecifierSyntax MessageID = "tsdoc-code-fence-specifier-syntax"
	MsgCodeFenceClosingIndent   MessageID = "tsdoc-code-fence-closing-indent"
	MsgCodeFenceClosingSyntax   MessageID = "tsdoc-code-fence-closing-syntax"
	MsgCodeFenceMissingDelim    MessageID = "tsdoc-code-fence-missing-delimiter"
)

// allMessageIDs lists every identifier the parser can emit.
//
//nolint:gochecknoglobals // Read-only lookup table.
var allMessageIDs = []MessageID{
	MsgCommentMissingOpeningDelimiter,
	MsgCommentMissingClosingDelimiter,
	MsgUnnecessaryBackslash,
	MsgEscapeRightBrace,
	MsgEscapeGreaterThan,
	MsgAtSignInWord,
	MsgAtSignWithoutTagName,
	MsgMalformedTagName,
	MsgCharactersAfterBlock,
	MsgUndefinedTag,
	MsgInlineTagMissingBrace,
	MsgTagShouldNotHaveBrace,
	MsgMalformedInlineTag,
	MsgCharactersAfterInline,
	MsgLinkTagEmpty,
	MsgLinkTagInvalidURL,
	MsgExtraInheritDocTag,
	MsgInheritDocIncompatible,
	MsgInheritDocSummary,
	MsgParamTagWithInvalidType,
	MsgParamTagWithInvalidOptionalName,
	MsgParamTagWithInvalidName,
	MsgParamTagMissingHyphen,
	MsgMissingDeprecationMessage,
	MsgHTMLTagMissingGreaterThan,
	MsgHTMLTagMissingEquals,
	MsgHTMLTagMissingString,
	MsgHTMLStringMissingQuote,
	MsgTextAfterHTMLString,
	MsgMalformedHTMLName,
	MsgCodeSpanEmpty,
	MsgCodeSpanMissingDelimiter,
	MsgCodeFenceOpeningIndent,
	MsgCodeFenceSpecifierSyntax,
	MsgCodeFenceClosingIndent,
	MsgCodeFenceClosingSyntax,
	MsgCodeFenceMissingDelim,
}

// TextRange is a half-open byte range [Pos, End) within the parsed text.
type TextRange struct {
	Pos int
	End int
}

// Len returns the number of bytes covered by the range.
func (r TextRange) Len() int {
	return r.End - r.Pos
}

// Message is a single diagnostic produced while parsing a comment.
type Message struct {
	// MessageID identifies the kind of problem.
	MessageID MessageID

	// UnformattedText is the human-readable description without location info.
	UnformattedText string

	// TextRange locates the offending characters within the parsed text.
	TextRange TextRange
}

// String renders the message with its offset, mostly for test output.
func (m Message) String() string {
	return fmt.Sprintf("(%d) %s: %s", m.TextRange.Pos, m.MessageID, m.UnformattedText)
}

// Log collects the messages produced by one parse.
type Log struct {
	Messages []Message
}

// HasMessages reports whether any message was logged.
func (l *Log) HasMessages() bool {
	return len(l.Messages) > 0
}

// IDs returns the message identifiers in log order.
func (l *Log) IDs() []MessageID {
	ids := make([]MessageID, 0, len(l.Messages))
	for _, m := range l.Messages {
		ids = append(ids, m.MessageID)
	}
	return ids
}

func (l *Log) add(id MessageID, rng TextRange, format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	l.Messages = append(l.Messages, Message{
		MessageID:       id,
		UnformattedText: text,
		TextRange:       rng,
	})
}

func sortedMessageIDs() []MessageID {
	ids := slices.Clone(allMessageIDs)
	slices.Sort(ids)
	return ids
}
