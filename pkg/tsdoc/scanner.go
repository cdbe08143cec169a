package tsdoc

import (
	"strings"
)

const codeFence = "```"

// scanner walks a contentBuffer once, recording tags and logging problems.
type scanner struct {
	config *Configuration
	buf    *contentBuffer
	text   string
	log    *Log
	doc    *DocComment

	pos int

	// Summary tracking: text seen before the first block tag.
	inSummary bool
	summary   strings.Builder

	// Current block tag, used for @deprecated content checks.
	blockName       string
	blockRange      TextRange
	blockHasContent bool

	inheritDocCount int
	remarksRange    *TextRange
	inheritDocRange TextRange
}

func newScanner(config *Configuration, buf *contentBuffer, log *Log, doc *DocComment) *scanner {
	return &scanner{
		config:    config,
		buf:       buf,
		text:      buf.text,
		log:       log,
		doc:       doc,
		inSummary: true,
	}
}

func (s *scanner) run() {
	for s.pos < len(s.text) {
		if s.atLineStart() && s.tryCodeFence() {
			continue
		}
		s.step()
	}
	s.finishBlock()
	s.finish()
}

func (s *scanner) atLineStart() bool {
	return s.pos == 0 || s.text[s.pos-1] == '\n'
}

func (s *scanner) atWordStart() bool {
	if s.pos == 0 {
		return true
	}
	return isSpace(s.text[s.pos-1])
}

func (s *scanner) lineEnd(from int) int {
	idx := strings.IndexByte(s.text[from:], '\n')
	if idx < 0 {
		return len(s.text)
	}
	return from + idx
}

func (s *scanner) rng(start, end int) TextRange {
	return s.buf.rangeOf(start, end)
}

// step consumes one syntactic element starting at s.pos.
func (s *scanner) step() {
	c := s.text[s.pos]
	switch c {
	case '\\':
		s.scanBackslash()
	case '`':
		s.scanCodeSpan()
	case '{':
		s.scanOpenBrace()
	case '}':
		s.log.add(MsgEscapeRightBrace, s.rng(s.pos, s.pos+1),
			`The "}" character should be escaped using a backslash to avoid confusion with a TSDoc inline tag`)
		s.addText(s.pos, s.pos+1)
		s.pos++
	case '>':
		s.log.add(MsgEscapeGreaterThan, s.rng(s.pos, s.pos+1),
			`The ">" character should be escaped using a backslash to avoid confusion with an HTML tag`)
		s.addText(s.pos, s.pos+1)
		s.pos++
	case '<':
		s.scanHTML()
	case '@':
		s.scanAtSign()
	default:
		s.addText(s.pos, s.pos+1)
		s.pos++
	}
}

// addText records plain text for the summary and current block.
func (s *scanner) addText(start, end int) {
	chunk := s.text[start:end]
	if s.inSummary {
		s.summary.WriteString(chunk)
	}
	if strings.TrimSpace(chunk) != "" {
		s.blockHasContent = true
	}
}

func (s *scanner) scanBackslash() {
	start := s.pos
	if start+1 < len(s.text) && isPunctuation(s.text[start+1]) {
		s.addText(start+1, start+2)
		s.pos += 2
		return
	}
	s.log.add(MsgUnnecessaryBackslash, s.rng(start, start+1),
		`A backslash must precede another character that is being escaped`)
	s.pos++
}

func (s *scanner) scanCodeSpan() {
	start := s.pos
	end := s.lineEnd(start + 1)
	closing := strings.IndexByte(s.text[start+1:end], '`')
	if closing < 0 {
		s.log.add(MsgCodeSpanMissingDelimiter, s.rng(start, start+1),
			"The code span is missing its closing backtick")
		s.pos++
		return
	}
	closeAt := start + 1 + closing
	if closeAt == start+1 {
		s.log.add(MsgCodeSpanEmpty, s.rng(start, closeAt+1),
			"A code span must contain at least one character between the backticks")
	}
	s.addText(start, closeAt+1)
	s.pos = closeAt + 1
}

// tryCodeFence handles a fenced code block starting on the current line.
func (s *scanner) tryCodeFence() bool {
	lineEnd := s.lineEnd(s.pos)
	line := s.text[s.pos:lineEnd]
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, codeFence) {
		return false
	}

	fenceStart := s.pos + len(line) - len(trimmed)
	if fenceStart != s.pos {
		s.log.add(MsgCodeFenceOpeningIndent, s.rng(s.pos, fenceStart+len(codeFence)),
			"The opening backtick for a code fence must appear at the start of the line")
	}

	specifier := strings.TrimSpace(trimmed[len(codeFence):])
	if specifier != "" && !isValidFenceSpecifier(specifier) {
		specStart := lineEnd - len(strings.TrimLeft(trimmed[len(codeFence):], " \t"))
		s.log.add(MsgCodeFenceSpecifierSyntax, s.rng(specStart, lineEnd),
			"The language specifier (if present) must be a sequence of letters and/or numbers")
	}

	s.blockHasContent = true
	openRange := s.rng(fenceStart, fenceStart+len(codeFence))

	// Skip the fence body up to the closing delimiter.
	pos := lineEnd
	for pos < len(s.text) {
		pos++ // newline
		closeEnd := s.lineEnd(pos)
		closeLine := s.text[pos:closeEnd]
		closeTrimmed := strings.TrimLeft(closeLine, " \t")
		if strings.HasPrefix(closeTrimmed, codeFence) {
			closeStart := pos + len(closeLine) - len(closeTrimmed)
			if closeStart != pos {
				s.log.add(MsgCodeFenceClosingIndent, s.rng(pos, closeStart+len(codeFence)),
					"The closing delimiter for a code fence must not be indented")
			}
			if strings.TrimSpace(closeTrimmed[len(codeFence):]) != "" {
				s.log.add(MsgCodeFenceClosingSyntax, s.rng(closeStart+len(codeFence), closeEnd),
					"Unexpected characters after closing delimiter for code fence")
			}
			s.pos = closeEnd
			return true
		}
		pos = closeEnd
	}

	s.log.add(MsgCodeFenceMissingDelim, openRange,
		"Error parsing code fence: Missing closing delimiter")
	s.pos = len(s.text)
	return true
}

func (s *scanner) scanOpenBrace() {
	start := s.pos
	if start+1 < len(s.text) && s.text[start+1] == '@' {
		s.scanInlineTag()
		return
	}
	s.log.add(MsgMalformedInlineTag, s.rng(start, start+1),
		`The "{" character must be escaped with a backslash when used outside of an inline tag`)
	s.addText(start, start+1)
	s.pos++
}

// scanInlineTag parses "{@name content}".
func (s *scanner) scanInlineTag() {
	start := s.pos
	nameStart := start + 1
	nameEnd := scanTagName(s.text, nameStart+1)

	if nameEnd == nameStart+1 {
		s.log.add(MsgMalformedInlineTag, s.rng(start, nameStart+1),
			`Expecting a TSDoc inline tag name after the "{@" characters`)
		s.pos = nameStart + 1
		return
	}

	name := s.text[nameStart:nameEnd]
	if !isASCIILetter(name[1]) {
		s.log.add(MsgMalformedTagName, s.rng(nameStart, nameEnd),
			"A TSDoc tag name must start with a letter")
		s.pos = nameEnd
		return
	}

	if nameEnd < len(s.text) && !isSpace(s.text[nameEnd]) && s.text[nameEnd] != '}' {
		s.log.add(MsgCharactersAfterInline, s.rng(nameEnd, nameEnd+1),
			`The character %q cannot appear after the TSDoc tag name; expecting a space`, string(s.text[nameEnd]))
		s.pos = nameEnd
		return
	}

	closeAt := findInlineTagEnd(s.text, nameEnd)
	if closeAt < 0 {
		s.log.add(MsgMalformedInlineTag, s.rng(start, nameEnd),
			`The TSDoc inline tag name is missing its closing "}"`)
		s.pos = nameEnd
		return
	}
	s.pos = closeAt + 1

	nameRange := s.rng(nameStart, nameEnd)
	def, ok := s.config.TryGetTagDefinition(name)
	switch {
	case !ok:
		s.log.add(MsgUndefinedTag, nameRange,
			"The TSDoc tag %q is not defined in this configuration", name)
		return
	case def.Syntax != SyntaxInlineTag:
		s.log.add(MsgTagShouldNotHaveBrace, nameRange,
			`The TSDoc tag %q is not an inline tag; it must not be enclosed in "{ }" braces`, name)
		return
	}

	s.doc.Tags = append(s.doc.Tags, Tag{Name: name, Syntax: SyntaxInlineTag, Range: nameRange})
	content := strings.TrimSpace(s.text[nameEnd:closeAt])

	switch strings.ToLower(name) {
	case "@link":
		s.blockHasContent = true
		s.checkLinkContent(content, s.rng(start, closeAt+1))
	case "@inheritdoc":
		s.inheritDocCount++
		if s.inheritDocCount > 1 {
			s.log.add(MsgExtraInheritDocTag, nameRange,
				"A doc comment cannot have more than one @inheritDoc tag")
		} else {
			s.inheritDocRange = nameRange
		}
	default:
		s.blockHasContent = true
	}
}

func (s *scanner) checkLinkContent(content string, tagRange TextRange) {
	destination, _, _ := strings.Cut(content, "|")
	destination = strings.TrimSpace(destination)
	if destination == "" {
		s.log.add(MsgLinkTagEmpty, tagRange,
			"The @link tag content is missing")
		return
	}
	if scheme, _, found := strings.Cut(destination, "://"); found && !isValidURLScheme(scheme) {
		s.log.add(MsgLinkTagInvalidURL, tagRange,
			"The @link tag has an invalid URL: the scheme %q is not valid", scheme)
	}
}

// scanAtSign parses a block or modifier tag, or reports a stray "@".
func (s *scanner) scanAtSign() {
	start := s.pos

	if !s.atWordStart() {
		s.log.add(MsgAtSignInWord, s.rng(start, start+1),
			`The "@" character looks like part of a TSDoc tag; use a backslash to escape it`)
		s.addText(start, start+1)
		s.pos++
		return
	}

	nameEnd := scanTagName(s.text, start+1)
	if nameEnd == start+1 {
		s.log.add(MsgAtSignWithoutTagName, s.rng(start, start+1),
			`Expecting a TSDoc tag name after "@"; if it is not a tag, use a backslash to escape this character`)
		s.addText(start, start+1)
		s.pos++
		return
	}

	name := s.text[start:nameEnd]
	if !isASCIILetter(name[1]) {
		s.log.add(MsgMalformedTagName, s.rng(start, nameEnd),
			"A TSDoc tag name must start with a letter")
		s.pos = nameEnd
		return
	}

	if nameEnd < len(s.text) && !isSpace(s.text[nameEnd]) {
		wordEnd := nameEnd
		for wordEnd < len(s.text) && !isSpace(s.text[wordEnd]) {
			wordEnd++
		}
		s.log.add(MsgCharactersAfterBlock, s.rng(start, nameEnd+1),
			`The token %q looks like a TSDoc tag but contains an invalid character %q; if it is not a tag, use a backslash to escape the "@"`,
			s.text[start:wordEnd], string(s.text[nameEnd]))
		s.pos = wordEnd
		return
	}

	s.pos = nameEnd
	nameRange := s.rng(start, nameEnd)

	def, ok := s.config.TryGetTagDefinition(name)
	if !ok {
		s.log.add(MsgUndefinedTag, nameRange,
			"The TSDoc tag %q is not defined in this configuration", name)
		return
	}
	if def.Syntax == SyntaxInlineTag {
		s.log.add(MsgInlineTagMissingBrace, nameRange,
			`The TSDoc tag %q is an inline tag; it must be enclosed in "{ }" braces`, name)
		return
	}

	s.doc.Tags = append(s.doc.Tags, Tag{Name: name, Syntax: def.Syntax, Range: nameRange})
	if def.Syntax == SyntaxModifierTag {
		return
	}

	s.finishBlock()
	s.inSummary = false
	s.blockName = strings.ToLower(name)
	s.blockRange = nameRange
	s.blockHasContent = false

	switch s.blockName {
	case "@param", "@typeparam":
		s.scanParamBlock(name)
	case "@remarks":
		r := nameRange
		s.remarksRange = &r
	}
}

// scanParamBlock checks the "name -" prefix following @param or @typeParam.
func (s *scanner) scanParamBlock(tagName string) {
	pos := skipSpaces(s.text, s.pos)

	if pos < len(s.text) && s.text[pos] == '{' {
		end := strings.IndexByte(s.text[pos:], '}')
		if end < 0 {
			end = s.lineEnd(pos) - pos - 1
		}
		s.log.add(MsgParamTagWithInvalidType, s.rng(pos, pos+end+1),
			`The %s block should not include a JSDoc-style "{type}"`, tagName)
		pos = skipSpaces(s.text, pos+end+1)
	}

	if pos < len(s.text) && s.text[pos] == '[' {
		end := strings.IndexByte(s.text[pos:s.lineEnd(pos)], ']')
		if end < 0 {
			end = s.lineEnd(pos) - pos - 1
		}
		s.log.add(MsgParamTagWithInvalidOptionalName, s.rng(pos, pos+end+1),
			`The %s should not include a JSDoc-style optional name; it must not be enclosed in "[ ]" brackets`, tagName)
		s.pos = pos + end + 1
		return
	}

	nameEnd := scanParamName(s.text, pos)
	if nameEnd == pos {
		s.log.add(MsgParamTagWithInvalidName, s.rng(pos, pos+1),
			"The %s block should be followed by a valid parameter name", tagName)
		s.pos = pos
		return
	}

	afterName := skipSpaces(s.text, nameEnd)
	if afterName >= len(s.text) || s.text[afterName] != '-' {
		s.log.add(MsgParamTagMissingHyphen, s.rng(pos, nameEnd),
			"The %s block should be followed by a parameter name and then a hyphen", tagName)
		s.pos = nameEnd
		return
	}
	s.pos = afterName + 1
}

// finishBlock validates the block that is ending.
func (s *scanner) finishBlock() {
	if s.blockName == "@deprecated" && !s.blockHasContent {
		s.log.add(MsgMissingDeprecationMessage, s.blockRange,
			"The @deprecated block must include a deprecation message, e.g. describing the recommended alternative")
	}
	s.blockName = ""
}

func (s *scanner) finish() {
	s.doc.Summary = strings.TrimSpace(s.summary.String())

	if s.inheritDocCount == 0 {
		return
	}
	if s.remarksRange != nil {
		s.log.add(MsgInheritDocIncompatible, *s.remarksRange,
			"A @remarks block must not be used, because that content is provided by the @inheritDoc tag")
	}
	if s.doc.Summary != "" {
		s.log.add(MsgInheritDocSummary, s.inheritDocRange,
			"The summary section must not have any content, because that content is provided by the @inheritDoc tag")
	}
}

// findInlineTagEnd returns the index of the "}" closing an inline tag,
// honoring backslash escapes, or -1.
func findInlineTagEnd(text string, from int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '}':
			return i
		case '{':
			return -1
		}
	}
	return -1
}

func scanTagName(text string, pos int) int {
	for pos < len(text) && isTagNameChar(text[pos]) {
		pos++
	}
	return pos
}

func scanParamName(text string, pos int) int {
	start := pos
	for pos < len(text) {
		c := text[pos]
		if isASCIILetter(c) || c == '_' || c == '$' || (pos > start && (isDigit(c) || c == '.')) {
			pos++
			continue
		}
		break
	}
	return pos
}

func skipSpaces(text string, pos int) int {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	return pos
}

func isValidFenceSpecifier(spec string) bool {
	for i := range len(spec) {
		c := spec[i]
		if !isASCIILetter(c) && !isDigit(c) && c != '-' && c != '_' && c != '+' {
			return false
		}
	}
	return true
}

func isValidURLScheme(scheme string) bool {
	if scheme == "" || !isASCIILetter(scheme[0]) {
		return false
	}
	for i := 1; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCIILetter(c) && !isDigit(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

func isTagNameChar(c byte) bool {
	return isASCIILetter(c) || isDigit(c)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isPunctuation(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
