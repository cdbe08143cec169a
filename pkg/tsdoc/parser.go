package tsdoc

import "strings"

const (
	openingDelimiter = "/**"
	closingDelimiter = "*/"
)

// Tag records one tag occurrence found in a comment.
type Tag struct {
	// Name is the tag name as written, including "@".
	Name string

	// Syntax is how the tag was written (inline when enclosed in braces).
	Syntax SyntaxKind

	// Range covers the tag name in the parsed text.
	Range TextRange
}

// DocComment is the structural outline of a parsed comment.
type DocComment struct {
	// Summary is the text before the first block tag, lines joined by "\n".
	Summary string

	// Tags lists every well-formed tag in source order.
	Tags []Tag
}

// ParserContext holds the result of parsing one comment.
type ParserContext struct {
	// Configuration is the configuration used by the parser.
	Configuration *Configuration

	// Text is the input text.
	Text string

	// Lines are the content ranges of each comment line, with the
	// delimiters and "*" prefixes removed.
	Lines []TextRange

	// DocComment is the parsed outline; empty when the delimiters are invalid.
	DocComment *DocComment

	// Log holds every message produced while parsing.
	Log *Log
}

// Parser parses TSDoc comments. A Parser is stateless and safe for
// concurrent use.
type Parser struct {
	config *Configuration
}

// NewParser creates a parser. A nil configuration selects DefaultConfiguration.
func NewParser(config *Configuration) *Parser {
	if config == nil {
		config = DefaultConfiguration()
	}
	return &Parser{config: config}
}

// Configuration returns the parser's configuration.
func (p *Parser) Configuration() *Configuration {
	return p.config
}

// ParseString parses a complete comment, including its "/**" and "*/" delimiters.
func (p *Parser) ParseString(text string) *ParserContext {
	pc := &ParserContext{
		Configuration: p.config,
		Text:          text,
		DocComment:    &DocComment{},
		Log:           &Log{},
	}

	if !hasOpeningDelimiter(text) {
		pc.Log.add(MsgCommentMissingOpeningDelimiter,
			TextRange{Pos: 0, End: min(len(openingDelimiter), len(text))},
			`Expecting a "/**" comment`)
		return pc
	}

	if len(text) < len(openingDelimiter)+len(closingDelimiter) || !strings.HasSuffix(text, closingDelimiter) {
		pc.Log.add(MsgCommentMissingClosingDelimiter,
			TextRange{Pos: len(text), End: len(text)},
			`Expecting a closing "*/" for the doc comment`)
		return pc
	}

	buf := extractLines(text)
	pc.Lines = buf.lines

	sc := newScanner(p.config, buf, pc.Log, pc.DocComment)
	sc.run()

	return pc
}

func hasOpeningDelimiter(text string) bool {
	if !strings.HasPrefix(text, openingDelimiter) {
		return false
	}
	// "/**/" is an empty block comment, not a doc comment.
	rest := text[len(openingDelimiter):]
	return !strings.HasPrefix(rest, "/")
}

// contentBuffer is the comment body with delimiters and line prefixes removed.
// Lines are joined with '\n'; offsets maps each buffer byte (plus one
// sentinel) back to its position in the original text.
type contentBuffer struct {
	text    string
	offsets []int
	lines   []TextRange
}

// rangeOf converts a buffer span to a range in the original text.
func (b *contentBuffer) rangeOf(start, end int) TextRange {
	if start >= len(b.text) {
		pos := b.offsets[len(b.offsets)-1]
		return TextRange{Pos: pos, End: pos}
	}
	if end <= start {
		return TextRange{Pos: b.offsets[start], End: b.offsets[start]}
	}
	end = min(end, len(b.text))
	return TextRange{Pos: b.offsets[start], End: b.offsets[end-1] + 1}
}

// extractLines strips the delimiters and the leading "*" of each line.
func extractLines(text string) *contentBuffer {
	bodyStart := len(openingDelimiter)
	bodyEnd := len(text) - len(closingDelimiter)

	type span struct{ start, end int }
	var spans []span

	lineStart := bodyStart
	for lineIdx := 0; lineStart <= bodyEnd; lineIdx++ {
		lineEnd := strings.IndexByte(text[lineStart:bodyEnd], '\n')
		next := bodyEnd + 1
		if lineEnd < 0 {
			lineEnd = bodyEnd
		} else {
			lineEnd += lineStart
			next = lineEnd + 1
		}

		start := skipBlanks(text, lineStart, lineEnd)
		if lineIdx > 0 && start < lineEnd && text[start] == '*' {
			start++
			if start < lineEnd && text[start] == ' ' {
				start++
			}
		}

		end := lineEnd
		for end > start && isBlank(text[end-1]) {
			end--
		}

		spans = append(spans, span{start: start, end: end})
		lineStart = next
	}

	// The line holding the closing delimiter is usually empty.
	if len(spans) > 1 && spans[len(spans)-1].start == spans[len(spans)-1].end {
		spans = spans[:len(spans)-1]
	}
	// So is the line holding the opening delimiter.
	if len(spans) > 1 && spans[0].start == spans[0].end {
		spans = spans[1:]
	}

	buf := &contentBuffer{}
	var sb strings.Builder
	for idx, s := range spans {
		if idx > 0 {
			sb.WriteByte('\n')
			buf.offsets = append(buf.offsets, spans[idx-1].end)
		}
		sb.WriteString(text[s.start:s.end])
		for pos := s.start; pos < s.end; pos++ {
			buf.offsets = append(buf.offsets, pos)
		}
		buf.lines = append(buf.lines, TextRange{Pos: s.start, End: s.end})
	}
	buf.offsets = append(buf.offsets, bodyEnd)
	buf.text = sb.String()

	return buf
}

func skipBlanks(text string, pos, end int) int {
	for pos < end && isBlank(text[pos]) {
		pos++
	}
	return pos
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
