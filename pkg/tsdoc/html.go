package tsdoc

// scanHTML parses an HTML start or end tag beginning at "<".
func (s *scanner) scanHTML() {
	start := s.pos
	pos := start + 1

	if pos < len(s.text) && s.text[pos] == '/' {
		s.scanHTMLEndTag(start)
		return
	}

	nameEnd := scanHTMLName(s.text, pos)
	if nameEnd == pos {
		s.log.add(MsgMalformedHTMLName, s.rng(start, start+1),
			`Invalid HTML element: An HTML name must be an ASCII letter followed by optional letters, digits, or hyphens; `+
				`if this is not an HTML tag, escape the "<" with a backslash`)
		s.addText(start, start+1)
		s.pos++
		return
	}
	pos = nameEnd
	afterString := false

	for {
		afterSpace := skipSpaces(s.text, pos)
		if afterSpace >= len(s.text) {
			s.missingGreaterThan(start, pos)
			return
		}

		switch s.text[afterSpace] {
		case '>':
			s.pos = afterSpace + 1
			return
		case '/':
			if afterSpace+1 < len(s.text) && s.text[afterSpace+1] == '>' {
				s.pos = afterSpace + 2
				return
			}
			s.missingGreaterThan(start, afterSpace)
			return
		}

		if afterSpace == pos {
			if !afterString {
				s.missingGreaterThan(start, afterSpace)
				return
			}
			s.log.add(MsgTextAfterHTMLString, s.rng(afterSpace, afterSpace+1),
				"The next character after a closing quote must be spacing or punctuation")
			s.pos = afterSpace
			return
		}

		attrEnd := scanHTMLName(s.text, afterSpace)
		if attrEnd == afterSpace {
			s.missingGreaterThan(start, afterSpace)
			return
		}

		next, ok := s.scanHTMLAttributeValue(attrEnd)
		if !ok {
			return
		}
		pos = next
		afterString = true
	}
}

// scanHTMLAttributeValue parses `="value"` after an attribute name and
// returns the position following the closing quote.
func (s *scanner) scanHTMLAttributeValue(pos int) (int, bool) {
	pos = skipSpaces(s.text, pos)
	if pos >= len(s.text) || s.text[pos] != '=' {
		s.log.add(MsgHTMLTagMissingEquals, s.rng(pos, pos+1),
			`Invalid HTML element: Expecting "=" after HTML attribute name`)
		s.pos = pos
		return 0, false
	}

	pos = skipSpaces(s.text, pos+1)
	if pos >= len(s.text) || (s.text[pos] != '"' && s.text[pos] != '\'') {
		s.log.add(MsgHTMLTagMissingString, s.rng(pos, pos+1),
			"Invalid HTML element: Expecting an HTML string starting with a single-quote or double-quote character")
		s.pos = pos
		return 0, false
	}

	quote := s.text[pos]
	for end := pos + 1; end < len(s.text); end++ {
		switch s.text[end] {
		case quote:
			return end + 1, true
		case '\n':
			end = len(s.text)
		}
	}

	s.log.add(MsgHTMLStringMissingQuote, s.rng(pos, pos+1),
		"Invalid HTML element: The HTML string is missing its closing quote")
	s.pos = pos + 1
	return 0, false
}

func (s *scanner) scanHTMLEndTag(start int) {
	pos := start + 2
	nameEnd := scanHTMLName(s.text, pos)
	if nameEnd == pos {
		s.log.add(MsgMalformedHTMLName, s.rng(start, pos),
			"Invalid HTML element: Expecting an HTML name after \"</\"")
		s.pos = pos
		return
	}

	pos = skipSpaces(s.text, nameEnd)
	if pos >= len(s.text) || s.text[pos] != '>' {
		s.missingGreaterThan(start, pos)
		return
	}
	s.pos = pos + 1
}

func (s *scanner) missingGreaterThan(start, at int) {
	s.log.add(MsgHTMLTagMissingGreaterThan, s.rng(start, at),
		`Invalid HTML element: The HTML tag is missing its closing ">"`)
	s.pos = max(at, start+1)
}

func scanHTMLName(text string, pos int) int {
	if pos >= len(text) || !isASCIILetter(text[pos]) {
		return pos
	}
	pos++
	for pos < len(text) && (isASCIILetter(text[pos]) || isDigit(text[pos]) || text[pos] == '-') {
		pos++
	}
	return pos
}
