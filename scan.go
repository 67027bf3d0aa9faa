package varcfg

import "strings"

// normalizeNewlines converts \r\n (and stray \r) to \n so the parser can
// split on a single terminator.
func normalizeNewlines(input string) string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	return strings.ReplaceAll(input, "\r", "\n")
}

// isEscaped reports whether the character at i is preceded by an odd number
// of consecutive backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// indexUnquoted returns the index of the first unescaped occurrence of
// target at or after from that is outside double quotes, or -1. Quote state
// toggles on each unescaped ".
func indexUnquoted(s string, from int, target byte) int {
	inQuotes := false
	for i := from; i < len(s); i++ {
		c := s[i]
		if c == '"' && !isEscaped(s, i) {
			inQuotes = !inQuotes
			continue
		}
		if c == target && !inQuotes && !isEscaped(s, i) {
			return i
		}
	}
	return -1
}

// indexTopLevel is indexUnquoted with bracket tracking: [, { and ( opened
// outside quotes increase depth, their partners decrease it, and a match is
// only reported at depth zero.
func indexTopLevel(s string, from int, target byte) int {
	inQuotes := false
	depth := 0
	for i := from; i < len(s); i++ {
		c := s[i]
		if c == '"' && !isEscaped(s, i) {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch c {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		}
		if c == target && depth == 0 && !isEscaped(s, i) {
			return i
		}
	}
	return -1
}

// closeQuote returns the index of the first unescaped " at or after from,
// or -1 if the string is unterminated within s.
func closeQuote(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '"' && !isEscaped(s, i) {
			return i
		}
	}
	return -1
}

// identCallOpen reports where the ( of a leading Identifier( construct sits,
// or -1 if s does not begin with one.
func identCallOpen(s string) int {
	i := 0
	for i < len(s) && (isIdentByte(s[i]) || (i > 0 && s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return -1
	}
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j < len(s) && s[j] == '(' {
		return j
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// valueEnd returns the index just past the leading value construct of s:
// the closing quote of a quoted string, the balancing delimiter of a
// bracketed, braced or parenthesized span, or the start of a same-line
// comment (end of string otherwise) for a bare scalar. It returns -1 when
// the construct is still open and the caller must append continuation
// lines before rescanning.
func valueEnd(s string) int {
	if s == "" {
		return 0
	}
	switch {
	case s[0] == '"':
		end := closeQuote(s, 1)
		if end < 0 {
			return -1
		}
		return end + 1
	case s[0] == '[' || s[0] == '{':
		return balancedEnd(s, 0)
	default:
		if open := identCallOpen(s); open >= 0 {
			return balancedEnd(s, open)
		}
		if i := indexUnquoted(s, 0, ';'); i >= 0 {
			return i
		}
		return len(s)
	}
}

// balancedEnd scans from the opening delimiter at open and returns the index
// just past the character that brings nesting depth back to zero, or -1.
// Depth only changes outside quotes.
func balancedEnd(s string, open int) int {
	inQuotes := false
	depth := 0
	for i := open; i < len(s); i++ {
		c := s[i]
		if c == '"' && !isEscaped(s, i) {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch c {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// unescapeString reverses the escape set \\ \" \n \r \t, applied once.
// Unknown escapes keep their backslash.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(s[i])
			continue
		}
		i++
	}
	return b.String()
}

// escapeString applies the escape set \\ \" \n \r \t.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
