package varcfg

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError records a line or entry the parser had to drop. Parsing is
// best-effort: a malformed line never aborts the document, it is skipped
// and reported here so that callers wanting strict behavior can reject the
// input when any errors accumulated.
type ParseError struct {
	Line int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse parses a document into a new Store, silently dropping anything it
// cannot interpret. A duplicate key within a section overwrites the earlier
// value.
func Parse(input string) *Store {
	store, _ := ParseAll(input)
	return store
}

// ParseAll is Parse, additionally returning one ParseError per dropped line
// or entry. The returned Store contains every entry that could be
// interpreted regardless of how many errors occurred.
func ParseAll(input string) (*Store, []ParseError) {
	store := NewStore()
	errs := store.Parse(input)
	return store, errs
}

// Parse clears the Store and repopulates it from input.
func (s *Store) Parse(input string) []ParseError {
	s.Clear()
	p := &parser{
		lines: strings.Split(normalizeNewlines(input), "\n"),
		store: s,
	}
	p.run()
	return p.errs
}

// parser walks physical lines, tracking the current section. Values whose
// opening delimiter is not closed on the same line consume continuation
// lines before being parsed.
type parser struct {
	lines   []string
	next    int
	store   *Store
	section string
	errs    []ParseError
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.errs = append(p.errs, ParseError{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) run() {
	for p.next < len(p.lines) {
		lno := p.next + 1
		line := strings.TrimSpace(p.lines[p.next])
		p.next++

		if line == "" || line[0] == ';' {
			continue
		}

		if line[0] == '[' {
			if len(line) >= 2 && line[len(line)-1] == ']' {
				p.section = line[1 : len(line)-1]
			} else {
				p.errorf(lno, "unterminated section header")
			}
			continue
		}

		key, rest, ok := p.splitKey(line, lno)
		if !ok {
			continue
		}

		span, ok := p.completeValue(rest, lno)
		if !ok {
			continue
		}
		p.store.Set(p.section, key, p.parseValue(span, lno))
	}
}

// splitKey separates a line into key and value text. A key is either a
// quoted string literal or everything up to the first unescaped = outside
// quotes.
func (p *parser) splitKey(line string, lno int) (key, rest string, ok bool) {
	if line[0] == '"' {
		end := closeQuote(line, 1)
		if end < 0 {
			p.errorf(lno, "unterminated quoted key")
			return "", "", false
		}
		key = unescapeString(line[1:end])
		rest = strings.TrimLeft(line[end+1:], " \t")
		if !strings.HasPrefix(rest, "=") {
			p.errorf(lno, "missing '=' after quoted key")
			return "", "", false
		}
		return key, rest[1:], true
	}

	eq := indexUnquoted(line, 0, '=')
	if eq < 0 {
		p.errorf(lno, "missing '='")
		return "", "", false
	}
	key = strings.TrimSpace(line[:eq])
	if key == "" {
		p.errorf(lno, "empty key")
		return "", "", false
	}
	return key, line[eq+1:], true
}

// completeValue resolves multi-line continuation for the value text
// following the =. Continuation lines are joined with \n and the whole
// buffer is rescanned from scratch after each append. Whatever follows the
// balanced span on its final line (trailing comment or stray characters) is
// discarded.
func (p *parser) completeValue(rest string, lno int) (string, bool) {
	// only leading space is stripped here: trailing space may sit inside an
	// unterminated quoted string
	buf := strings.TrimLeft(rest, " \t")
	end := valueEnd(buf)
	for end < 0 {
		if p.next >= len(p.lines) {
			p.errorf(lno, "unterminated value")
			return "", false
		}
		buf += "\n" + p.lines[p.next]
		p.next++
		end = valueEnd(buf)
	}
	return strings.TrimSpace(buf[:end]), true
}

// parseValue interprets one value span. The trial order matters: textual
// forms overlap (the literal true parses as Bool, but "true" is a String),
// so each rule only sees spans the earlier rules rejected.
func (p *parser) parseValue(span string, lno int) Value {
	switch span {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if isIntLiteral(span) {
		if n, err := strconv.ParseInt(span, 10, 64); err == nil {
			return Int(n)
		}
		// out of int64 range: retry as float below
	}
	if isFloatLiteral(span) {
		if f, err := strconv.ParseFloat(span, 64); err == nil {
			return Float(f)
		}
	}

	if span != "" {
		switch span[0] {
		case '"':
			end := closeQuote(span, 1)
			if end < 0 {
				// recoverable only at the line level; as a nested element
				// the unterminated text is kept as-is
				return String(unescapeString(span[1:]))
			}
			return String(unescapeString(span[1:end]))
		case '[':
			return p.parseArray(span, lno)
		case '{':
			return p.parseDict(span, lno)
		}
	}

	// constructor-call literals (Vector2(20, 30)) and anything else land
	// here verbatim: not decomposed, so the exact source text round-trips
	return String(span)
}

func (p *parser) parseArray(span string, lno int) Value {
	arr := Array{}
	for _, elem := range splitTopLevel(stripDelims(span, ']')) {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			continue
		}
		arr = append(arr, p.parseValue(elem, lno))
	}
	return arr
}

func (p *parser) parseDict(span string, lno int) Value {
	dict := NewDict()
	for _, entry := range splitTopLevel(stripDelims(span, '}')) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := p.splitDictEntry(entry, lno)
		if !ok {
			continue
		}
		dict.Set(key, p.parseValue(strings.TrimSpace(value), lno))
	}
	return dict
}

// splitDictEntry locates the key/value separator of one dictionary entry:
// whichever of : or = comes first at top level. With : the key must be a
// quoted string; with = the key is taken verbatim, unquoted only if it
// happens to be quoted.
func (p *parser) splitDictEntry(entry string, lno int) (key, value string, ok bool) {
	sep := indexTopLevel(entry, 0, ':')
	if eq := indexTopLevel(entry, 0, '='); eq >= 0 && (sep < 0 || eq < sep) {
		sep = eq
	}
	if sep < 0 {
		p.errorf(lno, "dictionary entry without ':' or '='")
		return "", "", false
	}

	rawKey := strings.TrimSpace(entry[:sep])
	value = entry[sep+1:]

	if entry[sep] == ':' {
		if len(rawKey) < 2 || rawKey[0] != '"' || closeQuote(rawKey, 1) != len(rawKey)-1 {
			p.errorf(lno, "dictionary key before ':' must be a quoted string")
			return "", "", false
		}
		return unescapeString(rawKey[1 : len(rawKey)-1]), value, true
	}

	if len(rawKey) >= 2 && rawKey[0] == '"' && closeQuote(rawKey, 1) == len(rawKey)-1 {
		rawKey = unescapeString(rawKey[1 : len(rawKey)-1])
	}
	return rawKey, value, true
}

// stripDelims removes the opening delimiter and, when present, the closing
// one, returning the interior text.
func stripDelims(span string, closer byte) string {
	inner := span[1:]
	if len(inner) > 0 && inner[len(inner)-1] == closer {
		inner = inner[:len(inner)-1]
	}
	return inner
}

// splitTopLevel splits on commas at nesting depth zero outside quotes.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	from := 0
	for {
		i := indexTopLevel(s, from, ',')
		if i < 0 {
			parts = append(parts, s[from:])
			return parts
		}
		parts = append(parts, s[from:i])
		from = i + 1
	}
}

// isIntLiteral matches an optional sign followed by digits only.
func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isFloatLiteral restricts the float rule to plain decimal notation:
// strconv would also accept inf, NaN and hex floats, which this format
// treats as strings.
func isFloatLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '+' || s[i] == '-' || s[i] == '.' || s[i] == 'e' || s[i] == 'E':
		default:
			return false
		}
	}
	return true
}
