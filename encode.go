package varcfg

import (
	"strconv"
	"strings"
)

// Encode serializes a Store to canonical text. The default section's keys
// are written first with no header; each named section follows in insertion
// order as a [name] header separated from the previous output by a blank
// line. Dictionary keys are always quoted and always use the : separator on
// output, even where the input used =.
func Encode(s *Store) string {
	var b strings.Builder
	writeSection := func(section string) {
		d := s.sections[section]
		if d == nil {
			return
		}
		if section != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteByte('[')
			b.WriteString(section)
			b.WriteString("]\n")
		}
		for _, key := range d.Keys() {
			v, _ := d.Get(key)
			b.WriteString(encodeKey(key))
			b.WriteByte('=')
			writeValue(&b, v)
			b.WriteByte('\n')
		}
	}

	// the default section can only be expressed at the top of the document
	writeSection("")
	for _, section := range s.order {
		if section != "" {
			writeSection(section)
		}
	}
	return b.String()
}

// encodeKey quotes a key only when emitting it bare would change how it
// parses back.
func encodeKey(key string) string {
	if key == "" || strings.ContainsAny(key, " \n\r\t=\";") || key[0] == '[' {
		return `"` + escapeString(key) + `"`
	}
	return key
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Int:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		b.WriteString(formatFloat(float64(val)))
	case String:
		b.WriteString(encodeString(string(val)))
	case Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, elem)
		}
		b.WriteByte(']')
	case *Dict:
		if val.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		for i, key := range val.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(escapeString(key))
			b.WriteString(`": `)
			elem, _ := val.Get(key)
			writeValue(b, elem)
		}
		b.WriteString(" }")
	}
}

// encodeString emits a string bare only when it survives a reparse
// unchanged; otherwise quoted with the parser's escape set. Bare emission
// is what lets constructor-call literals like Vector2(1, 2) round-trip byte
// for byte.
func encodeString(s string) string {
	if open := identCallOpen(s); open >= 0 && balancedEnd(s, open) == len(s) && !strings.ContainsAny(s, "\n\r\t") {
		// a balanced Identifier(...) span reparses verbatim, spaces included
		return s
	}
	// anything the parser reads structurally forces quotes: whitespace and
	// quotes, the comment marker, collection delimiters (an unbalanced one
	// would open multi-line continuation on reparse and swallow following
	// keys), element commas, and the dictionary separator
	if s == "" || strings.ContainsAny(s, " \n\r\t\";,[]{}():") {
		return `"` + escapeString(s) + `"`
	}
	return s
}

// formatFloat renders the canonical decimal form, always carrying a decimal
// point or exponent so the text reparses as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
