package varcfg

import "testing"

func TestIsEscaped(t *testing.T) {
	for _, test := range []struct {
		s    string
		i    int
		want bool
	}{
		{`a"`, 1, false},
		{`\"`, 1, true},
		{`\\"`, 2, false},
		{`\\\"`, 3, true},
		{`x\\\\"`, 5, false},
	} {
		if got := isEscaped(test.s, test.i); got != test.want {
			t.Errorf("isEscaped(%q, %d) = %v, want %v", test.s, test.i, got, test.want)
		}
	}
}

func TestIndexUnquoted(t *testing.T) {
	for _, test := range []struct {
		s      string
		target byte
		want   int
	}{
		{`a=b`, '=', 1},
		{`"a=b"=c`, '=', 5},
		{`"a\"=b"=c`, '=', 7},
		{`a\=b=c`, '=', 4},
		{`"unclosed=`, '=', -1},
		{`no match`, '=', -1},
	} {
		if got := indexUnquoted(test.s, 0, test.target); got != test.want {
			t.Errorf("indexUnquoted(%q, %q) = %d, want %d", test.s, test.target, got, test.want)
		}
	}
}

func TestIndexTopLevel(t *testing.T) {
	for _, test := range []struct {
		s      string
		target byte
		want   int
	}{
		{`1,2`, ',', 1},
		{`[1,2],3`, ',', 5},
		{`{"a": [1,2]},3`, ',', 12},
		{`"a,b",c`, ',', 5},
		{`(1,2)`, ',', -1},
	} {
		if got := indexTopLevel(test.s, 0, test.target); got != test.want {
			t.Errorf("indexTopLevel(%q, %q) = %d, want %d", test.s, test.target, got, test.want)
		}
	}
}

func TestValueEnd(t *testing.T) {
	for _, test := range []struct {
		s    string
		want int
	}{
		{`"ab"`, 4},
		{`"ab" trailing`, 4},
		{`"a\"b"`, 6},
		{`"open`, -1},
		{`[1, [2]]`, 8},
		{`[1, [2]`, -1},
		{`{"a": 1} ; c`, 8},
		{`Vector2(1, 2)`, 13},
		{`Vector2(1, 2`, -1},
		{`bare ; comment`, 5},
		{`bare`, 4},
		{``, 0},
	} {
		if got := valueEnd(test.s); got != test.want {
			t.Errorf("valueEnd(%q) = %d, want %d", test.s, got, test.want)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"plain",
		"a\tb",
		"line1\nline2",
		`quote " and backslash \`,
		"\r\n",
	} {
		if got := unescapeString(escapeString(s)); got != s {
			t.Errorf("unescape(escape(%q)) = %q", s, got)
		}
	}
}

func TestUnescapeAppliedOnce(t *testing.T) {
	// \\n is an escaped backslash followed by n, not a newline
	if got := unescapeString(`a\\nb`); got != `a\nb` {
		t.Errorf("got %q, want %q", got, `a\nb`)
	}
	// unknown escapes keep their backslash
	if got := unescapeString(`a\qb`); got != `a\qb` {
		t.Errorf("got %q, want %q", got, `a\qb`)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := normalizeNewlines("a\r\nb\rc\nd"); got != "a\nb\nc\nd" {
		t.Errorf("got %q", got)
	}
}
