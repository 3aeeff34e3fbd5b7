package ghb

import "strings"

// Structural tokens.
const (
	LineBreak = "##"
	PageBreak = ">>>>"
	Escape    = `\`
)

// Escaped tokens are replaced by these runes once, on the raw body, so that
// no later pass can mistake them for structure or create new escapes by
// joining a backslash to a token.
const (
	markLineBreak = '\uE000'
	markPageBreak = '\uE001'
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokLineBreak
	tokPageBreak
)

// tokenAt classifies the token starting at s[i] and returns its length in
// bytes. Text tokens are a single byte; the structural tokens are ASCII so a
// byte scan never splits a multi-byte rune that matters.
func tokenAt(s string, i int) (tokenKind, int) {
	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, LineBreak):
		return tokLineBreak, len(LineBreak)
	case strings.HasPrefix(rest, PageBreak):
		return tokPageBreak, len(PageBreak)
	}
	return tokText, 1
}

// MarkEscapes replaces every backslash-escaped linebreak or pagebreak token
// with a marker rune that the decoding passes treat as plain text. Only the
// single backslash directly before a token is consumed.
func MarkEscapes(s string) string {
	if !strings.Contains(s, Escape) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, Escape+LineBreak):
			b.WriteRune(markLineBreak)
			i += len(Escape + LineBreak)
		case strings.HasPrefix(rest, Escape+PageBreak):
			b.WriteRune(markPageBreak)
			i += len(Escape + PageBreak)
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// RestoreEscapes turns the markers left by MarkEscapes into literal tokens.
func RestoreEscapes(s string) string {
	if !strings.ContainsRune(s, markLineBreak) && !strings.ContainsRune(s, markPageBreak) {
		return s
	}
	return strings.NewReplacer(
		string(markLineBreak), LineBreak,
		string(markPageBreak), PageBreak,
	).Replace(s)
}

// Unescape resolves escaped tokens to their literal text.
func Unescape(s string) string {
	return RestoreEscapes(MarkEscapes(s))
}

// EscapeTokens prefixes every linebreak and pagebreak token in s with a
// backslash so it decodes as literal text.
func EscapeTokens(s string) string {
	if !strings.Contains(s, LineBreak) && !strings.Contains(s, PageBreak) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], LineBreak):
			b.WriteString(Escape + LineBreak)
			i += len(LineBreak)
		case strings.HasPrefix(s[i:], PageBreak):
			b.WriteString(Escape + PageBreak)
			i += len(PageBreak)
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// unterminatedBlock returns the index of a block comment opener in line that
// is not closed on the same line, or -1.
func unterminatedBlock(line string) int {
	for i := 0; i < len(line); {
		switch {
		case strings.HasPrefix(line[i:], "//"):
			return -1
		case strings.HasPrefix(line[i:], "/*"):
			j := strings.Index(line[i+2:], "*/")
			if j < 0 {
				return i
			}
			i += 2 + j + 2
		default:
			i++
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
