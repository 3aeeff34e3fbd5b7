package ghb

import (
	"errors"
	"strings"

	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/model"
)

// ErrEmptyInput is returned when there are no lines to decode.
var ErrEmptyInput = errors.New("ghb: empty input")

// Header directive keywords.
const (
	TitleDirective  = "title:"
	AuthorDirective = "author:"
)

// Header holds the directives found by ExtractHeader and the remaining body
// text.
type Header struct {
	Title  string
	Author string

	// Body is every line that was not consumed as a directive, each followed
	// by a newline, plus any block comment opened on a directive line.
	Body string
}

// ExtractHeader consumes the first title: and author: lines. Their values are
// comment-stripped and trimmed. A block comment left open on a directive line
// is carried into the body so that it still hides the text that follows.
func ExtractHeader(lines []string) Header {
	var (
		h                     Header
		body                  strings.Builder
		seenTitle, seenAuthor bool
	)
	for _, line := range lines {
		switch {
		case !seenTitle && hasPrefixFold(line, TitleDirective):
			seenTitle = true
			h.Title = headerValue(line[len(TitleDirective):])
		case !seenAuthor && hasPrefixFold(line, AuthorDirective):
			seenAuthor = true
			h.Author = headerValue(line[len(AuthorDirective):])
		default:
			body.WriteString(line)
			body.WriteByte('\n')
			continue
		}
		if i := unterminatedBlock(line); i >= 0 {
			body.WriteString(line[i:])
			body.WriteByte('\n')
		}
	}
	h.Body = body.String()
	return h
}

func headerValue(v string) string {
	return strings.TrimSpace(RestoreEscapes(CollapseNewlines(StripComments(MarkEscapes(v)))))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// StripComments removes comments in two passes. The first drops every //
// comment up to (not including) its line terminator, so a // inside a block
// comment can hide the block's closing */. The second drops /* */ comments,
// which may span lines and run to the end of the text when unterminated. If
// a */ appears before any /*, the text is taken to open inside a comment and
// everything up to that */ is removed. Any later unmatched */ is dropped.
// Stripping twice gives the same text as stripping once.
func StripComments(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	return stripBlockComments(stripLineComments(s))
}

func stripLineComments(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}
	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], "//") {
			out.WriteByte(s[i])
			i++
			continue
		}
		j := strings.IndexAny(s[i:], "\r\n")
		if j < 0 {
			break
		}
		i += j
	}
	return out.String()
}

func stripBlockComments(s string) string {
	if !strings.Contains(s, "/*") && !strings.Contains(s, "*/") {
		return s
	}
	var (
		out      strings.Builder
		seenOpen bool
		dangling = true
	)
	out.Grow(len(s))
	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "/*"):
			seenOpen = true
			j := strings.Index(rest[2:], "*/")
			if j < 0 {
				i = len(s)
			} else {
				i += 2 + j + 2
			}
		case strings.HasPrefix(rest, "*/"):
			if dangling && !seenOpen {
				out.Reset()
			}
			dangling = false
			i += 2
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// TrimBeforeTokens removes tabs, spaces, carriage returns and newlines
// immediately before a linebreak or pagebreak token. Escaped tokens must
// already be marked with MarkEscapes.
func TrimBeforeTokens(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		kind, n := tokenAt(s, i)
		if kind == tokLineBreak || kind == tokPageBreak {
			for len(out) > 0 && isSpace(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
		}
		out = append(out, s[i:i+n]...)
		i += n
	}
	return string(out)
}

// CollapseNewlines removes every carriage return and newline.
func CollapseNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}

// SubstituteLinebreaks replaces every linebreak token with a newline.
func SubstituteLinebreaks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		kind, n := tokenAt(s, i)
		if kind == tokLineBreak {
			b.WriteByte('\n')
		} else {
			b.WriteString(s[i : i+n])
		}
		i += n
	}
	return b.String()
}

// SplitPages splits s on pagebreak tokens and turns the escape markers in
// each piece back into literal tokens.
func SplitPages(s string) []string {
	var (
		pages []string
		b     strings.Builder
	)
	for i := 0; i < len(s); {
		kind, n := tokenAt(s, i)
		if kind == tokPageBreak {
			pages = append(pages, RestoreEscapes(b.String()))
			b.Reset()
		} else {
			b.WriteString(s[i : i+n])
		}
		i += n
	}
	return append(pages, RestoreEscapes(b.String()))
}

// Decoder turns GHB lines into a Document.
type Decoder struct {
	Paginator layout.Paginator
}

// NewDecoder returns a decoder that fits text to book pages.
func NewDecoder() *Decoder {
	return &Decoder{Paginator: layout.NewPaginator()}
}

// Decode parses lines. Any text is valid GHB, so the only failure is empty
// input. Text with no content decodes to a document with no pages. A chunk
// between pagebreaks that holds only linebreaks is a blank page; a chunk
// with nothing but spaces is dropped, so repeated pagebreaks collapse.
func (d *Decoder) Decode(lines []string) (*model.Document, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	h := ExtractHeader(lines)
	body := MarkEscapes(h.Body)
	body = StripComments(body)
	body = TrimBeforeTokens(body)
	body = CollapseNewlines(body)
	body = SubstituteLinebreaks(body)
	chunks := SplitPages(body)

	doc := model.NewDocument()
	doc.Title = layout.Truncate(h.Title, "..", model.MaxTitleLength, false)
	doc.Author = h.Author
	for _, chunk := range chunks {
		pages := d.Paginator.Paginate(chunk)
		if len(pages) == 0 && strings.Contains(chunk, "\n") {
			pages = []string{""}
		}
		doc.AddPages(pages...)
	}

	logging.Debug("decoded GHB book",
		"lines", len(lines),
		"chunks", len(chunks),
		"pages", doc.PageCount())
	return doc, nil
}
