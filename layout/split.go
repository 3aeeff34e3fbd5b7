package layout

import (
	"strings"
	"unicode/utf8"
)

// DefaultLineWidth is the usable width of a book line in pixels.
const DefaultLineWidth = 116

// Line is one wrapped line of text.
type Line struct {
	Text string

	// Break is the text consumed where the line ends: "\n" at an explicit
	// newline or the end of the text, " " when wrapped at a space and ""
	// when a word was split between glyphs.
	Break string
}

// Hard reports whether the line ends at an explicit newline.
func (l Line) Hard() bool {
	return l.Break == "\n"
}

// LineSplitter wraps text to a maximum rendered width.
type LineSplitter struct {
	Metrics  Metrics
	MaxWidth int
}

// NewLineSplitter returns a splitter using the book font and line width.
func NewLineSplitter() LineSplitter {
	return LineSplitter{
		Metrics:  MinecraftMetrics{},
		MaxWidth: DefaultLineWidth,
	}
}

// Split wraps text into lines no wider than MaxWidth. Newlines always break;
// otherwise lines break at the last space that fits, and a word that is wider
// than the whole line is broken between glyphs. An empty paragraph yields one
// empty line.
func (s LineSplitter) Split(text string) []string {
	lines := s.Lines(text)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Lines is like Split but keeps the separator consumed at each break.
func (s LineSplitter) Lines(text string) []Line {
	var lines []Line
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, s.wrap(strings.TrimSuffix(para, "\r"))...)
	}
	return lines
}

// wrap breaks a single paragraph.
func (s LineSplitter) wrap(para string) []Line {
	runes := []rune(para)
	limit := s.MaxWidth
	if len(runes) == 0 || limit <= 0 {
		return []Line{{Text: para, Break: "\n"}}
	}
	adv := s.advances(runes)

	var lines []Line
	start, width, lastSpace := 0, 0, -1
	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' && width+adv[i] > limit {
			lines = append(lines, Line{Text: string(runes[start:i]), Break: " "})
			start, width, lastSpace = i+1, 0, -1
			continue
		}
		for width+adv[i] > limit && i > start {
			if lastSpace > start {
				lines = append(lines, Line{Text: string(runes[start:lastSpace]), Break: " "})
				start = lastSpace + 1
			} else {
				lines = append(lines, Line{Text: string(runes[start:i])})
				start = i
			}
			lastSpace = -1
			width = sum(adv[start:i])
		}
		if runes[i] == ' ' {
			lastSpace = i
		}
		width += adv[i]
	}
	return append(lines, Line{Text: string(runes[start:]), Break: "\n"})
}

// advances computes the width of every rune, honouring formatting codes.
func (s LineSplitter) advances(runes []rune) []int {
	adv := make([]int, len(runes))
	bold, code := false, false
	for i, r := range runes {
		switch {
		case code:
			switch r {
			case 'l', 'L':
				bold = true
			case 'r', 'R':
				bold = false
			}
			code = false
		case r == FormatCode:
			code = true
		default:
			adv[i] = s.Metrics.Advance(r)
			if bold && r != ' ' {
				adv[i]++
			}
		}
	}
	return adv
}

func sum(v []int) int {
	t := 0
	for _, n := range v {
		t += n
	}
	return t
}

// Book page limits.
const (
	DefaultMaxChars = 256
	DefaultMaxLines = 14
	DefaultMaxPages = 100
)

// Paginator splits text into pages that respect a character budget, a line
// budget and a page count.
type Paginator struct {
	Splitter LineSplitter
	MaxChars int // per page, including separators; <= 0 means no limit
	MaxLines int // per page; <= 0 means no limit
	MaxPages int // per call; <= 0 means no limit
}

// NewPaginator returns a paginator with the book limits.
func NewPaginator() Paginator {
	return Paginator{
		Splitter: NewLineSplitter(),
		MaxChars: DefaultMaxChars,
		MaxLines: DefaultMaxLines,
		MaxPages: DefaultMaxPages,
	}
}

// Paginate splits text into pages. Lines within a page are joined back with
// the separator consumed when they were wrapped, so a page holds the text as
// the author wrote it. Trailing whitespace of each page is removed and blank
// text yields no pages.
func (p Paginator) Paginate(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		pages     []string
		page      strings.Builder
		lineCount int
		charCount int
		prevBreak string
	)
	flush := func() {
		pages = append(pages, strings.TrimRight(page.String(), " \t\r\n"))
		page.Reset()
		lineCount, charCount = 0, 0
	}

	for _, line := range p.lines(text) {
		sep := ""
		if lineCount > 0 {
			sep = prevBreak
		}
		n := utf8.RuneCountInString(sep) + utf8.RuneCountInString(line.Text)
		if lineCount > 0 && ((p.MaxLines > 0 && lineCount >= p.MaxLines) ||
			(p.MaxChars > 0 && charCount+n > p.MaxChars)) {
			flush()
			sep = ""
			n = utf8.RuneCountInString(line.Text)
		}
		page.WriteString(sep)
		page.WriteString(line.Text)
		lineCount++
		charCount += n
		prevBreak = line.Break
	}
	if lineCount > 0 {
		flush()
	}

	for len(pages) > 0 && pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	if p.MaxPages > 0 && len(pages) > p.MaxPages {
		pages = pages[:p.MaxPages]
	}
	return pages
}

// lines wraps text and splits any line longer than the character budget.
func (p Paginator) lines(text string) []Line {
	wrapped := p.Splitter.Lines(text)
	if p.MaxChars <= 0 {
		return wrapped
	}
	out := make([]Line, 0, len(wrapped))
	for _, l := range wrapped {
		runes := []rune(l.Text)
		for len(runes) > p.MaxChars {
			out = append(out, Line{Text: string(runes[:p.MaxChars])})
			runes = runes[p.MaxChars:]
		}
		out = append(out, Line{Text: string(runes), Break: l.Break})
	}
	return out
}

// Truncate shortens text to at most maxLen runes, marking the cut with
// ellipsis. With fromEnd the end of the text is kept instead of the start.
func Truncate(text, ellipsis string, maxLen int, fromEnd bool) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 0 {
		return ""
	}
	keep := maxLen - utf8.RuneCountInString(ellipsis)
	if keep <= 0 {
		return string([]rune(ellipsis)[:maxLen])
	}
	if fromEnd {
		return ellipsis + string(runes[len(runes)-keep:])
	}
	return string(runes[:keep]) + ellipsis
}
