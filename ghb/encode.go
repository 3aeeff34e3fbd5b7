package ghb

import (
	"strings"
	"time"

	"github.com/tsawler/ghostwriter/layout"
)

// TimestampLayout formats the save time in the provenance comment.
const TimestampLayout = "2006-01-02T150405Z"

// Separator is the comment line written between the header and the pages.
const Separator = "//======================================="

// Encoder turns a book back into GHB lines.
type Encoder struct {
	Splitter layout.LineSplitter

	// Now supplies the save time; nil means time.Now.
	Now func() time.Time
}

// NewEncoder returns an encoder that wraps pages to the book line width.
func NewEncoder() *Encoder {
	return &Encoder{Splitter: layout.NewLineSplitter()}
}

// Encode returns the GHB lines for a book. Empty title and author values are
// omitted. Every wrapped line of a page ends with a linebreak token and
// pages are separated by a pagebreak line, so a blank page is a lone
// linebreak.
func (e *Encoder) Encode(title, author string, pages []string) []string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	out := []string{"//Book saved in GHB format at " + now().UTC().Format(TimestampLayout)}
	if title != "" {
		out = append(out, TitleDirective+title)
	}
	if author != "" {
		out = append(out, AuthorDirective+author)
	}
	out = append(out, Separator)

	for i, page := range pages {
		for _, line := range e.Splitter.Split(normalizePage(page)) {
			line = EscapeTokens(line)
			// A trailing backslash would escape the linebreak; the space is
			// trimmed again on decode.
			if strings.HasSuffix(line, Escape) {
				line += " "
			}
			out = append(out, line+LineBreak)
		}
		if i < len(pages)-1 {
			out = append(out, PageBreak)
		}
	}
	return out
}

// normalizePage strips quote pairs wrapping the whole page and turns escaped
// newlines into real ones.
func normalizePage(page string) string {
	for len(page) >= 2 && strings.HasPrefix(page, `"`) && strings.HasSuffix(page, `"`) {
		page = page[1 : len(page)-1]
	}
	return strings.ReplaceAll(page, `\n`, "\n")
}
