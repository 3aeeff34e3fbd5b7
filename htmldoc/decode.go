package htmldoc

import (
	"io"
	"strings"

	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/model"
)

// Decoder turns an HTML page into a Document.
type Decoder struct {
	Paginator layout.Paginator
	Options   Options
}

// NewDecoder returns a decoder that fits text to book pages.
func NewDecoder() *Decoder {
	return &Decoder{
		Paginator: layout.NewPaginator(),
		Options:   DefaultOptions(),
	}
}

// Decode parses HTML from r. Paragraphs are separated by blank lines and
// every horizontal rule starts a new page.
func (d *Decoder) Decode(r io.Reader) (*model.Document, error) {
	rd, err := OpenReaderWithOptions(r, d.Options)
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	doc.Title = layout.Truncate(rd.Title(), "..", model.MaxTitleLength, false)
	doc.Author = rd.Author()
	sections := rd.Sections()
	for _, section := range sections {
		doc.AddPages(d.Paginator.Paginate(strings.Join(section, "\n\n"))...)
	}

	logging.Debug("decoded HTML book", "sections", len(sections), "pages", doc.PageCount())
	return doc, nil
}
