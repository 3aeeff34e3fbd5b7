// Package plaintext imports ordinary text files as books.
//
// The text is kept as written apart from pagination. An author can force a
// page boundary with the PageBreak marker on its own or inline.
package plaintext

import (
	"errors"
	"strings"

	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/model"
)

// PageBreak forces a page boundary in plain text.
const PageBreak = ">>>><<<<>>>><<<<"

// ErrEmptyInput is returned when there are no lines to decode.
var ErrEmptyInput = errors.New("plaintext: empty input")

// Decoder turns text lines into a Document without a title or author.
type Decoder struct {
	Paginator layout.Paginator
}

// NewDecoder returns a decoder that fits text to book pages.
func NewDecoder() *Decoder {
	return &Decoder{Paginator: layout.NewPaginator()}
}

// Decode joins lines with newlines, splits on PageBreak and paginates each
// chunk. The newline directly after a marker is dropped.
func (d *Decoder) Decode(lines []string) (*model.Document, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	chunks := strings.Split(strings.Join(lines, "\n"), PageBreak)
	doc := model.NewDocument()
	for i, chunk := range chunks {
		if i > 0 {
			// The marker usually sits on its own line.
			chunk = strings.TrimPrefix(chunk, "\n")
		}
		doc.AddPages(d.Paginator.Paginate(chunk)...)
	}

	logging.Debug("decoded plain text", "lines", len(lines), "pages", doc.PageCount())
	return doc, nil
}
