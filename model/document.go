package model

// MaxTitleLength is the longest title a book can carry.
const MaxTitleLength = 16

// Document is a decoded book.
type Document struct {
	Title  string
	Author string

	// Pages in reading order. Each page may contain newlines.
	Pages []string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]string, 0),
	}
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// AddPages appends pages in order.
func (d *Document) AddPages(pages ...string) {
	d.Pages = append(d.Pages, pages...)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		Title:  d.Title,
		Author: d.Author,
		Pages:  append(make([]string, 0, len(d.Pages)), d.Pages...),
	}
}

// IsEmpty reports whether the document has no title, author or pages.
func (d *Document) IsEmpty() bool {
	return d.Title == "" && d.Author == "" && len(d.Pages) == 0
}
