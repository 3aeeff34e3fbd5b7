package model

// Clipboard holds a whole book plus a separate multi-page selection buffer.
// A Clipboard belongs to one editing context and is not safe for concurrent
// use.
type Clipboard struct {
	Document

	// MiscPages is the staging buffer for page-range copy, cut and paste.
	MiscPages []string

	// BookInClipboard is true once the document fields hold a book.
	BookInClipboard bool
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{
		Document:  Document{Pages: make([]string, 0)},
		MiscPages: make([]string, 0),
	}
}

// Clear empties the book fields. MiscPages is left alone. Slices taken from
// Pages before the call keep their contents.
func (c *Clipboard) Clear() {
	c.Title = ""
	c.Author = ""
	c.Pages = make([]string, 0)
	c.BookInClipboard = false
}

// ClearMisc empties the multi-page buffer.
func (c *Clipboard) ClearMisc() {
	c.MiscPages = make([]string, 0)
}

// Adopt replaces the book fields with a copy of doc. A nil doc clears the
// clipboard.
func (c *Clipboard) Adopt(doc *Document) {
	if doc == nil {
		c.Clear()
		return
	}
	src := doc.Clone()
	c.Clear()
	c.Title = src.Title
	c.Author = src.Author
	c.Pages = append(c.Pages, src.Pages...)
	c.BookInClipboard = true
}

// Book returns a copy of the book fields.
func (c *Clipboard) Book() *Document {
	return c.Document.Clone()
}

// Clone returns a deep copy of the clipboard.
func (c *Clipboard) Clone() *Clipboard {
	return &Clipboard{
		Document:        *c.Document.Clone(),
		MiscPages:       append(make([]string, 0, len(c.MiscPages)), c.MiscPages...),
		BookInClipboard: c.BookInClipboard,
	}
}
