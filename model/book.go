package model

import "strings"

// Unset marks a selection endpoint that has not been chosen.
const Unset = -1

// MaxPages is the most pages a book can hold.
const MaxPages = 100

// Book is an editable sequence of pages with a current page and a two-ended
// page selection. Every operation clamps its indices; none of them fail on a
// stale or unset selection.
type Book struct {
	Title string
	Pages []string

	// Current is the index of the page being edited.
	Current int

	// SelectionA and SelectionB are the selection endpoints, either Unset
	// or a page index, in any order.
	SelectionA int
	SelectionB int

	// MaxPages limits growth by insert, paste and append; <= 0 means no limit.
	MaxPages int
}

// NewBook returns a book holding a copy of pages. A book always has at least
// one page.
func NewBook(pages []string) *Book {
	b := &Book{
		Pages:      append(make([]string, 0, len(pages)), pages...),
		SelectionA: Unset,
		SelectionB: Unset,
		MaxPages:   MaxPages,
	}
	b.ensurePage()
	return b
}

// PageCount returns the total number of pages
func (b *Book) PageCount() int {
	return len(b.Pages)
}

// CurrentPage returns the text of the current page.
func (b *Book) CurrentPage() string {
	if len(b.Pages) == 0 {
		return ""
	}
	return b.Pages[b.current()]
}

// Document returns a copy of the book as a Document.
func (b *Book) Document() *Document {
	return &Document{
		Title: b.Title,
		Pages: append(make([]string, 0, len(b.Pages)), b.Pages...),
	}
}

// SelectA sets the first selection endpoint.
func (b *Book) SelectA(i int) {
	b.SelectionA = i
}

// SelectB sets the second selection endpoint.
func (b *Book) SelectB(i int) {
	b.SelectionB = i
}

// ResetSelection unsets both selection endpoints.
func (b *Book) ResetSelection() {
	b.SelectionA = Unset
	b.SelectionB = Unset
}

// Range returns the effective selection as an inclusive, ordered range. When
// either endpoint is unset or out of bounds the current page is used.
func (b *Book) Range() (from, to int) {
	return b.rangeOf(b.SelectionA, b.SelectionB)
}

func (b *Book) rangeOf(x, y int) (from, to int) {
	if !b.valid(x) || !b.valid(y) {
		cur := b.current()
		return cur, cur
	}
	if x > y {
		x, y = y, x
	}
	return x, y
}

func (b *Book) valid(i int) bool {
	return i >= 0 && i < len(b.Pages)
}

// current returns Current clamped to the page list.
func (b *Book) current() int {
	switch {
	case b.Current < 0 || len(b.Pages) == 0:
		return 0
	case b.Current >= len(b.Pages):
		return len(b.Pages) - 1
	}
	return b.Current
}

func (b *Book) ensurePage() {
	if len(b.Pages) == 0 {
		b.Pages = append(b.Pages, "")
	}
}

// CopyRange replaces clip.MiscPages with the selected pages and returns how
// many were copied.
func (b *Book) CopyRange(clip *Clipboard) int {
	clip.ClearMisc()
	if len(b.Pages) == 0 {
		return 0
	}
	from, to := b.Range()
	clip.MiscPages = append(clip.MiscPages, b.Pages[from:to+1]...)
	return to - from + 1
}

// CutRange copies the selected pages to clip.MiscPages and removes them from
// the book. It returns the number of pages cut.
func (b *Book) CutRange(clip *Clipboard) int {
	n := b.CopyRange(clip)
	if n == 0 {
		return 0
	}
	from, to := b.Range()
	b.DeleteRange(from, to)
	return n
}

// DeleteRange removes pages x through y inclusive, in either order. An
// out-of-bounds endpoint degrades to the current page. Deleting every page
// leaves a single empty page. The selection is reset and the current page
// moves to the page before the removed range.
func (b *Book) DeleteRange(x, y int) int {
	defer b.ResetSelection()
	if len(b.Pages) == 0 {
		b.ensurePage()
		return 0
	}
	from, to := b.rangeOf(x, y)
	b.Pages = append(b.Pages[:from], b.Pages[to+1:]...)
	b.ensurePage()
	b.Current = from - 1
	if b.Current < 0 {
		b.Current = 0
	}
	return to - from + 1
}

// Paste inserts clip.MiscPages at pos, shifting the pages at and after pos to
// the right. pos is clamped to an existing page. Pages that would grow the
// book beyond MaxPages are dropped; the number inserted is returned.
func (b *Book) Paste(clip *Clipboard, pos int) int {
	n := b.room(len(clip.MiscPages))
	if n == 0 {
		return 0
	}
	switch {
	case pos < 0 || len(b.Pages) == 0:
		pos = 0
	case pos >= len(b.Pages):
		pos = len(b.Pages) - 1
	}

	pages := make([]string, 0, len(b.Pages)+n)
	pages = append(pages, b.Pages[:pos]...)
	pages = append(pages, clip.MiscPages[:n]...)
	pages = append(pages, b.Pages[pos:]...)
	b.Pages = pages
	return n
}

// room returns how many of want pages still fit in the book.
func (b *Book) room(want int) int {
	if b.MaxPages <= 0 {
		return want
	}
	free := b.MaxPages - len(b.Pages)
	if free < 0 {
		free = 0
	}
	if want > free {
		return free
	}
	return want
}

// CopyBook copies the whole book into the clipboard. The author is cleared;
// a book being edited has no author until it is signed.
func (b *Book) CopyBook(clip *Clipboard) {
	clip.Adopt(&Document{Title: b.Title, Pages: b.Pages})
}

// PasteBook replaces the book with the clipboard's book.
func (b *Book) PasteBook(clip *Clipboard) {
	b.Title = clip.Title
	b.Pages = append(b.Pages[:0:0], clip.Pages...)
	b.ensurePage()
	b.Current = b.current()
	b.ResetSelection()
}

// InsertPage inserts an empty page before the current page. It reports false
// when the book is already full.
func (b *Book) InsertPage() bool {
	if b.room(1) == 0 {
		return false
	}
	cur := b.current()
	if len(b.Pages) == 0 {
		cur = 0
	}
	b.Pages = append(b.Pages[:cur], append([]string{""}, b.Pages[cur:]...)...)
	return true
}

// TrimPage removes leading and trailing whitespace from the current page.
func (b *Book) TrimPage() {
	if len(b.Pages) == 0 {
		return
	}
	cur := b.current()
	b.Pages[cur] = strings.TrimSpace(b.Pages[cur])
}

// AppendPages adds pages at the end of the book, such as a signature, and
// returns how many fit.
func (b *Book) AppendPages(pages ...string) int {
	n := b.room(len(pages))
	b.Pages = append(b.Pages, pages[:n]...)
	return n
}
