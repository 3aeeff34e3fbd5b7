package model

import (
	"fmt"
	"strings"
	"testing"
)

// pagesOf builds n pages named p0, p1, ...
func pagesOf(n int) []string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("p%d", i)
	}
	return pages
}

func equalPages(got, want []string) bool {
	return strings.Join(got, "|") == strings.Join(want, "|") && len(got) == len(want)
}

// ============================================================================
// Document Tests
// ============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", doc.PageCount())
	}
	if !doc.IsEmpty() {
		t.Error("expected new document to be empty")
	}
}

func TestDocumentClone(t *testing.T) {
	doc := &Document{Title: "T", Author: "A", Pages: []string{"one", "two"}}
	clone := doc.Clone()
	clone.Pages[0] = "changed"
	clone.Title = "X"

	if doc.Pages[0] != "one" || doc.Title != "T" {
		t.Errorf("Clone() shares state with the original: %+v", doc)
	}
}

// ============================================================================
// Clipboard Tests
// ============================================================================

func TestClipboardAdopt(t *testing.T) {
	clip := NewClipboard()
	if clip.BookInClipboard {
		t.Fatal("new clipboard should not hold a book")
	}

	doc := &Document{Title: "My Book", Author: "Jane", Pages: []string{"a", "b"}}
	clip.Adopt(doc)
	doc.Pages[0] = "mutated"

	if !clip.BookInClipboard {
		t.Error("BookInClipboard = false after Adopt")
	}
	if clip.Title != "My Book" || clip.Author != "Jane" {
		t.Errorf("got title %q author %q", clip.Title, clip.Author)
	}
	if !equalPages(clip.Pages, []string{"a", "b"}) {
		t.Errorf("Pages = %q, want [a b]", clip.Pages)
	}
}

func TestClipboardAdoptSelf(t *testing.T) {
	clip := NewClipboard()
	clip.Adopt(&Document{Title: "T", Pages: []string{"a"}})
	clip.Adopt(&clip.Document)
	if clip.Title != "T" || !equalPages(clip.Pages, []string{"a"}) {
		t.Errorf("self adopt lost data: %+v", clip.Document)
	}
}

func TestClipboardClear(t *testing.T) {
	clip := NewClipboard()
	clip.Adopt(&Document{Title: "T", Author: "A", Pages: []string{"a"}})
	clip.MiscPages = append(clip.MiscPages, "misc")

	clip.Clear()

	if clip.BookInClipboard || clip.Title != "" || clip.Author != "" || len(clip.Pages) != 0 {
		t.Errorf("Clear() left book state behind: %+v", clip)
	}
	if len(clip.MiscPages) != 1 {
		t.Errorf("Clear() should not touch MiscPages, got %q", clip.MiscPages)
	}

	clip.Adopt(nil)
	if clip.BookInClipboard {
		t.Error("Adopt(nil) should leave an empty clipboard")
	}
}

func TestClipboardClear_KeepsEarlierSlices(t *testing.T) {
	clip := NewClipboard()
	clip.Adopt(&Document{Title: "T", Pages: []string{"a", "b"}})
	book := NewBook([]string{"x", "y"})
	book.CopyRange(clip)

	pages := clip.Pages
	misc := clip.MiscPages

	clip.Adopt(&Document{Title: "U", Pages: []string{"c", "d"}})
	book.Current = 1
	book.CopyRange(clip)

	if !equalPages(pages, []string{"a", "b"}) {
		t.Errorf("earlier Pages slice = %q, want [a b]", pages)
	}
	if !equalPages(misc, []string{"x"}) {
		t.Errorf("earlier MiscPages slice = %q, want [x]", misc)
	}
}

// ============================================================================
// Book Range Tests
// ============================================================================

func TestBookRange(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		current  int
		from, to int
	}{
		{"both unset", Unset, Unset, 1, 1, 1},
		{"one unset", 0, Unset, 2, 2, 2},
		{"ordered", 0, 2, 1, 0, 2},
		{"reversed", 2, 1, 0, 1, 2},
		{"out of bounds", 5, 2, 2, 2, 2},
		{"negative", -4, 1, 0, 0, 0},
		{"stale current", Unset, Unset, 9, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewBook(pagesOf(3))
			book.SelectA(tt.a)
			book.SelectB(tt.b)
			book.Current = tt.current
			from, to := book.Range()
			if from != tt.from || to != tt.to {
				t.Errorf("Range() = (%d, %d), want (%d, %d)", from, to, tt.from, tt.to)
			}
		})
	}
}

func TestBookCopyRange(t *testing.T) {
	book := NewBook(pagesOf(5))
	clip := NewClipboard()
	clip.MiscPages = []string{"old"}

	book.SelectA(3)
	book.SelectB(1)
	if n := book.CopyRange(clip); n != 3 {
		t.Errorf("CopyRange() = %d, want 3", n)
	}
	if !equalPages(clip.MiscPages, []string{"p1", "p2", "p3"}) {
		t.Errorf("MiscPages = %q, want [p1 p2 p3]", clip.MiscPages)
	}
	if book.PageCount() != 5 {
		t.Errorf("CopyRange() changed the book: %q", book.Pages)
	}
}

func TestBookCutRange(t *testing.T) {
	book := NewBook(pagesOf(5))
	clip := NewClipboard()

	book.SelectA(1)
	book.SelectB(2)
	if n := book.CutRange(clip); n != 2 {
		t.Errorf("CutRange() = %d, want 2", n)
	}
	if !equalPages(clip.MiscPages, []string{"p1", "p2"}) {
		t.Errorf("MiscPages = %q, want [p1 p2]", clip.MiscPages)
	}
	if !equalPages(book.Pages, []string{"p0", "p3", "p4"}) {
		t.Errorf("Pages = %q, want [p0 p3 p4]", book.Pages)
	}
	if book.SelectionA != Unset || book.SelectionB != Unset {
		t.Error("CutRange() should reset the selection")
	}
}

func TestBookDeleteRange(t *testing.T) {
	tests := []struct {
		name    string
		pages   int
		current int
		x, y    int
		want    []string
		wantCur int
	}{
		{"middle", 5, 0, 1, 3, []string{"p0", "p4"}, 0},
		{"reversed", 5, 0, 3, 1, []string{"p0", "p4"}, 0},
		{"out of bounds degrades to current", 3, 2, 5, 2, []string{"p0", "p1"}, 1},
		{"unset degrades to current", 3, 1, Unset, Unset, []string{"p0", "p2"}, 0},
		{"everything", 3, 0, 0, 2, []string{""}, 0},
		{"single page book", 1, 0, 0, 0, []string{""}, 0},
		{"tail", 4, 3, 2, 3, []string{"p0", "p1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewBook(pagesOf(tt.pages))
			book.Current = tt.current
			book.DeleteRange(tt.x, tt.y)
			if !equalPages(book.Pages, tt.want) {
				t.Errorf("Pages = %q, want %q", book.Pages, tt.want)
			}
			if book.Current != tt.wantCur {
				t.Errorf("Current = %d, want %d", book.Current, tt.wantCur)
			}
		})
	}
}

func TestBookPaste(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		want []string
	}{
		{"start", 0, []string{"x", "y", "p0", "p1", "p2"}},
		{"middle", 1, []string{"p0", "x", "y", "p1", "p2"}},
		{"clamped high", 10, []string{"p0", "p1", "x", "y", "p2"}},
		{"clamped low", -3, []string{"x", "y", "p0", "p1", "p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewBook(pagesOf(3))
			clip := NewClipboard()
			clip.MiscPages = []string{"x", "y"}
			if n := book.Paste(clip, tt.pos); n != 2 {
				t.Errorf("Paste() = %d, want 2", n)
			}
			if !equalPages(book.Pages, tt.want) {
				t.Errorf("Pages = %q, want %q", book.Pages, tt.want)
			}
		})
	}
}

func TestBookPasteRespectsMaxPages(t *testing.T) {
	book := NewBook(pagesOf(3))
	book.MaxPages = 4
	clip := NewClipboard()
	clip.MiscPages = []string{"x", "y"}

	if n := book.Paste(clip, 0); n != 1 {
		t.Errorf("Paste() = %d, want 1", n)
	}
	if book.PageCount() != 4 {
		t.Errorf("PageCount() = %d, want 4", book.PageCount())
	}
}

func TestBookCopyAndPasteBook(t *testing.T) {
	book := NewBook([]string{"a", "b"})
	book.Title = "Title"
	clip := NewClipboard()
	clip.Author = "stale"

	book.CopyBook(clip)
	if !clip.BookInClipboard || clip.Title != "Title" || clip.Author != "" {
		t.Errorf("CopyBook() clipboard = %+v", clip)
	}

	other := NewBook(nil)
	other.Current = 5
	other.PasteBook(clip)
	if other.Title != "Title" || !equalPages(other.Pages, []string{"a", "b"}) {
		t.Errorf("PasteBook() book = %+v", other)
	}
	if other.Current != 1 {
		t.Errorf("Current = %d, want 1", other.Current)
	}

	clip.Clear()
	other.PasteBook(clip)
	if !equalPages(other.Pages, []string{""}) {
		t.Errorf("pasting an empty book should leave one empty page, got %q", other.Pages)
	}
}

func TestBookInsertPage(t *testing.T) {
	book := NewBook([]string{"a", "b"})
	book.Current = 1
	if !book.InsertPage() {
		t.Fatal("InsertPage() = false, want true")
	}
	if !equalPages(book.Pages, []string{"a", "", "b"}) {
		t.Errorf("Pages = %q", book.Pages)
	}

	full := NewBook(pagesOf(MaxPages))
	if full.InsertPage() {
		t.Error("InsertPage() on a full book = true, want false")
	}
}

func TestBookTrimAndAppend(t *testing.T) {
	book := NewBook([]string{"  padded \n"})
	book.TrimPage()
	if book.CurrentPage() != "padded" {
		t.Errorf("CurrentPage() = %q, want padded", book.CurrentPage())
	}

	if n := book.AppendPages("sig1", "sig2"); n != 2 {
		t.Errorf("AppendPages() = %d, want 2", n)
	}
	if !equalPages(book.Pages, []string{"padded", "sig1", "sig2"}) {
		t.Errorf("Pages = %q", book.Pages)
	}
	doc := book.Document()
	doc.Pages[0] = "changed"
	if book.Pages[0] != "padded" {
		t.Error("Document() shares pages with the book")
	}
}
