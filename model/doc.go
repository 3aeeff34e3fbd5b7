// Package model provides the in-memory representation of a book.
//
// All decoders produce a [Document]: a title, an author and an ordered list
// of page texts. Decoders never mutate shared state; adopting a decoded
// document into an editing session is an explicit step:
//
//	doc, err := decoder.Decode(lines)
//	if err != nil {
//	    // the clipboard is untouched
//	}
//	clip.Adopt(doc)
//
// # Clipboard
//
// A [Clipboard] carries a whole book between loading and editing, plus an
// independent multi-page buffer (MiscPages) used by page-range copy, cut
// and paste.
//
// # Book
//
// A [Book] is the editable page sequence. Its range operations take two
// selection endpoints that may be stale or unset ([Unset]); such selections
// degrade to the current page instead of failing:
//
//	book := model.NewBook(doc.Pages)
//	book.SelectA(2)
//	book.SelectB(5)
//	book.CutRange(clip)
//	book.Paste(clip, 0)
package model
