// Package ghostwriter loads and saves books written in the GHB markup, and
// imports Bookworm exports, plain text and HTML pages as books.
//
// Basic usage:
//
//	doc, statuses, err := ghostwriter.Load("books/MyBook.ghb")
//	if err != nil {
//	    // handle error
//	}
//	if len(statuses) > 0 {
//	    log.Println(ghostwriter.FormatStatuses(statuses))
//	}
//
// With options:
//
//	doc, _, err := ghostwriter.Open("export.txt").
//	    LineWidth(200).
//	    MaxPages(50).
//	    Load()
//
// Saving writes a GHB file that Load reads back:
//
//	err := ghostwriter.Save(doc.Title, doc.Author, doc.Pages, "out.ghb")
//
// The decoders and the encoder are also available on their own in the ghb,
// bookworm, plaintext and htmldoc packages.
package ghostwriter

import (
	"github.com/tsawler/ghostwriter/model"
)

// Open returns a Loader for the book at path with the default options.
// Nothing is read until Load is called.
//
// Example:
//
//	doc, _, err := ghostwriter.Open("book.ghb").Load()
func Open(path string) *Loader {
	return &Loader{
		path:    path,
		options: defaultOptions(),
	}
}

// Load reads the book at path with the default options.
func Load(path string) (*model.Document, []Status, error) {
	return Open(path).Load()
}

// Must is a helper that wraps a call to Load and panics if the error is
// non-nil. It discards the statuses and returns just the value. It is
// intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	doc := ghostwriter.Must(ghostwriter.Load("book.ghb"))
func Must[T any](val T, _ []Status, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
