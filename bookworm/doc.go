// Package bookworm imports books written in the Bookworm text format.
//
// A Bookworm file is a fixed sequence of fields, one per line:
//
//	46
//	Valentino Rossi - Portrait of a speed god
//	Mat Oxley
//	|!|hiddenkey0|hiddendata0
//	The first time you ride the 500 ... ::This is the next paragraph.
//
// The first line is a numeric id and serves only as a fingerprint. The second
// and third lines are the title and author, any |!| lines carry hidden
// metadata that is discarded, and the last line holds the whole book text.
// Within the text a whitespace-prefixed :: starts a new paragraph and two or
// more of them in a row start a new page.
//
// The Bookworm mod itself also treats a bare :: as a paragraph marker. This
// package does not, so text such as "12::30" stays intact.
//
// Decoding never fails. Input that does not look like a Bookworm file yields
// a Result with Recognized set to false so callers can try another format.
package bookworm
