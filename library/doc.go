// Package library manages the directories books are saved to and loaded
// from.
//
// Dirs describes the standard layout under a root directory: SavedBooks for
// books and Signatures for the signature appended to a finished book.
// FileName derives a save name from a book's title and author. Listing
// caches a directory listing for a file browser and re-reads it only when
// asked to. Pack and Unpack back the books of a directory up to an
// xz-compressed tar archive.
package library
