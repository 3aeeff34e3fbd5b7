package library

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tsawler/ghostwriter/format"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name    string
	Path    string
	Dir     bool
	Size    int64
	ModTime time.Time

	// Format is the book format implied by the file name; Unknown for
	// directories and other files.
	Format format.Format
}

// Loadable reports whether the entry is a file in a format that can be
// loaded.
func (e Entry) Loadable() bool {
	return !e.Dir && e.Format != format.Unknown
}

// Listing caches the contents of the most recently listed directory. It is
// not safe for concurrent use.
type Listing struct {
	path    string
	entries []Entry
	valid   bool
}

// List returns the entries of dir, directories first and then files, each
// in name order. The previous result is reused when dir is the directory
// listed last, unless forceRefresh is set or Invalidate was called.
func (l *Listing) List(dir string, forceRefresh bool) ([]Entry, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("library: listing %s: %w", dir, err)
	}
	if l.valid && !forceRefresh && abs == l.path {
		return l.entries, nil
	}

	entries, err := readEntries(abs)
	if err != nil {
		l.Invalidate()
		return nil, err
	}
	l.path, l.entries, l.valid = abs, entries, true
	return entries, nil
}

// Path returns the directory of the cached listing, or "" when there is none.
func (l *Listing) Path() string {
	if !l.valid {
		return ""
	}
	return l.path
}

// Invalidate forces the next List call to read the directory.
func (l *Listing) Invalidate() {
	l.path, l.entries, l.valid = "", nil, false
}

func readEntries(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("library: listing %s: %w", dir, err)
	}

	// os.ReadDir sorts by name; keep that order within each group.
	var dirs, files []Entry
	for _, de := range des {
		e := Entry{
			Name: de.Name(),
			Path: filepath.Join(dir, de.Name()),
			Dir:  de.IsDir(),
		}
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		if e.Dir {
			dirs = append(dirs, e)
			continue
		}
		e.Format = format.Detect(e.Name)
		files = append(files, e)
	}
	return append(dirs, files...), nil
}
