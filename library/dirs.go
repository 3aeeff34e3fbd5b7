package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tsawler/ghostwriter/ghb"
)

// Standard directory and file names.
const (
	SavedBooksDir    = "SavedBooks"
	SignaturesDir    = "Signatures"
	DefaultSignature = "default.ghb"
)

// Dirs is the directory layout under a library root.
type Dirs struct {
	Root       string
	SavedBooks string
	Signatures string
}

// NewDirs returns the standard layout under root.
func NewDirs(root string) Dirs {
	return Dirs{
		Root:       root,
		SavedBooks: filepath.Join(root, SavedBooksDir),
		Signatures: filepath.Join(root, SignaturesDir),
	}
}

// Ensure creates every directory of the layout that does not exist yet.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Root, d.SavedBooks, d.Signatures} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("library: creating %s: %w", dir, err)
		}
	}
	return nil
}

// SignaturePath returns the path of the default signature book.
func (d Dirs) SignaturePath() string {
	return filepath.Join(d.Signatures, DefaultSignature)
}

// SavePath returns where a book with the given title and author is saved at
// time t.
func (d Dirs) SavePath(title, author string, t time.Time) string {
	return filepath.Join(d.SavedBooks, FileName(title, author, t))
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// Sanitize makes s safe for use in a file name: it is trimmed, spaces become
// periods and anything other than ASCII letters, digits and periods is
// removed.
func Sanitize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", ".")
	return unsafeChars.ReplaceAllLiteralString(s, "")
}

// FileName returns "<title>_<author>_<utc time>.ghb" with title and author
// sanitized.
func FileName(title, author string, t time.Time) string {
	return Sanitize(title) + "_" + Sanitize(author) + "_" + t.UTC().Format(ghb.TimestampLayout) + ".ghb"
}

// Parent returns the parent of dir. At a filesystem root it returns the root
// itself.
func Parent(dir string) string {
	dir = filepath.Clean(dir)
	return filepath.Dir(dir)
}
