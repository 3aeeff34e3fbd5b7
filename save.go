package ghostwriter

import (
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/ghostwriter/ghb"
	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/model"
	"github.com/tsawler/ghostwriter/textfile"
)

// Save writes a book to path in GHB format, creating missing directories.
// Lines are wrapped to the default book width. The title and author are
// written as given; only file names are sanitized.
func Save(title, author string, pages []string, path string) error {
	return SaveWith(ghb.NewEncoder(), title, author, pages, path)
}

// SaveWith is like Save but wraps lines with enc, typically the one returned
// by Loader.Encoder.
func SaveWith(enc *ghb.Encoder, title, author string, pages []string, path string) error {
	if err := checkTarget(path); err != nil {
		logging.OperationError("save", path, err)
		return err
	}

	lines := enc.Encode(title, author, pages)
	if err := textfile.WriteLines(path, lines); err != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, err)
		logging.OperationError("save", path, err)
		return err
	}

	logging.BookSaved(path, len(pages), "title", title)
	return nil
}

// SaveDocument writes doc to path in GHB format.
func SaveDocument(doc *model.Document, path string) error {
	return Save(doc.Title, doc.Author, doc.Pages, path)
}

// checkTarget rejects empty paths and existing directories.
func checkTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}
	return nil
}

// Sign appends the pages of the signature book at signaturePath to book and
// returns how many were added. Pages that do not fit under the book's page
// limit are dropped with a warning.
func Sign(book *model.Book, signaturePath string) (int, []Status, error) {
	sig, statuses, err := Load(signaturePath)
	if err != nil {
		return 0, statuses, err
	}

	added := book.AppendPages(sig.Pages...)
	if dropped := len(sig.Pages) - added; dropped > 0 {
		statuses = append(statuses, Status{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("book is full, %d signature pages dropped", dropped),
			Path:     signaturePath,
		})
	}
	logging.Debug("signed book", "signature", signaturePath, "pages", added)
	return added, statuses, nil
}
