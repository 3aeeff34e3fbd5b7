package ghostwriter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tsawler/ghostwriter/bookworm"
	"github.com/tsawler/ghostwriter/format"
	"github.com/tsawler/ghostwriter/ghb"
	"github.com/tsawler/ghostwriter/htmldoc"
	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/model"
	"github.com/tsawler/ghostwriter/plaintext"
	"github.com/tsawler/ghostwriter/textfile"
)

// Loader provides a fluent interface for loading a book from a file.
// Each configuration method returns a new Loader instance, making it safe
// for concurrent use and allowing method chaining.
type Loader struct {
	path    string
	options LoadOptions
}

// clone creates a copy of the Loader with a copy of its options.
func (l *Loader) clone() *Loader {
	return &Loader{
		path:    l.path,
		options: l.options.clone(),
	}
}

// ============================================================================
// Configuration Methods
// ============================================================================

// Path returns the file the Loader reads.
func (l *Loader) Path() string {
	return l.path
}

// MaxPages caps the number of pages in the loaded book. Pages beyond the cap
// are dropped with a warning. Zero or less removes the cap.
func (l *Loader) MaxPages(n int) *Loader {
	newL := l.clone()
	newL.options.maxPages = n
	return newL
}

// Metrics sets the glyph metrics used to wrap lines.
func (l *Loader) Metrics(m layout.Metrics) *Loader {
	newL := l.clone()
	newL.options.metrics = m
	return newL
}

// LineWidth sets the line width in pixels.
func (l *Loader) LineWidth(px int) *Loader {
	newL := l.clone()
	newL.options.lineWidth = px
	return newL
}

// PageLimits sets the most characters and lines a page may hold. Zero or
// less removes a limit.
func (l *Loader) PageLimits(maxChars, maxLines int) *Loader {
	newL := l.clone()
	newL.options.maxChars = maxChars
	newL.options.maxLines = maxLines
	return newL
}

// Sniff makes Load detect the format from the file's contents when the
// extension is not recognized.
func (l *Loader) Sniff() *Loader {
	newL := l.clone()
	newL.options.sniff = true
	return newL
}

// KeepNavigation keeps navigation menus, headers and footers of HTML pages.
func (l *Loader) KeepNavigation() *Loader {
	newL := l.clone()
	newL.options.navigation = htmldoc.NavigationExclusionNone
	return newL
}

// ============================================================================
// Loading
// ============================================================================

// Encoder returns a GHB encoder that wraps lines with the Loader's metrics
// and line width, so a book saved with SaveWith keeps the line breaks it was
// loaded with.
func (l *Loader) Encoder() *ghb.Encoder {
	return l.options.encoder()
}

// Load reads and decodes the book. The document is returned only when
// decoding succeeds; statuses describe anything the caller should tell the
// user, including the failure itself.
func (l *Loader) Load() (*model.Document, []Status, error) {
	var statuses []Status
	note := func(sev Severity, msg string) {
		statuses = append(statuses, Status{Severity: sev, Message: msg, Path: l.path})
	}

	doc, f, err := l.load(note)
	if err != nil {
		logging.OperationError("load", l.path, err)
		note(SeverityError, err.Error())
		return nil, statuses, err
	}

	if limit := l.options.maxPages; limit > 0 && doc.PageCount() > limit {
		note(SeverityWarning, fmt.Sprintf("book has %d pages, only the first %d were kept", doc.PageCount(), limit))
		doc.Pages = doc.Pages[:limit]
	}

	logging.BookLoaded(l.path, f.String(), doc.PageCount(), "title", doc.Title)
	return doc, statuses, nil
}

func (l *Loader) load(note func(Severity, string)) (*model.Document, format.Format, error) {
	if err := checkFile(l.path); err != nil {
		return nil, format.Unknown, err
	}

	f, err := l.detect()
	if err != nil {
		return nil, format.Unknown, err
	}

	res, err := textfile.ReadLines(l.path)
	if err != nil {
		return nil, f, readError(err)
	}
	if res.UsedFallback {
		note(SeverityWarning, "not valid UTF-8, read as "+res.Encoding)
	}
	if len(res.Lines) == 0 {
		return nil, f, fmt.Errorf("%w: %s", ErrEmptyInput, l.path)
	}

	p := l.options.paginator()
	var doc *model.Document
	switch f {
	case format.GHB:
		doc, err = (&ghb.Decoder{Paginator: p}).Decode(res.Lines)

	case format.Text:
		if r := (&bookworm.Decoder{Paginator: p}).Decode(res.Lines); r.Recognized {
			note(SeverityInfo, "imported Bookworm book")
			doc = r.Document
			break
		}
		doc, err = (&plaintext.Decoder{Paginator: p}).Decode(res.Lines)

	case format.HTML:
		d := &htmldoc.Decoder{
			Paginator: p,
			Options:   htmldoc.Options{Navigation: l.options.navigation},
		}
		doc, err = d.Decode(strings.NewReader(res.Text()))
	}
	if err != nil {
		return nil, f, decodeError(l.path, err)
	}
	return doc, f, nil
}

// detect picks the decoder for the file, by extension and then, if enabled,
// by contents.
func (l *Loader) detect() (format.Format, error) {
	f := format.Detect(l.path)
	if f == format.Unknown && l.options.sniff {
		file, err := os.Open(l.path)
		if err != nil {
			return format.Unknown, fmt.Errorf("%w: %s: %w", ErrRead, l.path, err)
		}
		defer file.Close()

		if f, err = format.DetectFromReader(file); err != nil {
			return format.Unknown, fmt.Errorf("%w: %s: %w", ErrRead, l.path, err)
		}
	}
	if f == format.Unknown {
		return f, fmt.Errorf("%w: %s", ErrUnsupportedFormat, l.path)
	}
	return f, nil
}

// checkFile rejects empty paths and directories before anything is read.
func checkFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}
	return nil
}

// readError maps a textfile error to the package errors.
func readError(err error) error {
	switch {
	case errors.Is(err, textfile.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, textfile.ErrUnsupportedEncoding):
		return fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
	default:
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
}

// decodeError maps a decoder error to the package errors.
func decodeError(path string, err error) error {
	if errors.Is(err, ghb.ErrEmptyInput) || errors.Is(err, plaintext.ErrEmptyInput) {
		return fmt.Errorf("%w: %s: %w", ErrEmptyInput, path, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
}
