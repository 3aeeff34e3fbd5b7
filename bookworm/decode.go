package bookworm

import (
	"regexp"
	"strings"

	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/layout"
	"github.com/tsawler/ghostwriter/model"
)

// MetadataPrefix marks a hidden key/value line.
const MetadataPrefix = "|!|"

// ParagraphIndent replaces a paragraph marker in the book text.
const ParagraphIndent = "\n  "

// minLines is the shortest possible Bookworm file: id, title, author, text.
const minLines = 4

var (
	pageMarker      = regexp.MustCompile(`(\s::){2,}`)
	paragraphMarker = regexp.MustCompile(`\s+::(?:\s+::)*\s*`)
)

// Result is the outcome of Decode. Document is nil unless Recognized.
type Result struct {
	Document   *model.Document
	Recognized bool
}

// Decoder turns Bookworm lines into a Document.
type Decoder struct {
	Paginator layout.Paginator
}

// NewDecoder returns a decoder that fits text to book pages.
func NewDecoder() *Decoder {
	return &Decoder{Paginator: layout.NewPaginator()}
}

// Recognize reports whether lines look like a Bookworm file: at least four
// lines with an unsigned decimal id on the first.
func Recognize(lines []string) bool {
	return len(lines) >= minLines && isNumeric(lines[0])
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Decode parses lines. The book text is the last non-blank line after the
// author; a file whose remaining lines are all blank or metadata decodes to
// a document with no pages.
func (d *Decoder) Decode(lines []string) Result {
	if !Recognize(lines) {
		return Result{}
	}

	doc := model.NewDocument()
	doc.Title = layout.Truncate(lines[1], "..", model.MaxTitleLength, false)
	doc.Author = lines[2]

	body := ""
	bodyIndex := -1
	for i := len(lines) - 1; i > 2; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			bodyIndex = i
			break
		}
	}
	if bodyIndex >= 0 && !strings.HasPrefix(lines[bodyIndex], MetadataPrefix) {
		body = lines[bodyIndex]
	}

	for _, chunk := range SplitPages(body) {
		doc.AddPages(d.Paginator.Paginate(chunk)...)
	}

	logging.Debug("decoded Bookworm book",
		"id", lines[0],
		"metadata", countMetadata(lines[3:]),
		"pages", doc.PageCount())
	return Result{Document: doc, Recognized: true}
}

// SplitPages splits Bookworm book text into page chunks on runs of two or
// more adjacent paragraph markers and replaces every remaining marker with a
// newline and an indent.
func SplitPages(text string) []string {
	chunks := pageMarker.Split(text, -1)
	for i, c := range chunks {
		chunks[i] = paragraphMarker.ReplaceAllStringFunc(c, func(m string) string {
			return strings.Repeat(ParagraphIndent, strings.Count(m, "::"))
		})
	}
	return chunks
}

func countMetadata(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, MetadataPrefix) {
			n++
		}
	}
	return n
}
