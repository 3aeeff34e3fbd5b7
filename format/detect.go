// Package format provides file format detection for book files.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported book format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// GHB indicates a Ghostwriter book markup file.
	GHB
	// Text indicates a .txt file, either a Bookworm book or plain text.
	Text
	// HTML indicates an HTML document.
	HTML
)

// ghbSignature starts every file written by the GHB encoder.
const ghbSignature = "//Book saved in GHB format"

// sniffLen is how much of a file DetectFromReader inspects.
const sniffLen = 512

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case GHB:
		return "GHB"
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case GHB:
		return ".ghb"
	case Text:
		return ".txt"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ghb":
		return GHB
	case ".txt":
		return Text
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic checks the start of a file for a known signature. Plain
// text has none, so Text is never returned.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if bytes.HasPrefix(data, []byte(ghbSignature)) {
		return GHB
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(sniffLen, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// DetectFromReader reads the start of r and checks it for a signature.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
