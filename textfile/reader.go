package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding names reported in Result.
const (
	UTF8       = "UTF-8"
	ISO8859_15 = "ISO-8859-15"
)

var (
	// ErrNotFound is returned when the file does not exist.
	ErrNotFound = errors.New("textfile: file not found")
	// ErrRead is returned for I/O failures other than decoding.
	ErrRead = errors.New("textfile: read failed")
	// ErrUnsupportedEncoding is returned when neither UTF-8 nor the fallback
	// encoding can decode the file.
	ErrUnsupportedEncoding = errors.New("textfile: no suitable decoder")
)

// errDecode reports that the bytes are not valid in the attempted encoding.
var errDecode = errors.New("textfile: malformed input")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is the outcome of reading a file.
type Result struct {
	Lines []string

	// Encoding is the name of the encoding that decoded the file.
	Encoding string

	// UsedFallback is true when the file was not valid UTF-8.
	UsedFallback bool
}

// Text returns the lines joined with newlines.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Reader reads text files with a strict UTF-8 first attempt and a single
// fallback encoding.
type Reader struct {
	// Fallback decodes files that are not valid UTF-8. Nil disables the
	// second attempt.
	Fallback encoding.Encoding

	// FallbackName is reported in Result.Encoding when Fallback is used.
	FallbackName string

	// Normalize converts decoded text to Unicode NFC.
	Normalize bool
}

// NewReader returns a Reader that falls back to ISO-8859-15.
func NewReader() *Reader {
	return &Reader{
		Fallback:     charmap.ISO8859_15,
		FallbackName: ISO8859_15,
		Normalize:    true,
	}
}

// ReadLines reads path with the default Reader.
func ReadLines(path string) (*Result, error) {
	return NewReader().ReadLines(path)
}

// ReadLines reads path and splits it into lines.
func (r *Reader) ReadLines(path string) (*Result, error) {
	return r.read(path, UTF8)
}

// read decodes the file as enc, retrying once with the fallback when enc is
// UTF-8 and the bytes are malformed.
func (r *Reader) read(path, enc string) (*Result, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	text, err := r.decode(data, enc)
	if err != nil {
		if enc == UTF8 && r.Fallback != nil {
			return r.read(path, r.FallbackName)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedEncoding, path, err)
	}

	if r.Normalize {
		text = norm.NFC.String(text)
	}
	return &Result{
		Lines:        SplitLines(text),
		Encoding:     enc,
		UsedFallback: enc != UTF8,
	}, nil
}

func (r *Reader) decode(data []byte, enc string) (string, error) {
	if enc == UTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", errDecode
		}
		return string(data), nil
	}
	out, err := r.Fallback.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(data, utf8.RuneError) {
		return "", errDecode
	}
	return string(out), nil
}

// readAll reads the whole file, closing it on every path.
func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	return data, nil
}

// SplitLines splits text on \n, \r\n and \r. A trailing terminator does not
// start a new line, so "a\n" is one line and "" is none.
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
