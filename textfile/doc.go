// Package textfile reads text files as lines, falling back to a single-byte
// encoding when the file is not valid UTF-8.
//
// Authors often save files in a local code page. Decoding those as UTF-8
// with replacement characters would silently corrupt punctuation, so the
// reader decodes UTF-8 strictly and, on failure, re-reads the whole file
// once as ISO-8859-15:
//
//	res, err := textfile.ReadLines("book.ghb")
//	if err != nil {
//	    // errors.Is(err, textfile.ErrNotFound), ErrUnsupportedEncoding, ErrRead
//	}
//	if res.UsedFallback {
//	    log.Printf("%s is not UTF-8, read as %s", path, res.Encoding)
//	}
//
// Lines may end in \n, \r\n or \r. A final line terminator does not produce
// an extra empty line and a leading byte order mark is dropped. Decoded text
// is normalised to NFC.
package textfile
