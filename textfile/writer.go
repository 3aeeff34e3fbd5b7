package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWrite is returned when a file or its directory cannot be written.
var ErrWrite = errors.New("textfile: write failed")

// WriteLines writes lines to path as UTF-8, each terminated by a newline.
// Missing parent directories are created.
func WriteLines(path string, lines []string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrWrite, dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %v", ErrWrite, path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}
