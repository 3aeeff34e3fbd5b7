package library

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/tsawler/ghostwriter/format"
)

// ErrBadArchive is returned when a backup contains an entry that cannot be
// restored.
var ErrBadArchive = errors.New("library: bad archive entry")

// BackupName returns the file name of a backup taken at time t.
func BackupName(t time.Time) string {
	return "backup_" + t.UTC().Format("2006-01-02T150405Z") + ".tar.xz"
}

// Pack writes every loadable book directly inside dir to an xz-compressed
// tar archive at dest and returns how many were written.
func Pack(dir, dest string) (n int, err error) {
	entries, err := readEntries(dir)
	if err != nil {
		return 0, err
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("library: creating archive: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("library: closing archive: %w", cerr)
		}
	}()

	xw, err := xz.NewWriter(file)
	if err != nil {
		return 0, fmt.Errorf("library: creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	for _, e := range entries {
		if !e.Loadable() {
			continue
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return n, fmt.Errorf("library: reading %s: %w", e.Path, err)
		}
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     e.Name,
			Mode:     0644,
			Size:     int64(len(data)),
			ModTime:  e.ModTime,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return n, fmt.Errorf("library: writing %s: %w", e.Name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return n, fmt.Errorf("library: writing %s: %w", e.Name, err)
		}
		n++
	}

	if err := tw.Close(); err != nil {
		return n, fmt.Errorf("library: finishing archive: %w", err)
	}
	if err := xw.Close(); err != nil {
		return n, fmt.Errorf("library: finishing archive: %w", err)
	}
	return n, nil
}

// Unpack restores the books of the archive at src into dir, overwriting
// books of the same name, and returns how many were restored. Entries must
// be plain files of a loadable format without any directory part.
func Unpack(src, dir string) (int, error) {
	file, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("library: opening archive: %w", err)
	}
	defer file.Close()

	xr, err := xz.NewReader(file)
	if err != nil {
		return 0, fmt.Errorf("library: reading archive: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("library: creating %s: %w", dir, err)
	}

	tr := tar.NewReader(xr)
	n := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("library: reading archive: %w", err)
		}

		if hdr.Typeflag != tar.TypeReg || hdr.Name != filepath.Base(hdr.Name) ||
			strings.HasPrefix(hdr.Name, ".") || format.Detect(hdr.Name) == format.Unknown {
			return n, fmt.Errorf("%w: %q", ErrBadArchive, hdr.Name)
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return n, fmt.Errorf("library: reading %s: %w", hdr.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, hdr.Name), data, 0644); err != nil {
			return n, fmt.Errorf("library: restoring %s: %w", hdr.Name, err)
		}
		n++
	}
}
