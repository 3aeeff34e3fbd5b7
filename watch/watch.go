// Package watch reloads a book whenever its file changes on disk.
//
// A Watcher polls the file's modification time. When the time moves it
// hashes the contents with BLAKE3 and reloads only if the contents differ
// from the last load, so editors that rewrite a file unchanged do not
// trigger a reload.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/zeebo/blake3"

	"github.com/tsawler/ghostwriter/internal/logging"
	"github.com/tsawler/ghostwriter/model"
)

// DefaultInterval is how often Run polls the file.
const DefaultInterval = time.Second

// ErrVanished is returned when the watched file no longer exists.
var ErrVanished = errors.New("watch: file no longer exists")

// LoadFunc decodes the book at path.
type LoadFunc func(path string) (*model.Document, error)

// Watcher polls a single book file. It is not safe for concurrent use.
type Watcher struct {
	Path     string
	Interval time.Duration
	Load     LoadFunc

	modTime time.Time
	digest  [32]byte
	primed  bool
}

// New returns a watcher for path that polls at DefaultInterval.
func New(path string, load LoadFunc) *Watcher {
	return &Watcher{Path: path, Interval: DefaultInterval, Load: load}
}

// Prime records the current state of the file without loading it. Changes
// are detected relative to the primed state.
func (w *Watcher) Prime() error {
	info, sum, err := w.snapshot()
	if err != nil {
		return err
	}
	w.modTime, w.digest, w.primed = info.ModTime(), sum, true
	return nil
}

// Check polls the file once and returns the reloaded book if it changed, or
// nil if it did not. An unprimed watcher is primed and reports no change.
func (w *Watcher) Check() (*model.Document, error) {
	if !w.primed {
		return nil, w.Prime()
	}

	info, err := os.Stat(w.Path)
	if err != nil {
		return nil, w.statError(err)
	}
	if info.ModTime().Equal(w.modTime) {
		return nil, nil
	}

	info, sum, err := w.snapshot()
	if err != nil {
		return nil, err
	}
	w.modTime = info.ModTime()
	if sum == w.digest {
		logging.Debug("file touched without changes", "path", w.Path)
		return nil, nil
	}

	doc, err := w.Load(w.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: reloading %s: %w", w.Path, err)
	}
	w.digest = sum
	logging.Info("book reloaded", "path", w.Path, "pages", doc.PageCount())
	return doc, nil
}

// Run polls until ctx is done or a poll fails, calling onChange with every
// reloaded book. It returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func(*model.Document)) error {
	if !w.primed {
		if err := w.Prime(); err != nil {
			return err
		}
	}

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			doc, err := w.Check()
			if err != nil {
				return err
			}
			if doc != nil {
				onChange(doc)
			}
		}
	}
}

func (w *Watcher) snapshot() (fs.FileInfo, [32]byte, error) {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		return nil, [32]byte{}, w.statError(err)
	}
	info, err := os.Stat(w.Path)
	if err != nil {
		return nil, [32]byte{}, w.statError(err)
	}
	return info, blake3.Sum256(data), nil
}

func (w *Watcher) statError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrVanished, w.Path)
	}
	return fmt.Errorf("watch: %s: %w", w.Path, err)
}
