// Package watcher keeps the stored-files gauge in step with the local temp directory.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
)

// Gauge receives the absolute number of generated files after every change.
type Gauge interface {
	SetStored(n int)
}

// DefaultExtensions are the generated-file extensions that are counted.
var DefaultExtensions = []string{model.FormatWord.Extension(), model.FormatLatex.Extension()}

// TempDirWatcher recounts generated files whenever the directory changes.
type TempDirWatcher struct {
	watcher    *fsnotify.Watcher
	dir        string
	extensions []string
	gauge      Gauge
	log        *logger.Logger
}

// New creates a watcher for dir. An empty extensions list selects DefaultExtensions.
func New(dir string, extensions []string, gauge Gauge, log *logger.Logger) (*TempDirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &TempDirWatcher{
		watcher:    w,
		dir:        dir,
		extensions: extensions,
		gauge:      gauge,
		log:        log.With("component", "watcher", "dir", dir),
	}, nil
}

// Run publishes an initial count, then recounts on every create, remove or rename of a
// watched file until ctx is done. The watcher is closed on return.
func (w *TempDirWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.recount()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isWatched(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.recount()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher_error", "error", err.Error())
		}
	}
}

// Count returns the number of watched files currently in the directory.
func (w *TempDirWatcher) Count() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() && w.isWatched(e.Name()) {
			n++
		}
	}
	return n, nil
}

func (w *TempDirWatcher) recount() {
	n, err := w.Count()
	if err != nil {
		w.log.Warn("watcher_count_failed", "error", err.Error())
		return
	}
	w.gauge.SetStored(n)
}

// isWatched skips hidden files, including in-flight atomic writes.
func (w *TempDirWatcher) isWatched(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(name)))
}
