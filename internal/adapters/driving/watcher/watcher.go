// Package watcher re-converts corpus files under a pipeline directory when
// they change on disk.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

// DefaultDebounce is the quiet period after the last write before a corpus
// is converted.
const DefaultDebounce = 250 * time.Millisecond

// Converter is the part of the conversion service the watcher drives.
type Converter interface {
	ConvertFile(inputPath, outputPath, displayName string) (domain.ConversionResult, error)
	Targets(pipelineDir, corpusPath string) (outputPath, displayName string)
	IsCorpus(path string) bool
}

// ConvertFunc is called after each conversion attempt.
type ConvertFunc func(path string, result domain.ConversionResult, err error)

// Watcher watches a pipeline tree and converts changed corpora one at a time.
type Watcher struct {
	converter Converter
	dir       string
	debounce  time.Duration
	onConvert ConvertFunc
	fs        *fsnotify.Watcher
}

// New creates a watcher over every directory below pipelineDir.
func New(converter Converter, pipelineDir string) (*Watcher, error) {
	info, err := os.Stat(pipelineDir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", pipelineDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", pipelineDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		converter: converter,
		dir:       pipelineDir,
		debounce:  DefaultDebounce,
		fs:        fsw,
	}
	w.addTree(pipelineDir)
	return w, nil
}

// SetDebounce changes the quiet period. Non-positive values are ignored.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// OnConvert registers a callback run after each conversion attempt.
func (w *Watcher) OnConvert(fn ConvertFunc) {
	w.onConvert = fn
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run blocks until ctx is done or the underlying watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(event, pending) {
				stopTimer(timer)
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			w.flush(ctx, pending)
		}
	}
}

// handle records a changed corpus in pending and reports whether it did.
// New directories are watched and scanned, since files may land in them
// before the watch is added.
func (w *Watcher) handle(event fsnotify.Event, pending map[string]struct{}) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return w.addTree(event.Name, pending) > 0
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	if !w.converter.IsCorpus(event.Name) {
		return false
	}
	logger.Debug("watch: %s %s", event.Op, event.Name)
	pending[event.Name] = struct{}{}
	return true
}

// addTree watches root and every directory below it. Corpora found along the
// way are added to the optional pending set; the number added is returned.
func (w *Watcher) addTree(root string, pending ...map[string]struct{}) int {
	added := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fs.Add(path); err != nil {
				logger.Warn("watch %s: %v", path, err)
			}
			return nil
		}
		if len(pending) > 0 && w.converter.IsCorpus(path) {
			pending[0][path] = struct{}{}
			added++
		}
		return nil
	})
	return added
}

// flush converts every pending corpus in path order and clears the set.
func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
		delete(pending, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		outputPath, displayName := w.converter.Targets(w.dir, path)
		result, err := w.converter.ConvertFile(path, outputPath, displayName)
		if err != nil {
			logger.Warn("watch: convert %s: %v", path, err)
		}
		if w.onConvert != nil {
			w.onConvert(path, result, err)
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
