package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is how long the documentation tree must stay quiet before a rebuild.
const DefaultDelay = 500 * time.Millisecond

// Watcher calls OnChange once a burst of Markdown edits under a directory tree settles.
type Watcher struct {
	root     string
	delay    time.Duration
	logger   zerolog.Logger
	onChange func(ctx context.Context) error
	fsw      *fsnotify.Watcher
}

// New watches every directory below root, including ones created later.
func New(root string, delay time.Duration, logger zerolog.Logger, onChange func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("problem creating watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		delay:    delay,
		logger:   logger,
		onChange: onChange,
		fsw:      fsw,
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is done or the underlying watcher fails. Errors from OnChange are
// logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.fsw.Close()
	}()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.watchIfDir(event.Name)
			}
			if isRelevant(event) {
				w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("documentation changed")
				pending = time.After(w.delay)
			}
		case <-pending:
			pending = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error().Err(err).Msg("regeneration failed")
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("problem watching '%s': %w", w.root, err)
		}
	}
}

func (w *Watcher) watchIfDir(path string) {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn().Err(err).Str("dir", path).Msg("problem watching new directory")
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("problem walking '%s': %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("problem watching '%s': %w", path, err)
		}
		return nil
	})
}

// isRelevant reports whether event touches a Markdown document's contents or presence.
func isRelevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".md" {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
