package tabular

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

var _ driven.SourceWatcher = (*Watcher)(nil)

// Watcher reports edits to a file source that the source did not make
// itself. The parent directory is watched because atomic saves replace
// the file rather than write to it.
type Watcher struct {
	source driven.WatchableSource
	path   string
	now    func() time.Time

	// lastSeen is the fingerprint of the last reported change, so an
	// editor emitting several events for one save is reported once.
	lastSeen string
}

// NewWatcher creates a watcher for source.
func NewWatcher(source driven.WatchableSource) *Watcher {
	return &Watcher{
		source: source,
		path:   filepath.Clean(source.Path()),
		now:    time.Now,
	}
}

// Watch starts watching and returns a channel of external changes. The
// channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.SourceChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	changes := make(chan domain.SourceChange)
	go func() {
		defer close(changes)
		defer fsw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				change, ok := w.handleEvent(event)
				if !ok {
					continue
				}
				logger.Warn("%s was changed by another program", change.Path)
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleEvent decides whether event is an external change to the source.
func (w *Watcher) handleEvent(event fsnotify.Event) (domain.SourceChange, bool) {
	if filepath.Clean(event.Name) != w.path {
		return domain.SourceChange{}, false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if _, err := FileFingerprint(w.path); err == nil {
			// Replaced in place, as an atomic save does.
			return w.compareContents()
		}
		w.lastSeen = ""
		return domain.SourceChange{Path: w.path, Removed: true, At: w.now()}, true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return w.compareContents()
	default:
		return domain.SourceChange{}, false
	}
}

func (w *Watcher) compareContents() (domain.SourceChange, bool) {
	expected := w.source.Fingerprint()
	actual, err := FileFingerprint(w.path)
	if err != nil {
		return domain.SourceChange{}, false
	}
	if actual == expected || actual == w.lastSeen {
		return domain.SourceChange{}, false
	}
	w.lastSeen = actual
	return domain.SourceChange{Path: w.path, At: w.now()}, true
}
