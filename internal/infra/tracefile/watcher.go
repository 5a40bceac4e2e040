package tracefile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/daisen/internal/domain"
)

// Ensure Watcher implements domain.TraceWatcher.
var _ domain.TraceWatcher = (*Watcher)(nil)

// Watcher signals changes of a trace file.
type Watcher struct {
	logger domain.Logger
	path   string
}

// NewWatcher creates a Watcher for the file at path.
func NewWatcher(path string, logger domain.Logger) *Watcher {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Watcher{path: path, logger: logger}
}

// Watch starts watching. The directory of the file is watched rather than
// the file itself, so writers that replace the file by rename are seen.
// Bursts of events are coalesced into one pending signal.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if w.path == "" {
		return nil, domain.ErrEmptyTracePath
	}
	target, err := filepath.Abs(w.path)
	if err != nil {
		return nil, fmt.Errorf("resolve trace path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	ch := make(chan struct{}, 1)
	go w.loop(ctx, fw, target, ch)
	return ch, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, target string, ch chan<- struct{}) {
	defer close(ch)
	defer func() { _ = fw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("", "watch", fmt.Sprintf("fsnotify event=%s file=%s", event.Op, event.Name))
			select {
			case ch <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("", "watch", fmt.Sprintf("fsnotify error=%v", err))
		}
	}
}
