package importer

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hammamikhairi/recipedit/internal/document"
	"github.com/hammamikhairi/recipedit/internal/logger"
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long a file must be quiet before it is read.
// Editors often write a file in several chunks.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// Watcher hands recipe documents dropped into an inbox directory to a
// Reader.
type Watcher struct {
	dir      string
	reader   *Reader
	log      *logger.Logger
	debounce time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	fsw     *fsnotify.Watcher
	pending map[string]*time.Timer
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, reader *Reader, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		reader:   reader,
		log:      log,
		debounce: 200 * time.Millisecond,
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The directory is created if missing. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.log.Warn("inbox watcher already running")
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating inbox %s: %w", w.dir, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	childCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.fsw = fsw
	w.running = true

	go w.loop(childCtx, fsw)

	w.log.Info("inbox watcher started on %s", w.dir)
	return nil
}

// Stop shuts the watcher down. Reads already handed to the Reader still
// complete.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.cancel()
	w.fsw.Close()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.running = false
	w.log.Info("inbox watcher stopped")
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !document.IsDocumentFile(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("inbox watcher: %v", err)
		}
	}
}

// schedule resets the quiet timer for path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.log.Debug("inbox file ready: %s", path)
		w.reader.Read(ctx, path)
	})
}
