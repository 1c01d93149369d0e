package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"testenv/internal/discovery"
	"testenv/internal/domain"
	"testenv/internal/workspace"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher routes test files as they appear under a directory tree
type Watcher struct {
	router   *workspace.Router
	scanner  *discovery.Scanner
	debounce time.Duration
	logger   *zap.Logger

	fs      *fsnotify.Watcher
	pending map[string]time.Time
	done    chan struct{}
}

// NewWatcher creates a Watcher; call Start to begin watching
func NewWatcher(router *workspace.Router, scanner *discovery.Scanner, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		router:   router,
		scanner:  scanner,
		debounce: defaultDebounce,
		logger:   logger,
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}
}

// Start watches root recursively and calls onRoute for each created or modified
// test file once its events settle. It returns after the watches are installed;
// the event loop runs until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, root string, onRoute func(domain.Route)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.fs = fw

	if err := w.addTree(root, false); err != nil {
		fw.Close()
		return err
	}

	go w.run(ctx, onRoute)
	return nil
}

// Done is closed once the event loop has stopped and the watcher is released
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run(ctx context.Context, onRoute func(domain.Route)) {
	defer close(w.done)
	defer w.fs.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(now, onRoute)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) && !w.scanner.Skip(info.Name()) {
			// files may land in the new dir before its watch exists
			if err := w.addTree(event.Name, true); err != nil {
				w.logger.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
		}
		return
	}

	if discovery.IsTestFile(filepath.Base(event.Name)) {
		w.pending[event.Name] = time.Now()
	}
}

// flush routes every pending file that has been quiet for the debounce window
func (w *Watcher) flush(now time.Time, onRoute func(domain.Route)) {
	var ready []string
	for path, seen := range w.pending {
		if now.Sub(seen) >= w.debounce {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	for _, path := range ready {
		delete(w.pending, path)
		route := w.router.Route(path)
		w.logger.Debug("routed", zap.String("path", path), zap.String("owner", route.Owner))
		onRoute(route)
	}
}

// addTree watches dir and every non-skipped directory below it. With queue set,
// test files already present are queued for routing.
func (w *Watcher) addTree(dir string, queue bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if queue && discovery.IsTestFile(d.Name()) {
				w.pending[path] = time.Now()
			}
			return nil
		}
		if path != dir && w.scanner.Skip(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
