package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"gridsnap/log"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says which watched file changed.
type ChangeKind int

const (
	ConfigChanged ChangeKind = iota
	LayoutChanged
)

func (k ChangeKind) String() string {
	if k == LayoutChanged {
		return "layout"
	}
	return "config"
}

// Change is a debounced notification that a watched file was written,
// created, renamed or removed.
type Change struct {
	Kind ChangeKind
	Path string
}

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// errorLogInterval limits how often a failing watcher writes to the log.
const errorLogInterval = 10 * time.Second

// Watcher reports edits to the config file and the layout fixture. It
// watches the containing directories because editors often replace files
// instead of writing them in place.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]ChangeKind
	debounce  time.Duration
	changes   chan Change
	stopChan  chan struct{}

	// Only the event loop touches these.
	errEvery   *log.Every
	suppressed int

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	stopped bool
}

// NewWatcher watches configPath and, when non-empty, layoutPath.
func NewWatcher(configPath, layoutPath string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		files:     make(map[string]ChangeKind),
		debounce:  DefaultDebounce,
		changes:   make(chan Change, 8),
		stopChan:  make(chan struct{}),
		pending:   make(map[string]*time.Timer),
		errEvery:  log.NewEvery(errorLogInterval),
	}

	for path, kind := range map[string]ChangeKind{configPath: ConfigChanged, layoutPath: LayoutChanged} {
		if path == "" {
			continue
		}
		clean := filepath.Clean(path)
		w.files[clean] = kind
		if err := w.fsWatcher.Add(filepath.Dir(clean)); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(clean), err)
		}
	}
	return w, nil
}

// Changes delivers debounced change notifications. It is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing file system events.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return fmt.Errorf("watcher already running")
	}
	w.running = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			kind, watched := w.files[filepath.Clean(event.Name)]
			if !watched || event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule(Change{Kind: kind, Path: event.Name})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-w.stopChan:
			return
		}
	}
}

// reportError logs err unless another error was logged within
// errorLogInterval. It reports whether err was written.
func (w *Watcher) reportError(err error) bool {
	if !w.errEvery.ShouldLog() {
		w.suppressed++
		return false
	}
	if w.suppressed > 0 {
		log.ErrorLog.Printf("fsnotify watcher error: %v (%d similar errors suppressed)", err, w.suppressed)
	} else {
		log.ErrorLog.Printf("fsnotify watcher error: %v", err)
	}
	w.suppressed = 0
	return true
}

// schedule restarts the debounce timer for one path.
func (w *Watcher) schedule(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if t, ok := w.pending[c.Path]; ok {
		t.Stop()
	}
	w.pending[c.Path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.pending, c.Path)
		if !w.running {
			return
		}
		select {
		case w.changes <- c:
		default:
			log.WarningLog.Printf("change channel is full, dropped %s change", c.Kind)
		}
	})
}

// Stop halts the watcher and closes the change channel.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	w.running = false

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.ErrorLog.Printf("error closing fsnotify watcher: %v", err)
	}
	for _, t := range w.pending {
		t.Stop()
	}
	close(w.changes)
}
