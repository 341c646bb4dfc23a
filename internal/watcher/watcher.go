// Package watcher observes a directory tree for file changes and re-validates
// each changed path against the scan filter rules, so a long-running process
// can keep an accepted-file set current without rescanning.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileOp represents the type of file operation
type FileOp int

const (
	// FileCreated indicates a new file was created
	FileCreated FileOp = iota
	// FileWritten indicates a file was written to
	FileWritten
	// FileRemoved indicates a file was removed or renamed away
	FileRemoved
)

// String returns a human-readable representation of the file operation
func (op FileOp) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileWritten:
		return "written"
	case FileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// FileEvent represents a filter-accepted file system event
type FileEvent struct {
	Path      string    // Absolute path to the file
	Op        FileOp    // Type of operation
	Timestamp time.Time // When the event occurred
}

// Validator decides whether a changed path is accepted by the filter rules.
// The scanner's single-path check satisfies this.
type Validator func(path string) bool

// Watcher watches a directory tree and emits events only for paths that the
// validator accepts. Removed paths cannot be re-checked against the
// filesystem, so removal events are validated on path rules alone.
type Watcher struct {
	watcher  *fsnotify.Watcher
	validate Validator
	events   chan FileEvent
	errors   chan error
	done     chan struct{}
	rootDir  string

	mu            sync.Mutex
	debounceDelay time.Duration
	debounceMap   map[string]*time.Timer
	closed        bool
}

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// New creates a Watcher over rootDir. validate must not be nil.
func New(rootDir string, validate Validator) (*Watcher, error) {
	rootDir = filepath.Clean(rootDir)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:       fsw,
		validate:      validate,
		events:        make(chan FileEvent, 100),
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		rootDir:       rootDir,
		debounceDelay: DefaultDebounceDelay,
		debounceMap:   make(map[string]*time.Timer),
	}

	if err := w.addRecursive(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds the directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				if os.IsPermission(err) {
					return nil
				}
				return err
			}
		}

		return nil
	})
}

// processEvents converts fsnotify events into validated FileEvents
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

// handleEvent processes a single fsnotify event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// New directories join the watch set; whether their files are accepted
	// is decided per file event by the validator.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				select {
				case w.errors <- err:
				default:
				}
			}
			return
		}
	}

	var op FileOp
	switch {
	case event.Has(fsnotify.Create):
		op = FileCreated
	case event.Has(fsnotify.Write):
		op = FileWritten
	case event.Has(fsnotify.Remove):
		op = FileRemoved
	case event.Has(fsnotify.Rename):
		op = FileRemoved
	default:
		// Ignore chmod events
		return
	}

	if !w.validate(path) {
		return
	}

	// Debounce write events; create/remove are sent immediately.
	if op == FileWritten {
		w.debounce(path, op)
	} else {
		w.sendEvent(path, op)
	}
}

// debounce coalesces rapid writes for the same file
func (w *Watcher) debounce(path string, op FileOp) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, exists := w.debounceMap[path]; exists {
		timer.Stop()
	}

	w.debounceMap[path] = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounceMap, path)
		w.mu.Unlock()

		w.sendEvent(path, op)
	})
}

// sendEvent sends a FileEvent to the events channel
func (w *Watcher) sendEvent(path string, op FileOp) {
	event := FileEvent{
		Path:      path,
		Op:        op,
		Timestamp: time.Now(),
	}

	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

// Events returns the channel for receiving validated file events
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Errors returns the channel for receiving watch errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases its resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, timer := range w.debounceMap {
		timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
