package sync

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// FileChangeEvent represents a file change notification
type FileChangeEvent struct {
	FilePath string
	NoteID   string
}

// Watcher watches the notes directory for changes
type Watcher struct {
	watcher       *fsnotify.Watcher
	changes       chan FileChangeEvent
	done          chan struct{}
	debounceTimer *time.Timer
	pendingEvents map[string]bool // Track pending file changes by note ID
}

// NewWatcher creates a new file watcher
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		watcher:       fsWatcher,
		changes:       make(chan FileChangeEvent, 10),
		done:          make(chan struct{}),
		pendingEvents: make(map[string]bool),
	}, nil
}

// Start begins watching the notes directory
func (w *Watcher) Start() error {
	notesDir, err := config.NotesDir()
	if err != nil {
		return fmt.Errorf("failed to get notes directory: %w", err)
	}

	if err := w.watcher.Add(notesDir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher. The changes channel is left open: a
// debounce-fired flush may still be selecting on a send to it, and the
// done channel is what tells both the flush and any listener to stop.
func (w *Watcher) Stop() {
	close(w.done)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.watcher.Close()
}

// Changes returns the channel for file change notifications
func (w *Watcher) Changes() <-chan FileChangeEvent {
	return w.changes
}

// watch is the main event loop
func (w *Watcher) watch() {
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only process Write, Create and Remove events for .md files
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				if filepath.Ext(event.Name) == ".md" {
					// Extract note ID from filename (<id>.md)
					filename := filepath.Base(event.Name)
					if len(filename) > 3 {
						id := filename[:len(filename)-3]
						w.pendingEvents[id] = true

						// Reset debounce timer
						if w.debounceTimer != nil {
							w.debounceTimer.Stop()
						}

						w.debounceTimer = time.AfterFunc(debounceDelay, func() {
							w.processPendingEvents()
						})
					}
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			logger.Warn("watcher error", "error", err)
		}
	}
}

// processPendingEvents notifies listeners of all pending changes after
// the debounce window. Listeners reload the whole corpus, so the event
// carries the path only as a hint.
func (w *Watcher) processPendingEvents() {
	select {
	case <-w.done:
		return
	default:
	}

	notesDir, _ := config.NotesDir()

	for id := range w.pendingEvents {
		select {
		case w.changes <- FileChangeEvent{
			FilePath: filepath.Join(notesDir, id+".md"),
			NoteID:   id,
		}:
		case <-w.done:
			return
		}
	}

	// Clear pending events
	w.pendingEvents = make(map[string]bool)
}
