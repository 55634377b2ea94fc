// Package store is the on-disk note repository: one markdown file per
// note under the notes directory, loaded in full and rewritten on every
// mutation. There is no index; the in-memory list reloaded from disk is
// the only cache.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/logger"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/perf"
)

// NotePath returns the file path for a note ID.
func NotePath(id string) (string, error) {
	notesDir, err := config.NotesDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(notesDir, id+".md"), nil
}

// LoadAll reads every .md file in the notes directory, newest first.
// Files that fail to parse are logged and skipped so one corrupt note
// cannot prevent the rest from loading.
func LoadAll() ([]*models.Note, error) {
	timer := perf.NewTimer("store.loadAll", logger.GetLogger(), 100)
	defer timer.Stop()

	notesDir, err := config.NotesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(notesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Note{}, nil
		}
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	notes := make([]*models.Note, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		path := filepath.Join(notesDir, entry.Name())
		note, err := models.LoadNote(path)
		if err != nil {
			logger.Warn("store: skipping unparseable note", "path", path, "error", err)
			continue
		}
		notes = append(notes, note)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Created.After(notes[j].Created)
	})

	return notes, nil
}

// Save writes a note to its file, overwriting any previous version.
func Save(note *models.Note) error {
	path, err := NotePath(note.ID)
	if err != nil {
		return err
	}

	content, err := note.Markdown()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}

	logger.Debug("store: saved note", "id", note.ID, "path", path)
	return nil
}

// Delete removes a note file permanently.
func Delete(id string) error {
	path, err := NotePath(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	logger.Debug("store: deleted note", "id", id)
	return nil
}

// QuickNote creates and saves a note from raw content, deriving all
// metadata from the text.
func QuickNote(content, title string, source models.NoteSource) (*models.Note, error) {
	note := models.NewNote(content, title, source)
	if err := Save(note); err != nil {
		return nil, err
	}
	return note, nil
}
