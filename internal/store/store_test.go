package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielarbabian/stash/internal/models"
)

func TestSaveAndLoadAll(t *testing.T) {
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	first := models.NewNote("first note #alpha", "", models.SourceUI)
	first.Created = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := models.NewNote("second note #beta", "", models.SourceUI)
	second.Created = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Save(first))
	require.NoError(t, Save(second))

	notes, err := LoadAll()
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Newest first
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
	assert.Equal(t, "first note #alpha", notes[1].Content)
}

func TestLoadAllEmptyDir(t *testing.T) {
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	notes, err := LoadAll()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestLoadAllSkipsUnparseableFiles(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("STASH_DATA_DIR", dataDir)

	good := models.NewNote("healthy note", "", models.SourceUI)
	require.NoError(t, Save(good))

	notesDir := filepath.Join(dataDir, "notes")
	require.NoError(t, os.WriteFile(filepath.Join(notesDir, "broken.md"), []byte("no frontmatter here"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(notesDir, "not-a-note.txt"), []byte("ignored"), 0644))

	notes, err := LoadAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, good.ID, notes[0].ID)
}

func TestSaveOverwrites(t *testing.T) {
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	note := models.NewNote("draft", "", models.SourceUI)
	require.NoError(t, Save(note))

	note.Content = "revised #done"
	note.SyncMetadata()
	note.Touch()
	require.NoError(t, Save(note))

	notes, err := LoadAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "revised #done", notes[0].Content)
	assert.Equal(t, []string{"done"}, notes[0].Tags)
	assert.NotNil(t, notes[0].Updated)
}

func TestDelete(t *testing.T) {
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	note := models.NewNote("short lived", "", models.SourceUI)
	require.NoError(t, Save(note))
	require.NoError(t, Delete(note.ID))

	notes, err := LoadAll()
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Error(t, Delete(note.ID))
}

func TestQuickNote(t *testing.T) {
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	note, err := QuickNote("capture #inbox for +stash", "", models.SourceQuickCapture)
	require.NoError(t, err)
	assert.Equal(t, []string{"inbox"}, note.Tags)
	assert.Equal(t, []string{"stash"}, note.Projects)
	assert.Equal(t, models.SourceQuickCapture, note.Source)

	path, err := NotePath(note.ID)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
