package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielarbabian/stash/internal/ai"
	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/store"
)

// newTestModel builds a model backed by a throwaway data directory with
// a configured AI client so the AI entry points are reachable.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	t.Setenv("STASH_DATA_DIR", t.TempDir())

	settings := &config.Settings{
		OpenAIAPIKey:  "sk-test",
		AIEnabled:     true,
		AIPromptStyle: "professional",
	}
	require.NoError(t, settings.Save())

	client, err := ai.NewClient()
	require.NoError(t, err)

	return NewModel(settings, client)
}

func setNotes(m *Model, notes ...*models.Note) {
	m.allNotes = notes
	m.applyFilters()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestHomeModeTransitions(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"a", "add"},
		{"h", "help"},
		{"?", "help"},
		{"s", "settings"},
		{"/", "search"},
		{"t", "tag-filter"},
		{"p", "project-filter"},
		{"i", "ai-command"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t)
			m.Update(key(tt.key))
			assert.Equal(t, tt.want, m.mode.modeName())
		})
	}
}

func TestHomeAiCommandRequiresConfiguredClient(t *testing.T) {
	m := newTestModel(t)
	m.settings.OpenAIAPIKey = ""
	require.NoError(t, m.settings.Save())
	client, err := ai.NewClient()
	require.NoError(t, err)
	m.aiClient = client

	m.Update(key("i"))

	assert.Equal(t, "home", m.mode.modeName())
	assert.Equal(t, "ai is not configured - set your openai api key in settings", m.statusBar.Message())
}

func TestHomeEnterRequiresSelection(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("enter"))
	assert.Equal(t, "home", m.mode.modeName())

	note := models.NewNote("hello #rust", "Hello", models.SourceUI)
	setNotes(m, note)

	m.Update(key("enter"))
	md, ok := m.mode.(viewNoteMode)
	require.True(t, ok)
	assert.Equal(t, note.ID, md.noteID)
}

func TestHomeDeleteRequiresSelection(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("d"))
	assert.Equal(t, "home", m.mode.modeName())

	note := models.NewNote("content", "Title", models.SourceUI)
	setNotes(m, note)

	m.Update(key("d"))
	md, ok := m.mode.(deleteConfirmMode)
	require.True(t, ok)
	assert.Equal(t, note.ID, md.noteID)
}

func TestApplyFiltersExcludesSoftDeleted(t *testing.T) {
	m := newTestModel(t)
	kept := models.NewNote("still here", "Kept", models.SourceUI)
	trashed := models.NewNote("gone", "Trashed", models.SourceUI)
	trashed.Tags = append(trashed.Tags, models.TagDeleted)

	setNotes(m, kept, trashed)

	require.Equal(t, 1, m.noteList.Len())
	assert.Equal(t, kept.ID, m.noteList.Notes()[0].ID)
}

func TestApplyFiltersSubstringAndMetadata(t *testing.T) {
	rust := models.NewNote("memory safety notes #rust +compiler", "Rust Notes", models.SourceUI)
	js := models.NewNote("event loop notes #javascript +webapp", "JS Notes", models.SourceUI)

	tests := []struct {
		name          string
		searchFilter  string
		tagFilter     string
		projectFilter string
		wantTitles    []string
	}{
		{"no filters", "", "", "", []string{"Rust Notes", "JS Notes"}},
		{"substring matches title", "rust", "", "", []string{"Rust Notes"}},
		{"substring matches content", "event loop", "", "", []string{"JS Notes"}},
		{"substring is case-insensitive", "RUST", "", "", []string{"Rust Notes"}},
		{"tag filter", "", "javascript", "", []string{"JS Notes"}},
		{"tag filter folds case", "", "Rust", "", []string{"Rust Notes"}},
		{"project filter", "", "", "compiler", []string{"Rust Notes"}},
		{"filters combine", "notes", "rust", "webapp", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.allNotes = []*models.Note{rust, js}
			m.searchFilter = tt.searchFilter
			m.tagFilter = tt.tagFilter
			m.projectFilter = tt.projectFilter

			m.applyFilters()

			var titles []string
			for _, note := range m.noteList.Notes() {
				titles = append(titles, note.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestFilterCommitAndDiscard(t *testing.T) {
	m := newTestModel(t)
	setNotes(m,
		models.NewNote("about rust", "Rust", models.SourceUI),
		models.NewNote("about go", "Go", models.SourceUI),
	)

	m.Update(key("/"))
	m.filterInput.SetValue("rust")
	m.Update(key("enter"))

	assert.Equal(t, "home", m.mode.modeName())
	assert.Equal(t, "rust", m.searchFilter)
	assert.Equal(t, 1, m.noteList.Len())

	// Esc discards the buffer without touching the committed filter
	m.Update(key("/"))
	m.filterInput.SetValue("go")
	m.Update(key("esc"))

	assert.Equal(t, "rust", m.searchFilter)
	assert.Equal(t, 1, m.noteList.Len())
}

func TestClearFilters(t *testing.T) {
	m := newTestModel(t)
	setNotes(m,
		models.NewNote("about rust #rust", "Rust", models.SourceUI),
		models.NewNote("about go", "Go", models.SourceUI),
	)
	m.tagFilter = "rust"
	m.applyFilters()
	require.Equal(t, 1, m.noteList.Len())

	m.Update(key("c"))

	assert.False(t, m.hasActiveFilters())
	assert.Equal(t, 2, m.noteList.Len())
	assert.Equal(t, "filters cleared", m.statusBar.Message())
}

func TestSaveFromEditorRejectsEmptyContent(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("a"))
	m.editor.SetInserting(false)

	_, cmd := m.Update(key("s"))

	assert.Nil(t, cmd)
	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "cannot save empty note", m.statusBar.Message())
}

func TestSaveFromEditorCreatesNote(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("a"))
	m.editor.SetContent("fresh idea #inbox")
	m.editor.SetInserting(false)

	_, cmd := m.Update(key("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, "home", m.mode.modeName())

	msg := cmd()
	saved, ok := msg.(noteSavedMsg)
	require.True(t, ok)
	assert.Equal(t, "note saved successfully", saved.status)

	notes, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"inbox"}, notes[0].Tags)
}

func TestRewriteRejectedWhileBusy(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("a"))
	m.editor.SetContent("draft text")
	m.editor.SetInserting(false)
	m.rewriteSlot.status = aiProcessing

	m.Update(key("r"))

	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "a rewrite is already in progress", m.statusBar.Message())
}

func TestRewriteRejectedForEmptyDraft(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("a"))
	m.editor.SetInserting(false)

	m.Update(key("r"))

	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "nothing to rewrite", m.statusBar.Message())
}

func TestStartRewriteEntersRewriteMode(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("a"))
	m.editor.SetContent("draft text")
	m.editor.SetInserting(false)

	_, cmd := m.Update(key("r"))

	require.NotNil(t, cmd)
	assert.Equal(t, "ai-rewrite", m.mode.modeName())
	assert.Equal(t, "add", m.returnMode.modeName())
	assert.True(t, m.rewriteSlot.busy())
	assert.Equal(t, 1, m.rewriteSlot.generation)
}

func TestRewriteResultSuccess(t *testing.T) {
	m := newTestModel(t)
	m.mode = aiRewriteMode{}
	m.rewriteSlot.status = aiProcessing
	m.rewriteSlot.generation = 1

	m.Update(aiRewriteResultMsg{generation: 1, text: "polished text"})

	assert.Equal(t, aiSuccess, m.rewriteSlot.status)
	md, ok := m.mode.(aiRewriteMode)
	require.True(t, ok)
	assert.Equal(t, "polished text", md.rewritten)
}

func TestRewriteResultFailure(t *testing.T) {
	m := newTestModel(t)
	m.mode = aiRewriteMode{}
	m.rewriteSlot.status = aiProcessing
	m.rewriteSlot.generation = 1

	m.Update(aiRewriteResultMsg{generation: 1, err: "timeout: request took too long"})

	assert.Equal(t, aiFailed, m.rewriteSlot.status)
	assert.Equal(t, "timeout: request took too long", m.rewriteSlot.message)
}

func TestStaleRewriteResultIsDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.mode = aiRewriteMode{}
	m.rewriteSlot.status = aiProcessing
	m.rewriteSlot.generation = 2

	m.Update(aiRewriteResultMsg{generation: 1, text: "stale text"})

	assert.Equal(t, aiProcessing, m.rewriteSlot.status)
	md, ok := m.mode.(aiRewriteMode)
	require.True(t, ok)
	assert.Empty(t, md.rewritten)
}

func TestRewriteCancelInvalidatesInFlightResult(t *testing.T) {
	m := newTestModel(t)
	m.returnMode = addNoteMode{}
	m.mode = aiRewriteMode{}
	m.rewriteSlot.status = aiProcessing
	m.rewriteSlot.generation = 1

	m.Update(key("esc"))

	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "rewrite cancelled", m.statusBar.Message())
	assert.False(t, m.rewriteSlot.busy())
	assert.Equal(t, 2, m.rewriteSlot.generation)

	// The completion of the cancelled request now carries a stale
	// generation and changes nothing
	m.Update(aiRewriteResultMsg{generation: 1, text: "too late"})
	assert.Equal(t, aiIdle, m.rewriteSlot.status)
}

func TestAcceptRewriteIntoDraft(t *testing.T) {
	m := newTestModel(t)
	m.editor.Reset()
	m.editor.SetContent("rough draft")
	m.returnMode = addNoteMode{}
	m.mode = aiRewriteMode{rewritten: "polished draft"}
	m.rewriteSlot.status = aiSuccess

	_, cmd := m.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "polished draft", m.editor.Content())
	assert.Equal(t, "rewrite applied to draft", m.statusBar.Message())
}

func TestAcceptRewriteFromViewerSaves(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("rough text", "Note", models.SourceUI)
	require.NoError(t, store.Save(note))
	setNotes(m, note)

	m.returnMode = viewNoteMode{noteID: note.ID}
	m.mode = aiRewriteMode{noteID: note.ID, rewritten: "polished text #rust"}
	m.rewriteSlot.status = aiSuccess

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "view", m.mode.modeName())
	assert.Equal(t, "polished text #rust", note.Content)
	assert.Equal(t, []string{"rust"}, note.Tags)
	assert.NotNil(t, note.Updated)

	msg := cmd()
	saved, ok := msg.(noteSavedMsg)
	require.True(t, ok)
	assert.Equal(t, "note rewritten successfully", saved.status)
}

func TestDiscardRewrite(t *testing.T) {
	m := newTestModel(t)
	m.returnMode = addNoteMode{}
	m.mode = aiRewriteMode{rewritten: "unwanted"}
	m.rewriteSlot.status = aiSuccess

	m.Update(key("esc"))

	assert.Equal(t, "add", m.mode.modeName())
	assert.Equal(t, "rewrite discarded", m.statusBar.Message())
}

func TestDeleteConfirmTogglesPreference(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("content", "Title", models.SourceUI)
	setNotes(m, note)
	m.mode = deleteConfirmMode{noteID: note.ID}

	require.False(t, m.hardDelete)
	m.Update(key("tab"))
	assert.True(t, m.hardDelete)
	m.Update(key("j"))
	assert.False(t, m.hardDelete)
}

func TestSoftDelete(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("content", "Title", models.SourceUI)
	require.NoError(t, store.Save(note))
	setNotes(m, note)
	m.mode = deleteConfirmMode{noteID: note.ID}

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "home", m.mode.modeName())
	assert.True(t, note.HasTag(models.TagDeleted))

	msg := cmd()
	deleted, ok := msg.(noteDeletedMsg)
	require.True(t, ok)
	assert.False(t, deleted.hard)

	// Still on disk, just tagged
	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].HasTag(models.TagDeleted))
}

func TestHardDelete(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("content", "Title", models.SourceUI)
	require.NoError(t, store.Save(note))
	setNotes(m, note)
	m.mode = deleteConfirmMode{noteID: note.ID}
	m.hardDelete = true

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	deleted, ok := msg.(noteDeletedMsg)
	require.True(t, ok)
	assert.True(t, deleted.hard)

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDeleteConfirmVanishedNote(t *testing.T) {
	m := newTestModel(t)
	m.mode = deleteConfirmMode{noteID: "missing"}

	_, cmd := m.Update(key("enter"))

	assert.Equal(t, "home", m.mode.modeName())
	assert.Equal(t, "note no longer exists", m.statusBar.Message())
	assert.NotNil(t, cmd)
}

func TestAiCommandStagedFlow(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("error handling #rust", "Rust errors", models.SourceUI)
	setNotes(m, note)

	m.Update(key("i"))
	require.Equal(t, "ai-command", m.mode.modeName())

	// Translation completion moves to the confirmation stage
	m.translateSlot.status = aiProcessing
	m.translateSlot.generation = 1
	m.Update(aiQueryResultMsg{generation: 1, text: "#rust"})

	md, ok := m.mode.(aiCommandMode)
	require.True(t, ok)
	assert.True(t, md.confirming)
	assert.Equal(t, "#rust", md.query)

	// Enter executes the generated query
	m.Update(key("enter"))
	md, ok = m.mode.(aiCommandMode)
	require.True(t, ok)
	assert.True(t, md.executed)
	require.Len(t, md.results, 1)
	assert.Equal(t, note.ID, md.results[0].Note.ID)

	// Any dismissal key returns home
	m.Update(key("esc"))
	assert.Equal(t, "home", m.mode.modeName())
}

func TestAiCommandConfirmationBacksOut(t *testing.T) {
	m := newTestModel(t)
	m.mode = aiCommandMode{query: "#rust", confirming: true}

	m.Update(key("esc"))

	md, ok := m.mode.(aiCommandMode)
	require.True(t, ok)
	assert.False(t, md.confirming)
	assert.Empty(t, md.query)
}

func TestAiQueryFailureReturnsToInput(t *testing.T) {
	m := newTestModel(t)
	m.mode = aiCommandMode{}
	m.translateSlot.status = aiProcessing
	m.translateSlot.generation = 1

	m.Update(aiQueryResultMsg{generation: 1, err: "api error: 500 - boom"})

	assert.Equal(t, aiFailed, m.translateSlot.status)
	md, ok := m.mode.(aiCommandMode)
	require.True(t, ok)
	assert.False(t, md.confirming)
	assert.Equal(t, "translation failed: api error: 500 - boom", m.statusBar.Message())
}

func TestNotesLoadedRefreshesViewedNote(t *testing.T) {
	m := newTestModel(t)
	note := models.NewNote("content", "Title", models.SourceUI)
	setNotes(m, note)
	m.viewer.SetNote(note)
	m.mode = viewNoteMode{noteID: note.ID}

	// Reload without the viewed note falls back home
	m.Update(notesLoadedMsg{notes: nil})
	assert.Equal(t, "home", m.mode.modeName())
}

func TestSettingsStyleCycle(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("s"))
	require.Equal(t, "settings", m.mode.modeName())
	require.Equal(t, settingsFieldAPIKey, m.activeSetting)

	m.Update(key("tab"))
	require.Equal(t, settingsFieldStyle, m.activeSetting)

	styles := config.PromptStyles()
	start := m.styleIndex
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, (start+1)%len(styles), m.styleIndex)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, start, m.styleIndex)
}

func TestSaveSettingsPersists(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("s"))
	m.apiKeyInput.SetValue("sk-new")
	m.styleIndex = 2 // concise
	m.customPromptInput.SetValue("keep it short")

	m.Update(key("enter"))

	assert.Equal(t, "home", m.mode.modeName())
	assert.Equal(t, "settings saved", m.statusBar.Message())

	loaded, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "sk-new", loaded.OpenAIAPIKey)
	assert.Equal(t, "concise", loaded.AIPromptStyle)
	assert.Equal(t, "keep it short", loaded.CustomAIPrompt)
}

func TestHelpDismiss(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("h"))
	require.Equal(t, "help", m.mode.modeName())

	m.Update(key("esc"))
	assert.Equal(t, "home", m.mode.modeName())
}

func TestWindowSizeFlagsSmallTerminal(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, m.terminalTooSmall)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.False(t, m.terminalTooSmall)
}
