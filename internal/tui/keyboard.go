package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielarbabian/stash/internal/ai"
	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/logger"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/search"
	"github.com/danielarbabian/stash/internal/tui/components"
)

// Keyboard Handlers
//
// These methods handle keyboard input organized by mode. The main
// handleKeyPress dispatcher routes to the handler for the active mode;
// the mode value is the sole discriminant.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	switch md := m.mode.(type) {
	case homeMode:
		return m.handleHomeKeys(msg)

	case addNoteMode:
		return m.handleEditorKeys(msg, "")

	case editNoteMode:
		return m.handleEditorKeys(msg, md.noteID)

	case viewNoteMode:
		return m.handleViewKeys(msg, md)

	case helpMode:
		return m.handleHelpKeys(msg)

	case settingsMode:
		return m.handleSettingsKeys(msg)

	case searchMode, tagFilterMode, projectFilterMode:
		return m.handleFilterKeys(msg)

	case deleteConfirmMode:
		return m.handleDeleteConfirmKeys(msg, md)

	case aiRewriteMode:
		return m.handleAiRewriteKeys(msg, md)

	case aiCommandMode:
		return m.handleAiCommandKeys(msg, md)
	}

	return m, nil
}

// handleQuit stops the watcher and quits
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return m, tea.Quit
}

// handleHomeKeys handles keyboard input on the home screen
func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()

	case "a":
		m.editor.Reset()
		m.statusBar.Clear()
		m.mode = addNoteMode{}
		return m, nil

	case "h", "?":
		m.mode = helpMode{}
		return m, nil

	case "s":
		m.enterSettings()
		return m, nil

	case "/":
		m.filterInput.Placeholder = "search title and content..."
		m.filterInput.SetValue(m.searchFilter)
		m.filterInput.Focus()
		m.mode = searchMode{}
		return m, nil

	case "t":
		m.filterInput.Placeholder = "filter by tag..."
		m.filterInput.SetValue(m.tagFilter)
		m.filterInput.Focus()
		m.mode = tagFilterMode{}
		return m, nil

	case "p":
		m.filterInput.Placeholder = "filter by project..."
		m.filterInput.SetValue(m.projectFilter)
		m.filterInput.Focus()
		m.mode = projectFilterMode{}
		return m, nil

	case "d":
		selected := m.noteList.Selected()
		if selected == nil {
			return m, nil
		}
		m.mode = deleteConfirmMode{noteID: selected.ID}
		return m, nil

	case "c":
		m.clearFilters()
		m.statusBar.SetMessage("filters cleared")
		return m, nil

	case "r":
		m.statusBar.SetMessage("notes refreshed")
		return m, m.loadNotes()

	case "i":
		if !m.aiAvailable() {
			return m, nil
		}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.mode = aiCommandMode{}
		return m, nil

	case "j", "down":
		m.noteList.CursorDown()
		return m, nil

	case "k", "up":
		m.noteList.CursorUp()
		return m, nil

	case "enter":
		selected := m.noteList.Selected()
		if selected == nil {
			return m, nil
		}
		m.viewer.SetNote(selected)
		m.mode = viewNoteMode{noteID: selected.ID}
		return m, nil
	}

	return m, nil
}

// handleEditorKeys handles the add/edit screens. An empty noteID means
// a new note; otherwise an existing note is being edited.
func (m *Model) handleEditorKeys(msg tea.KeyMsg, noteID string) (tea.Model, tea.Cmd) {
	// Insert editing: keystrokes go to the active field, Esc drops back
	// to the command sub-mode.
	if m.editor.Inserting() {
		if msg.Type == tea.KeyEsc {
			m.editor.SetInserting(false)
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "i":
		m.editor.SetInserting(true)
		return m, nil

	case "t":
		m.editor.SetActive(components.FieldTitle)
		m.editor.SetInserting(true)
		return m, nil

	case "c":
		m.editor.SetActive(components.FieldContent)
		m.editor.SetInserting(true)
		return m, nil

	case "s":
		return m.saveFromEditor(noteID)

	case "r":
		if !m.aiAvailable() {
			return m, nil
		}
		if m.rewriteSlot.busy() {
			m.statusBar.SetError("a rewrite is already in progress")
			return m, nil
		}
		if strings.TrimSpace(m.editor.Content()) == "" {
			m.statusBar.SetError("nothing to rewrite")
			return m, nil
		}
		m.returnMode = m.mode
		m.mode = aiRewriteMode{noteID: noteID}
		return m, tea.Batch(m.startRewrite(m.editor.Content()), m.spinner.Tick)

	case "q", "esc":
		m.mode = homeMode{}
		return m, nil
	}

	return m, nil
}

// saveFromEditor persists the editor buffers as a new or updated note
func (m *Model) saveFromEditor(noteID string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.editor.Content()) == "" {
		m.statusBar.SetError("cannot save empty note")
		return m, nil
	}

	if noteID == "" {
		note := models.NewNote(m.editor.Content(), m.editor.Title(), models.SourceUI)
		m.mode = homeMode{}
		return m, m.saveNote(note, "note saved successfully")
	}

	note := m.findNote(noteID)
	if note == nil {
		m.statusBar.SetError("note no longer exists")
		m.mode = homeMode{}
		return m, m.loadNotes()
	}

	note.Title = m.editor.Title()
	note.Content = m.editor.Content()
	note.SyncMetadata()
	note.Touch()
	m.mode = homeMode{}
	return m, m.saveNote(note, "note saved successfully")
}

// handleViewKeys handles the single-note view screen
func (m *Model) handleViewKeys(msg tea.KeyMsg, md viewNoteMode) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = homeMode{}
		return m, nil

	case "e":
		if !m.inFilteredList(md.noteID) {
			m.statusBar.SetError("note no longer exists")
			m.mode = homeMode{}
			return m, nil
		}
		note := m.findNote(md.noteID)
		m.editor.Load(note.Title, note.Content)
		m.mode = editNoteMode{noteID: md.noteID}
		return m, nil

	case "r":
		if !m.inFilteredList(md.noteID) {
			m.statusBar.SetError("note no longer exists")
			m.mode = homeMode{}
			return m, nil
		}
		if !m.aiAvailable() {
			return m, nil
		}
		if m.rewriteSlot.busy() {
			m.statusBar.SetError("a rewrite is already in progress")
			return m, nil
		}
		note := m.findNote(md.noteID)
		m.returnMode = m.mode
		m.mode = aiRewriteMode{noteID: md.noteID}
		return m, tea.Batch(m.startRewrite(note.Content), m.spinner.Tick)
	}

	// Everything else scrolls the viewport
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

// handleHelpKeys dismisses the help screen
func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "h", "enter", "?":
		m.mode = homeMode{}
	}
	return m, nil
}

// handleSettingsKeys handles the settings form
func (m *Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.apiKeyInput.Blur()
		m.customPromptInput.Blur()
		m.mode = homeMode{}
		return m, nil

	case "tab":
		m.activeSetting = (m.activeSetting + 1) % settingsFieldCount
		m.apiKeyInput.Blur()
		m.customPromptInput.Blur()
		switch m.activeSetting {
		case settingsFieldAPIKey:
			m.apiKeyInput.Focus()
		case settingsFieldCustomPrompt:
			m.customPromptInput.Focus()
		}
		return m, nil

	case "up", "down":
		if m.activeSetting == settingsFieldStyle {
			styles := config.PromptStyles()
			if msg.String() == "down" {
				m.styleIndex = (m.styleIndex + 1) % len(styles)
			} else {
				m.styleIndex = (m.styleIndex - 1 + len(styles)) % len(styles)
			}
			return m, nil
		}

	case "enter":
		return m.saveSettings()
	}

	var cmd tea.Cmd
	switch m.activeSetting {
	case settingsFieldAPIKey:
		m.apiKeyInput, cmd = m.apiKeyInput.Update(msg)
	case settingsFieldCustomPrompt:
		m.customPromptInput, cmd = m.customPromptInput.Update(msg)
	}
	return m, cmd
}

// saveSettings persists the settings form and rebuilds the AI client so
// the new credential takes effect immediately
func (m *Model) saveSettings() (tea.Model, tea.Cmd) {
	m.settings.OpenAIAPIKey = strings.TrimSpace(m.apiKeyInput.Value())
	m.settings.AIEnabled = m.settings.OpenAIAPIKey != ""
	m.settings.AIPromptStyle = config.PromptStyles()[m.styleIndex].Key
	m.settings.CustomAIPrompt = strings.TrimSpace(m.customPromptInput.Value())

	if err := m.settings.Save(); err != nil {
		logger.Error("tui: failed to save settings", "error", err)
		m.statusBar.SetError("failed to save settings: " + err.Error())
		return m, nil
	}

	if client, err := ai.NewClient(); err == nil {
		m.aiClient = client
	}

	m.apiKeyInput.Blur()
	m.customPromptInput.Blur()
	m.statusBar.SetMessage("settings saved")
	m.mode = homeMode{}
	return m, nil
}

// handleFilterKeys handles the three single-line filter capture modes
func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Discard without committing
		m.filterInput.Blur()
		m.mode = homeMode{}
		return m, nil

	case tea.KeyEnter:
		// Commit the trimmed buffer; an empty buffer clears that filter
		value := strings.TrimSpace(m.filterInput.Value())
		switch m.mode.(type) {
		case searchMode:
			m.searchFilter = value
		case tagFilterMode:
			m.tagFilter = value
		case projectFilterMode:
			m.projectFilter = value
		}
		m.applyFilters()
		m.filterInput.Blur()
		m.mode = homeMode{}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// handleDeleteConfirmKeys handles the delete confirmation dialog. The
// soft/hard preference is session-wide and survives the dialog.
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg, md deleteConfirmMode) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "up", "down", "j", "k":
		m.hardDelete = !m.hardDelete
		return m, nil

	case "enter", "y":
		note := m.findNote(md.noteID)
		if note == nil {
			m.statusBar.SetError("note no longer exists")
			m.mode = homeMode{}
			return m, m.loadNotes()
		}
		m.mode = homeMode{}
		if m.hardDelete {
			return m, m.hardDeleteNote(md.noteID)
		}
		if !note.HasTag(models.TagDeleted) {
			note.Tags = append(note.Tags, models.TagDeleted)
		}
		note.Touch()
		return m, m.softDeleteNote(note)

	case "esc", "n":
		m.mode = homeMode{}
		return m, nil
	}

	return m, nil
}

// handleAiRewriteKeys handles the rewrite result screen
func (m *Model) handleAiRewriteKeys(msg tea.KeyMsg, md aiRewriteMode) (tea.Model, tea.Cmd) {
	if m.rewriteSlot.busy() {
		if msg.Type == tea.KeyEsc {
			// The background request is not interrupted; bumping the
			// generation makes its eventual completion stale.
			m.rewriteSlot.reset()
			m.statusBar.SetMessage("rewrite cancelled")
			m.restoreReturnMode()
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		if md.rewritten == "" {
			return m, nil
		}
		return m.acceptRewrite(md)

	case "esc", "q", "n":
		m.rewriteSlot.status = aiIdle
		m.statusBar.SetMessage("rewrite discarded")
		m.restoreReturnMode()
		return m, nil
	}

	return m, nil
}

// acceptRewrite applies a successful rewrite: back into the editor
// buffer when the source was a draft, straight to disk when the source
// was a saved note viewed from the reader.
func (m *Model) acceptRewrite(md aiRewriteMode) (tea.Model, tea.Cmd) {
	m.rewriteSlot.status = aiIdle

	switch m.returnMode.(type) {
	case addNoteMode, editNoteMode:
		m.editor.SetContent(md.rewritten)
		m.statusBar.SetMessage("rewrite applied to draft")
		m.restoreReturnMode()
		return m, nil

	case viewNoteMode:
		note := m.findNote(md.noteID)
		if note == nil {
			m.statusBar.SetError("note no longer exists")
			m.mode = homeMode{}
			return m, m.loadNotes()
		}
		note.Content = md.rewritten
		note.SyncMetadata()
		note.Touch()
		m.viewer.SetNote(note)
		m.restoreReturnMode()
		return m, m.saveNote(note, "note rewritten successfully")
	}

	m.mode = homeMode{}
	return m, nil
}

// restoreReturnMode returns to the mode an AI screen was entered from
func (m *Model) restoreReturnMode() {
	if m.returnMode != nil {
		m.mode = m.returnMode
		m.returnMode = nil
		return
	}
	m.mode = homeMode{}
}

// handleAiCommandKeys walks the natural-language search flow: input,
// generated query confirmation, executed results. Esc backs out one
// step at a time.
func (m *Model) handleAiCommandKeys(msg tea.KeyMsg, md aiCommandMode) (tea.Model, tea.Cmd) {
	if m.translateSlot.busy() {
		if msg.Type == tea.KeyEsc {
			m.translateSlot.reset()
			m.statusBar.SetMessage("translation cancelled")
			m.commandInput.Focus()
			m.mode = aiCommandMode{}
		}
		return m, nil
	}

	// Results stage
	if md.executed {
		switch msg.String() {
		case "esc", "q", "enter":
			m.mode = homeMode{}
		}
		return m, nil
	}

	// Confirmation stage: the generated query is shown and only runs on
	// an explicit Enter.
	if md.confirming {
		switch msg.String() {
		case "enter":
			results := search.SearchNotes(m.allNotes, md.query, search.Options{})
			m.mode = aiCommandMode{query: md.query, results: results, executed: true}
			return m, nil

		case "esc":
			m.commandInput.Focus()
			m.mode = aiCommandMode{}
			return m, nil
		}
		return m, nil
	}

	// Input stage
	switch msg.Type {
	case tea.KeyEsc:
		m.commandInput.Blur()
		m.mode = homeMode{}
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.commandInput.Value())
		if input == "" {
			return m, nil
		}
		return m, tea.Batch(m.startTranslate(input), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}
