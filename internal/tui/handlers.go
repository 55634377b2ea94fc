package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielarbabian/stash/internal/logger"
)

// Message Handlers
//
// These methods handle the async result messages produced by the
// command builders in commands.go.

// handleWindowSize propagates terminal dimensions to the components
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.noteList.SetSize(msg.Width, msg.Height-6)
	m.editor.SetSize(msg.Width, msg.Height)
	m.viewer.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.filterInput.Width = msg.Width - 4
	m.commandInput.Width = msg.Width - 4

	return m, nil
}

// handleNotesLoaded replaces the unfiltered list and recomputes the
// filtered view
func (m *Model) handleNotesLoaded(msg notesLoadedMsg) (tea.Model, tea.Cmd) {
	m.allNotes = msg.notes
	m.applyFilters()

	// The viewed note may have changed on disk
	if md, ok := m.mode.(viewNoteMode); ok {
		if note := m.findNote(md.noteID); note != nil {
			m.viewer.SetNote(note)
		} else {
			m.mode = homeMode{}
		}
	}

	return m, nil
}

// handleNoteSaved surfaces the mutation status and triggers the full
// reload every mutation is followed by
func (m *Model) handleNoteSaved(msg noteSavedMsg) (tea.Model, tea.Cmd) {
	if msg.status != "" {
		m.statusBar.SetMessage(msg.status)
	}
	return m, m.loadNotes()
}

// handleNoteDeleted surfaces the deletion status and reloads
func (m *Model) handleNoteDeleted(msg noteDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.hard {
		m.statusBar.SetMessage("note permanently deleted")
	} else {
		m.statusBar.SetMessage("note moved to trash (soft delete)")
	}
	return m, m.loadNotes()
}

// handleAiRewriteResult consumes a rewrite completion. Results from a
// cancelled or superseded request carry a stale generation and are
// dropped without touching the current state.
func (m *Model) handleAiRewriteResult(msg aiRewriteResultMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.rewriteSlot.generation {
		logger.Debug("tui: discarding stale rewrite result",
			"resultGeneration", msg.generation, "currentGeneration", m.rewriteSlot.generation)
		return m, nil
	}

	if msg.err != "" {
		m.rewriteSlot.status = aiFailed
		m.rewriteSlot.message = msg.err
		return m, nil
	}

	m.rewriteSlot.status = aiSuccess
	if md, ok := m.mode.(aiRewriteMode); ok {
		md.rewritten = msg.text
		m.mode = md
	}
	return m, nil
}

// handleAiQueryResult consumes a query-translation completion, subject
// to the same generation check as rewrites
func (m *Model) handleAiQueryResult(msg aiQueryResultMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.translateSlot.generation {
		logger.Debug("tui: discarding stale translation result",
			"resultGeneration", msg.generation, "currentGeneration", m.translateSlot.generation)
		return m, nil
	}

	if msg.err != "" {
		m.translateSlot.status = aiFailed
		m.translateSlot.message = msg.err
		m.statusBar.SetError("translation failed: " + msg.err)
		if _, ok := m.mode.(aiCommandMode); ok {
			m.commandInput.Focus()
			m.mode = aiCommandMode{}
		}
		return m, nil
	}

	m.translateSlot.status = aiSuccess
	if _, ok := m.mode.(aiCommandMode); ok {
		m.commandInput.Blur()
		m.mode = aiCommandMode{query: msg.text, confirming: true}
	}
	return m, nil
}

// handleFileChanged reloads after an external edit and re-arms the
// watcher wait
func (m *Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	logger.Debug("tui: notes changed on disk", "noteID", msg.noteID)
	return m, tea.Batch(m.loadNotes(), m.waitForFileChange())
}

// handleSpinnerTick keeps the spinner animating while an AI slot is
// processing
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.rewriteSlot.busy() && !m.translateSlot.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleError surfaces a failed operation as a status message. Errors
// are never fatal to the session.
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	logger.Error("tui: operation failed", "error", msg.err)
	m.statusBar.SetError(msg.err.Error())

	// Mutation failures return to home rather than leaving the session
	// stuck in a mode whose target may be gone
	switch m.mode.(type) {
	case deleteConfirmMode:
		m.mode = homeMode{}
	}

	return m, nil
}
