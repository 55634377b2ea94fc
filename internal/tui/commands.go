package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielarbabian/stash/internal/logger"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/store"
)

// Command Builders
//
// These methods create tea.Cmd functions for async operations.
// They follow the async closure capture pattern to avoid bugs
// where model state changes between closure creation and execution.
//
// Key principle: Capture all needed values BEFORE returning the closure.
// Note structs are mutated in the Update handlers; commands only do the
// I/O and report back.

// loadNotes reloads the full note list from disk
func (m *Model) loadNotes() tea.Cmd {
	return func() tea.Msg {
		logger.Debug("tui: loading notes")
		notes, err := store.LoadAll()
		if err != nil {
			logger.Debug("tui: failed to load notes", "error", err)
			return errMsg{err}
		}
		logger.Debug("tui: notes loaded", "count", len(notes))
		return notesLoadedMsg{notes: notes}
	}
}

// saveNote writes a note to disk and reports the status message to show
// after the follow-up reload
func (m *Model) saveNote(note *models.Note, status string) tea.Cmd {
	capturedNote := note
	capturedStatus := status

	return func() tea.Msg {
		if err := store.Save(capturedNote); err != nil {
			return errMsg{err}
		}
		return noteSavedMsg{status: capturedStatus}
	}
}

// hardDeleteNote removes the note file permanently
func (m *Model) hardDeleteNote(noteID string) tea.Cmd {
	capturedID := noteID

	return func() tea.Msg {
		if err := store.Delete(capturedID); err != nil {
			return errMsg{err}
		}
		return noteDeletedMsg{hard: true}
	}
}

// softDeleteNote rewrites an already-tagged note; the caller appends
// the deleted tag and stamps the update time before invoking this.
func (m *Model) softDeleteNote(note *models.Note) tea.Cmd {
	capturedNote := note

	return func() tea.Msg {
		if err := store.Save(capturedNote); err != nil {
			return errMsg{err}
		}
		return noteDeletedMsg{hard: false}
	}
}

// startRewrite launches a rewrite operation for the given content and
// bumps the rewrite generation so stale completions are discarded.
// Callers must check slot.busy() first.
func (m *Model) startRewrite(content string) tea.Cmd {
	m.rewriteSlot.generation++
	m.rewriteSlot.status = aiProcessing
	m.rewriteSlot.message = ""

	capturedGen := m.rewriteSlot.generation
	capturedClient := m.aiClient
	capturedNote := &models.Note{Content: content}

	return func() tea.Msg {
		logger.Debug("tui: starting ai rewrite", "generation", capturedGen)
		text, err := capturedClient.RewriteNote(context.Background(), capturedNote)
		if err != nil {
			return aiRewriteResultMsg{generation: capturedGen, err: err.Error()}
		}
		return aiRewriteResultMsg{generation: capturedGen, text: text}
	}
}

// startTranslate launches a query-translation operation on the
// translation slot. Callers must check slot.busy() first.
func (m *Model) startTranslate(input string) tea.Cmd {
	m.translateSlot.generation++
	m.translateSlot.status = aiProcessing
	m.translateSlot.message = ""

	capturedGen := m.translateSlot.generation
	capturedClient := m.aiClient
	capturedInput := input

	return func() tea.Msg {
		logger.Debug("tui: starting ai query translation", "generation", capturedGen)
		text, err := capturedClient.TranslateQuery(context.Background(), capturedInput)
		if err != nil {
			return aiQueryResultMsg{generation: capturedGen, err: err.Error()}
		}
		return aiQueryResultMsg{generation: capturedGen, text: text}
	}
}

// waitForFileChange waits for file change events from the watcher.
// This is a non-blocking async command - it returns immediately and the
// closure waits for the watcher channel to signal changes.
func (m *Model) waitForFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return func() tea.Msg {
		event, ok := <-m.watcher.Changes()
		if !ok {
			return nil
		}
		return fileChangedMsg{noteID: event.NoteID}
	}
}
