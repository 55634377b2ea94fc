package tui

import (
	"github.com/danielarbabian/stash/internal/search"
)

// Modes
//
// The TUI is a mode machine: exactly one mode is active at a time and
// it is the sole discriminant for how key events are interpreted and
// what is rendered. Modes are a sealed interface with one struct per
// mode so payloads (the note being viewed, the pending rewrite text)
// travel with the mode value instead of living in loose model fields.
// Transitions replace the whole mode value.

type mode interface {
	modeName() string
}

type homeMode struct{}

func (homeMode) modeName() string { return "home" }

type addNoteMode struct{}

func (addNoteMode) modeName() string { return "add" }

type editNoteMode struct {
	noteID string
}

func (editNoteMode) modeName() string { return "edit" }

type viewNoteMode struct {
	noteID string
}

func (viewNoteMode) modeName() string { return "view" }

type helpMode struct{}

func (helpMode) modeName() string { return "help" }

type settingsMode struct{}

func (settingsMode) modeName() string { return "settings" }

type searchMode struct{}

func (searchMode) modeName() string { return "search" }

type tagFilterMode struct{}

func (tagFilterMode) modeName() string { return "tag-filter" }

type projectFilterMode struct{}

func (projectFilterMode) modeName() string { return "project-filter" }

type deleteConfirmMode struct {
	noteID string
}

func (deleteConfirmMode) modeName() string { return "delete-confirm" }

// aiRewriteMode carries the rewrite target: an empty noteID means the
// unsaved draft in the editor. rewritten stays empty until the
// background operation succeeds.
type aiRewriteMode struct {
	noteID    string
	rewritten string
}

func (aiRewriteMode) modeName() string { return "ai-rewrite" }

// aiCommandMode walks through three stages: typed input, generated
// query awaiting confirmation, and executed results.
type aiCommandMode struct {
	query      string
	results    []search.Result
	executed   bool
	confirming bool
}

func (aiCommandMode) modeName() string { return "ai-command" }

// AI slot state

type aiStatus int

const (
	aiIdle aiStatus = iota
	aiProcessing
	aiSuccess
	aiFailed
)

// aiSlot tracks one logical AI operation kind. The generation counter
// is bumped on every start and on cancel; a completion carrying a stale
// generation is discarded instead of racing against a newer request.
type aiSlot struct {
	status     aiStatus
	message    string
	generation int
}

func (s *aiSlot) busy() bool {
	return s.status == aiProcessing
}

// reset returns the slot to idle and invalidates any in-flight result
func (s *aiSlot) reset() {
	s.status = aiIdle
	s.message = ""
	s.generation++
}
