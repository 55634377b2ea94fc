package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/ai"
	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/models"
	"github.com/danielarbabian/stash/internal/parser"
	"github.com/danielarbabian/stash/internal/sync"
	"github.com/danielarbabian/stash/internal/tui/components"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 16
)

// settingsField identifies the focused input on the settings screen
type settingsField int

const (
	settingsFieldAPIKey settingsField = iota
	settingsFieldStyle
	settingsFieldCustomPrompt
	settingsFieldCount // Keep this last to get the count
)

// Model represents the main TUI state
//
// Async Closure Capture Pattern
// ==============================
// tea.Cmd closures capture variables by REFERENCE, not by value. Model
// state may change between when a closure is created and when it runs,
// so every command builder in commands.go captures the values it needs
// into locals (capturedXxx) BEFORE returning the closure.
type Model struct {
	settings *config.Settings
	aiClient *ai.Client
	watcher  *sync.Watcher

	mode       mode
	returnMode mode // restored when an AI mode is cancelled or resolved

	allNotes []*models.Note

	// Active filters; the note list holds the filtered view
	searchFilter  string
	tagFilter     string
	projectFilter string

	// Session-wide deletion preference
	hardDelete bool

	width  int
	height int

	// Components
	noteList  *components.NoteList
	editor    *components.NoteEditor
	viewer    *components.NoteViewer
	statusBar *components.StatusBar
	spinner   spinner.Model

	// Single-line capture inputs
	filterInput       textinput.Model
	commandInput      textinput.Model
	apiKeyInput       textinput.Model
	customPromptInput textinput.Model

	// Settings screen state
	activeSetting settingsField
	styleIndex    int

	// AI slots
	rewriteSlot   aiSlot
	translateSlot aiSlot

	// Terminal size validation
	terminalTooSmall bool
}

// NewModel creates a new TUI model
func NewModel(settings *config.Settings, aiClient *ai.Client) *Model {
	// Create watcher
	watcher, err := sync.NewWatcher()
	if err != nil {
		// Continue without live reload
		watcher = nil
	}

	filterInput := textinput.New()
	filterInput.CharLimit = 0

	commandInput := textinput.New()
	commandInput.Placeholder = "describe what you're looking for..."
	commandInput.CharLimit = 0

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "sk-..."
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = 0

	customPromptInput := textinput.New()
	customPromptInput.Placeholder = "extra rewrite instructions..."
	customPromptInput.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	sb := components.NewStatusBar()
	sb.SetHints(homeHints)

	return &Model{
		settings:          settings,
		aiClient:          aiClient,
		watcher:           watcher,
		mode:              homeMode{},
		noteList:          components.NewNoteList(),
		editor:            components.NewNoteEditor(),
		viewer:            components.NewNoteViewer(),
		statusBar:         sb,
		spinner:           sp,
		filterInput:       filterInput,
		commandInput:      commandInput,
		apiKeyInput:       apiKeyInput,
		customPromptInput: customPromptInput,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadNotes()}

	// Start watcher
	if m.watcher != nil {
		if err := m.watcher.Start(); err == nil {
			cmds = append(cmds, m.waitForFileChange())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
// This function is a dispatcher that routes messages to dedicated
// handler methods organized in handlers.go and keyboard.go
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case notesLoadedMsg:
		return m.handleNotesLoaded(msg)

	case noteSavedMsg:
		return m.handleNoteSaved(msg)

	case noteDeletedMsg:
		return m.handleNoteDeleted(msg)

	case aiRewriteResultMsg:
		return m.handleAiRewriteResult(msg)

	case aiQueryResultMsg:
		return m.handleAiQueryResult(msg)

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case errMsg:
		return m.handleError(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		return m, nil
	}
}

// applyFilters recomputes the filtered view from allNotes. It is a pure
// function of the unfiltered list and the three filter strings, plus
// the permanent exclusion of soft-deleted notes. The cursor resets to
// the first element (or none, if empty).
func (m *Model) applyFilters() {
	filtered := make([]*models.Note, 0, len(m.allNotes))

	for _, note := range m.allNotes {
		if note.HasTag(models.TagDeleted) {
			continue
		}

		if m.searchFilter != "" {
			q := strings.ToLower(m.searchFilter)
			if !strings.Contains(strings.ToLower(note.Title), q) &&
				!strings.Contains(strings.ToLower(note.Content), q) {
				continue
			}
		}

		if m.tagFilter != "" && !parser.ContainsFold(note.Tags, m.tagFilter) {
			continue
		}

		if m.projectFilter != "" && !parser.ContainsFold(parser.Projects(note.Content), m.projectFilter) {
			continue
		}

		filtered = append(filtered, note)
	}

	m.noteList.SetNotes(filtered)
}

// clearFilters drops all three filters and recomputes the view
func (m *Model) clearFilters() {
	m.searchFilter = ""
	m.tagFilter = ""
	m.projectFilter = ""
	m.applyFilters()
}

// hasActiveFilters reports whether any filter is set
func (m *Model) hasActiveFilters() bool {
	return m.searchFilter != "" || m.tagFilter != "" || m.projectFilter != ""
}

// findNote looks a note up by ID in the unfiltered list
func (m *Model) findNote(id string) *models.Note {
	for _, note := range m.allNotes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// inFilteredList reports whether a note is still part of the filtered
// view; view-mode transitions require this.
func (m *Model) inFilteredList(id string) bool {
	for _, note := range m.noteList.Notes() {
		if note.ID == id {
			return true
		}
	}
	return false
}

// aiAvailable checks the AI entry-point precondition and surfaces the
// rejection as a status message when it fails.
func (m *Model) aiAvailable() bool {
	if m.aiClient != nil && m.aiClient.IsConfigured() {
		return true
	}
	m.statusBar.SetError("ai is not configured - set your openai api key in settings")
	return false
}

// enterSettings loads the persisted settings into the form inputs
func (m *Model) enterSettings() {
	m.apiKeyInput.SetValue(m.settings.OpenAIAPIKey)
	m.customPromptInput.SetValue(m.settings.CustomAIPrompt)
	m.styleIndex = 0
	for i, style := range config.PromptStyles() {
		if style.Key == m.settings.AIPromptStyle {
			m.styleIndex = i
			break
		}
	}
	m.activeSetting = settingsFieldAPIKey
	m.apiKeyInput.Focus()
	m.customPromptInput.Blur()
	m.mode = settingsMode{}
}

// Message type definitions
type notesLoadedMsg struct {
	notes []*models.Note
}

type noteSavedMsg struct {
	status string
}

type noteDeletedMsg struct {
	hard bool
}

type aiRewriteResultMsg struct {
	generation int
	text       string
	err        string
}

type aiQueryResultMsg struct {
	generation int
	text       string
	err        string
}

type fileChangedMsg struct {
	noteID string
}

type errMsg struct {
	err error
}
