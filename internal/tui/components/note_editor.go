package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/parser"
)

// EditorField identifies which input the editor is focused on
type EditorField int

const (
	FieldContent EditorField = iota
	FieldTitle
)

var (
	editorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	editorLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	editorActiveLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))

	editorPreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	editorModeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// NoteEditor is the add/edit form: a title input and a content
// textarea, with a live tag/project preview extracted from the content
// buffer after every keystroke.
type NoteEditor struct {
	title     textinput.Model
	content   textarea.Model
	active    EditorField
	inserting bool
	width     int
	height    int
}

// NewNoteEditor creates an editor with empty buffers, content field
// active and insert editing on.
func NewNoteEditor() *NoteEditor {
	ti := textinput.New()
	ti.Placeholder = "note title (optional)"
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "write your note... use #tags, +projects and [[links]]"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	e := &NoteEditor{
		title:   ti,
		content: ta,
	}
	e.Reset()
	return e
}

// Reset clears both buffers and restores the default focus: content
// field active, insert editing on.
func (e *NoteEditor) Reset() {
	e.title.SetValue("")
	e.content.SetValue("")
	e.SetActive(FieldContent)
	e.SetInserting(true)
}

// Load fills the buffers from an existing note
func (e *NoteEditor) Load(title, content string) {
	e.Reset()
	e.title.SetValue(title)
	e.content.SetValue(content)
}

// SetSize sets the editor dimensions
func (e *NoteEditor) SetSize(width, height int) {
	e.width = width
	e.height = height

	taWidth := width - 10
	taHeight := height - 12
	if taWidth < 40 {
		taWidth = 40
	}
	if taHeight < 3 {
		taHeight = 3
	}

	e.title.Width = taWidth
	e.content.SetWidth(taWidth)
	e.content.SetHeight(taHeight)
}

// Title returns the title buffer
func (e *NoteEditor) Title() string {
	return strings.TrimSpace(e.title.Value())
}

// Content returns the content buffer
func (e *NoteEditor) Content() string {
	return e.content.Value()
}

// SetContent replaces the content buffer
func (e *NoteEditor) SetContent(text string) {
	e.content.SetValue(text)
}

// ActiveField returns the currently focused field
func (e *NoteEditor) ActiveField() EditorField {
	return e.active
}

// SetActive focuses a field
func (e *NoteEditor) SetActive(field EditorField) {
	e.active = field
	if e.inserting {
		e.focusActive()
	}
}

// Inserting reports whether the editor is in insert editing
func (e *NoteEditor) Inserting() bool {
	return e.inserting
}

// SetInserting switches between insert editing (keystrokes go to the
// active field) and navigation (single-key commands).
func (e *NoteEditor) SetInserting(inserting bool) {
	e.inserting = inserting
	if inserting {
		e.focusActive()
		return
	}
	e.title.Blur()
	e.content.Blur()
}

func (e *NoteEditor) focusActive() {
	if e.active == FieldTitle {
		e.content.Blur()
		e.title.Focus()
		return
	}
	e.title.Blur()
	e.content.Focus()
}

// Update forwards a message to the active input. Only meaningful in
// insert editing; navigation keys are handled by the caller.
func (e *NoteEditor) Update(msg tea.Msg) (*NoteEditor, tea.Cmd) {
	if !e.inserting {
		return e, nil
	}

	var cmd tea.Cmd
	if e.active == FieldTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.content, cmd = e.content.Update(msg)
	}
	return e, cmd
}

// View renders the editor form with the live metadata preview
func (e *NoteEditor) View(heading string) string {
	var b strings.Builder

	b.WriteString(editorLabelStyle.Render(heading))
	b.WriteString("  ")
	if e.inserting {
		b.WriteString(editorModeStyle.Render("-- insert --"))
	} else {
		b.WriteString(editorModeStyle.Render("-- command --"))
	}
	b.WriteString("\n\n")

	titleLabel := editorLabelStyle
	contentLabel := editorLabelStyle
	if e.active == FieldTitle {
		titleLabel = editorActiveLabelStyle
	} else {
		contentLabel = editorActiveLabelStyle
	}

	b.WriteString(titleLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")

	b.WriteString(contentLabel.Render("Content"))
	b.WriteString("\n")
	b.WriteString(e.content.View())
	b.WriteString("\n\n")

	// Live metadata preview re-derived from the content buffer
	tags := parser.Tags(e.content.Value())
	projects := parser.Projects(e.content.Value())
	preview := "tags: " + hashJoin("#", tags)
	if len(tags) == 0 {
		preview = "tags: none"
	}
	if len(projects) > 0 {
		preview += "   projects: " + hashJoin("+", projects)
	} else {
		preview += "   projects: none"
	}
	b.WriteString(editorPreviewStyle.Render(preview))
	b.WriteString("\n\n")

	help := "esc: command mode"
	if !e.inserting {
		help = "i: insert  t: title  c: content  s: save  r: ai rewrite  q/esc: back"
	}
	b.WriteString(editorPreviewStyle.Render(help))

	return editorBoxStyle.Render(b.String())
}
