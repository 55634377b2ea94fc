package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/models"
)

var (
	viewerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	viewerMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	viewerHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// NoteViewer renders a single note's markdown through glamour inside a
// scrollable viewport.
type NoteViewer struct {
	viewport viewport.Model
	note     *models.Note
	width    int
	height   int
}

// NewNoteViewer creates an empty viewer
func NewNoteViewer() *NoteViewer {
	return &NoteViewer{
		viewport: viewport.New(80, 20),
	}
}

// SetSize sets the viewer dimensions and re-renders the current note
func (nv *NoteViewer) SetSize(width, height int) {
	nv.width = width
	nv.height = height

	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	nv.viewport.Width = width
	nv.viewport.Height = vpHeight

	if nv.note != nil {
		nv.render()
	}
}

// SetNote loads a note into the viewer and scrolls to the top
func (nv *NoteViewer) SetNote(note *models.Note) {
	nv.note = note
	nv.render()
	nv.viewport.GotoTop()
}

// Note returns the displayed note
func (nv *NoteViewer) Note() *models.Note {
	return nv.note
}

func (nv *NoteViewer) render() {
	wrap := nv.width - 4
	if wrap < 20 {
		wrap = 20
	}

	rendered := nv.note.Content
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		if out, err := r.Render(nv.note.Content); err == nil {
			rendered = out
		}
	}

	nv.viewport.SetContent(rendered)
}

// Update forwards messages to the viewport for scrolling
func (nv *NoteViewer) Update(msg tea.Msg) (*NoteViewer, tea.Cmd) {
	var cmd tea.Cmd
	nv.viewport, cmd = nv.viewport.Update(msg)
	return nv, cmd
}

// View renders the note with its metadata header
func (nv *NoteViewer) View() string {
	if nv.note == nil {
		return ""
	}

	title := nv.note.Title
	if title == "" {
		title = "(untitled)"
	}

	var meta []string
	meta = append(meta, nv.note.Created.Format("2006-01-02 15:04"))
	if nv.note.Updated != nil {
		meta = append(meta, "updated "+nv.note.Updated.Format("2006-01-02 15:04"))
	}
	if len(nv.note.Tags) > 0 {
		meta = append(meta, hashJoin("#", nv.note.Tags))
	}
	if len(nv.note.Projects) > 0 {
		meta = append(meta, hashJoin("+", nv.note.Projects))
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s",
		viewerTitleStyle.Render(title),
		viewerMetaStyle.Render(strings.Join(meta, "  ·  ")),
		nv.viewport.View(),
		viewerHelpStyle.Render("j/k: scroll  e: edit  r: ai rewrite  esc/q: back"),
	)
}
