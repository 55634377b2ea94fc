package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/models"
)

var (
	noteTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	noteSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true)

	noteTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	noteProjectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	noteDateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	noteEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 2)
)

// NoteList renders the filtered note list with a selection cursor
type NoteList struct {
	notes  []*models.Note
	cursor int
	width  int
	height int
}

// NewNoteList creates an empty note list
func NewNoteList() *NoteList {
	return &NoteList{cursor: -1}
}

// SetSize sets the list dimensions
func (nl *NoteList) SetSize(width, height int) {
	nl.width = width
	nl.height = height
}

// SetNotes replaces the displayed notes and resets the cursor to the
// first element (or none when the list is empty)
func (nl *NoteList) SetNotes(notes []*models.Note) {
	nl.notes = notes
	if len(notes) == 0 {
		nl.cursor = -1
		return
	}
	nl.cursor = 0
}

// Notes returns the displayed notes
func (nl *NoteList) Notes() []*models.Note {
	return nl.notes
}

// Len returns how many notes are displayed
func (nl *NoteList) Len() int {
	return len(nl.notes)
}

// Cursor returns the current cursor index, -1 when empty
func (nl *NoteList) Cursor() int {
	return nl.cursor
}

// Selected returns the note under the cursor, nil when the list is empty
func (nl *NoteList) Selected() *models.Note {
	if nl.cursor < 0 || nl.cursor >= len(nl.notes) {
		return nil
	}
	return nl.notes[nl.cursor]
}

// CursorUp moves the selection up, wrapping to the bottom
func (nl *NoteList) CursorUp() {
	if len(nl.notes) == 0 {
		return
	}
	nl.cursor--
	if nl.cursor < 0 {
		nl.cursor = len(nl.notes) - 1
	}
}

// CursorDown moves the selection down, wrapping to the top
func (nl *NoteList) CursorDown() {
	if len(nl.notes) == 0 {
		return
	}
	nl.cursor++
	if nl.cursor >= len(nl.notes) {
		nl.cursor = 0
	}
}

// View renders the note list
func (nl *NoteList) View() string {
	if len(nl.notes) == 0 {
		return noteEmptyStyle.Render("no notes yet — press 'a' to add one")
	}

	// Keep the cursor visible inside the available height. Each note
	// takes two rows (title line + metadata line).
	rows := nl.height / 2
	if rows < 1 {
		rows = len(nl.notes)
	}
	start := 0
	if nl.cursor >= rows {
		start = nl.cursor - rows + 1
	}
	end := start + rows
	if end > len(nl.notes) {
		end = len(nl.notes)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		note := nl.notes[i]

		title := note.Title
		if title == "" {
			title = "(untitled)"
		}

		line := "  " + title
		if i == nl.cursor {
			line = noteSelectedStyle.Render("> " + title)
		} else {
			line = "  " + noteTitleStyle.Render(title)
		}
		b.WriteString(line)
		b.WriteString("\n")

		b.WriteString("  ")
		b.WriteString(noteDateStyle.Render(note.Created.Format("2006-01-02 15:04")))
		if len(note.Tags) > 0 {
			b.WriteString("  ")
			b.WriteString(noteTagStyle.Render(hashJoin("#", note.Tags)))
		}
		if len(note.Projects) > 0 {
			b.WriteString("  ")
			b.WriteString(noteProjectStyle.Render(hashJoin("+", note.Projects)))
		}
		b.WriteString("\n")
	}

	b.WriteString(noteDateStyle.Render(fmt.Sprintf("\n%d/%d notes", nl.cursor+1, len(nl.notes))))

	return b.String()
}

// hashJoin prefixes each item and joins with spaces
func hashJoin(prefix string, items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = prefix + item
	}
	return strings.Join(parts, " ")
}
