package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielarbabian/stash/internal/config"
	"github.com/danielarbabian/stash/internal/search"
)

const homeHints = "a:add enter:view d:delete /:search t:tag p:project c:clear r:refresh i:ai s:settings h:help q:quit"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	filterBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	choiceSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}

	switch md := m.mode.(type) {
	case homeMode:
		return m.homeView()

	case addNoteMode:
		return m.editor.View("add note")

	case editNoteMode:
		return m.editor.View("edit note")

	case viewNoteMode:
		return m.viewer.View()

	case helpMode:
		return m.helpView()

	case settingsMode:
		return m.settingsView()

	case searchMode:
		return m.filterView("search notes")

	case tagFilterMode:
		return m.filterView("filter by tag")

	case projectFilterMode:
		return m.filterView("filter by project")

	case deleteConfirmMode:
		return m.deleteConfirmView(md)

	case aiRewriteMode:
		return m.aiRewriteView(md)

	case aiCommandMode:
		return m.aiCommandView(md)
	}

	return ""
}

// homeView renders the note list with the active filters and status bar
func (m *Model) homeView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("stash"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("your notes, out of your head"))
	b.WriteString("\n")

	if m.hasActiveFilters() {
		var badges []string
		if m.searchFilter != "" {
			badges = append(badges, filterBadgeStyle.Render("search: "+m.searchFilter))
		}
		if m.tagFilter != "" {
			badges = append(badges, filterBadgeStyle.Render("#"+m.tagFilter))
		}
		if m.projectFilter != "" {
			badges = append(badges, filterBadgeStyle.Render("+"+m.projectFilter))
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.noteList.View())
	b.WriteString("\n\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// filterView renders a single-line input capture screen
func (m *Model) filterView(title string) string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		promptStyle.Render(title),
		m.filterInput.View(),
		dimStyle.Render("enter: apply (empty clears)  esc: cancel"),
	)
	return panelStyle.Render(content)
}

// deleteConfirmView renders the soft/hard delete dialog
func (m *Model) deleteConfirmView(md deleteConfirmMode) string {
	title := "(unknown note)"
	if note := m.findNote(md.noteID); note != nil {
		title = note.Title
		if title == "" {
			title = "(untitled)"
		}
	}

	soft := choiceStyle.Render("  move to trash (soft delete)")
	hard := choiceStyle.Render("  delete permanently")
	if m.hardDelete {
		hard = choiceSelectedStyle.Render("> delete permanently")
	} else {
		soft = choiceSelectedStyle.Render("> move to trash (soft delete)")
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n\n%s",
		dangerStyle.Render("delete note?"),
		title,
		soft,
		hard,
		dimStyle.Render("tab/↑/↓: toggle  enter/y: confirm  esc/n: cancel"),
	)
	return panelStyle.Render(content)
}

// helpView renders the key binding reference
func (m *Model) helpView() string {
	helpText := `stash - key bindings

Home:
  j/k, ↑/↓   navigate notes (wraps)
  enter      view selected note
  a          add a note
  d          delete selected note (confirmation)
  /          search filter
  t          tag filter
  p          project filter
  c          clear all filters
  r          refresh from disk
  i          ai search (natural language)
  s          settings
  h, ?       this help
  q, ctrl+c  quit

Add / Edit (command sub-mode):
  i          insert editing
  t / c      focus title / content (enters insert)
  s          save
  r          ai rewrite
  q, esc     back without saving
  esc        (while inserting) back to command sub-mode

View:
  j/k        scroll
  e          edit
  r          ai rewrite
  esc, q     back

Notes use #tags, +projects and [[links]] inside the content;
metadata is re-extracted live while you type.

press esc to close help`

	return helpText
}

// settingsView renders the settings form
func (m *Model) settingsView() string {
	styles := config.PromptStyles()

	label := func(field settingsField, text string) string {
		if m.activeSetting == field {
			return promptStyle.Render("> " + text)
		}
		return dimStyle.Render("  " + text)
	}

	styleLine := styles[m.styleIndex].Label
	if m.activeSetting == settingsFieldStyle {
		styleLine = "< " + styleLine + " >"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("settings"))
	b.WriteString("\n\n")
	b.WriteString(label(settingsFieldAPIKey, "openai api key"))
	b.WriteString("\n")
	b.WriteString(m.apiKeyInput.View())
	b.WriteString("\n\n")
	b.WriteString(label(settingsFieldStyle, "rewrite style"))
	b.WriteString("\n")
	b.WriteString(styleLine)
	b.WriteString("\n\n")
	b.WriteString(label(settingsFieldCustomPrompt, "custom rewrite instructions"))
	b.WriteString("\n")
	b.WriteString(m.customPromptInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab: next field  ↑/↓: cycle style  enter: save  esc: cancel"))

	return panelStyle.Render(b.String())
}

// aiRewriteView renders the rewrite flow: spinner, error, or the
// rewritten text awaiting accept/discard
func (m *Model) aiRewriteView(md aiRewriteMode) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("ai rewrite"))
	b.WriteString("\n\n")

	switch {
	case m.rewriteSlot.busy():
		b.WriteString(m.spinner.View())
		b.WriteString(" rewriting note...")
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc: cancel"))

	case m.rewriteSlot.status == aiFailed:
		b.WriteString(dangerStyle.Render("rewrite failed"))
		b.WriteString("\n")
		b.WriteString(m.rewriteSlot.message)
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc: back"))

	default:
		b.WriteString(md.rewritten)
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter: accept  esc: discard"))
	}

	return panelStyle.Render(b.String())
}

// aiCommandView renders the natural-language search flow
func (m *Model) aiCommandView(md aiCommandMode) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("ai search"))
	b.WriteString("\n\n")

	switch {
	case m.translateSlot.busy():
		b.WriteString(m.spinner.View())
		b.WriteString(" translating query...")
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("esc: cancel"))

	case md.executed:
		b.WriteString(dimStyle.Render("query: "))
		b.WriteString(promptStyle.Render(md.query))
		b.WriteString("\n\n")
		b.WriteString(m.renderResults(md.results))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc: done"))

	case md.confirming:
		b.WriteString("generated query:")
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("stash search " + md.query))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter: run this search  esc: edit input"))

	default:
		b.WriteString(m.commandInput.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter: translate  esc: cancel"))
	}

	return panelStyle.Render(b.String())
}

// renderResults formats ranked search results for the ai command screen
func (m *Model) renderResults(results []search.Result) string {
	if len(results) == 0 {
		return dimStyle.Render("no notes found")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("found %d note(s)\n\n", len(results)))
	for _, r := range results {
		title := r.Note.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(promptStyle.Render(title))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  score %d", r.Score)))
		b.WriteString("\n")
		for _, snippet := range r.Snippets {
			b.WriteString(dimStyle.Render("  " + snippet))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	content := fmt.Sprintf(
		"Terminal Too Small\n\nCurrent: %dx%d\nRequired: %dx%d or larger\n\nResize your terminal and restart stash.",
		m.width, m.height,
		MinTerminalWidth, MinTerminalHeight,
	)

	return style.Render(content)
}
