package components

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)
)

// StatusBar represents the status bar component
type StatusBar struct {
	width   int
	message string
	isError bool
	hints   string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetMessage sets a transient status message
func (sb *StatusBar) SetMessage(message string) {
	sb.message = message
	sb.isError = false
}

// SetError sets a transient error message
func (sb *StatusBar) SetError(message string) {
	sb.message = message
	sb.isError = true
}

// Clear removes the current message
func (sb *StatusBar) Clear() {
	sb.message = ""
	sb.isError = false
}

// Message returns the current message
func (sb *StatusBar) Message() string {
	return sb.message
}

// SetHints sets the key hints shown when no message is active
func (sb *StatusBar) SetHints(hints string) {
	sb.hints = hints
}

// View renders the status bar
func (sb *StatusBar) View() string {
	text := sb.hints
	style := statusBarStyle
	if sb.message != "" {
		text = sb.message
		style = statusMessageStyle
		if sb.isError {
			style = statusErrorStyle
		}
	}

	// Truncate if too long, on rune boundaries
	if runes := []rune(text); sb.width > 5 && len(runes) > sb.width-2 {
		text = string(runes[:sb.width-5]) + "..."
	}

	return style.Width(sb.width).Render(text)
}
