package components

import (
	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#273540")).
	Padding(1, 2).
	Width(40)

var (
	dialogHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	dialogMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ba0bf"))
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := dialogHeaderStyle.Render(title)
	body := dialogMutedStyle.Render(message)
	hint := dialogMutedStyle.Render("\ny: confirm | n: cancel")
	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// InputDialog renders a prompt around an already rendered input field.
// width widens the dialog beyond its default when positive.
func InputDialog(title, field, hint string, width int) string {
	header := dialogHeaderStyle.Render(title)
	if hint == "" {
		hint = "enter: submit | esc: cancel"
	}
	style := dialogStyle
	if w := safeBoxWidth(width); w > 40 {
		style = style.Width(w)
	}
	return style.Render(header + "\n\n" + field + "\n" + dialogMutedStyle.Render(hint))
}
