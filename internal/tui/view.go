package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("39"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			PaddingTop(1)
)

// View renders both forms, the optional history pane and the footer.
func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(m.panel(m.focus == focusSentiment, m.sentimentView()))
	b.WriteString("\n")
	b.WriteString(m.panel(m.focus == focusEmail || m.focus == focusTone, m.emailView()))
	b.WriteString("\n")

	if m.showHistory {
		b.WriteString(m.panel(false, m.historyView()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *AppModel) panel(focused bool, content string) string {
	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(content)
}
