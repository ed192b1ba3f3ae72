package tui

import (
	"strings"

	"toneterm/internal/model"
	"toneterm/internal/workflow"

	"github.com/charmbracelet/lipgloss"
)

var (
	toneStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245"))

	selectedToneStyle = toneStyle.
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62"))
)

func (m *AppModel) emailView() string {
	return titleStyle.Render("Email Rewrite") + "\n" +
		m.emailInput.View() + "\n\n" +
		m.toneSelector() + "\n\n" +
		m.emailResult()
}

func (m *AppModel) toneSelector() string {
	current := m.session.Email.Tone()
	parts := make([]string, 0, len(model.Tones()))
	for _, t := range model.Tones() {
		style := toneStyle
		if t == current {
			style = selectedToneStyle
		}
		parts = append(parts, style.Render(t.String()))
	}
	label := "Tone: "
	if m.focus == focusTone {
		label = "Tone ◂▸ "
	}
	return hintStyle.Render(label) + strings.Join(parts, " ")
}

func (m *AppModel) emailResult() string {
	st := m.session.Email.State()
	switch st.Phase {
	case workflow.Loading:
		return m.spinner.View() + " Rewriting..."
	case workflow.Resolved:
		return m.emailOutput.View()
	case workflow.Failed:
		return errorStyle.Render(st.Message)
	default:
		return hintStyle.Render("Press ctrl+s to rewrite")
	}
}
