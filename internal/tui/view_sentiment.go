package tui

import (
	"fmt"

	"toneterm/internal/sentiment"
	"toneterm/internal/workflow"
)

func (m *AppModel) sentimentView() string {
	return titleStyle.Render("Sentiment Analysis") + "\n" +
		m.sentimentInput.View() + "\n\n" +
		m.sentimentResult()
}

func (m *AppModel) sentimentResult() string {
	st := m.session.Sentiment.State()
	switch st.Phase {
	case workflow.Loading:
		return m.spinner.View() + " Analyzing..."
	case workflow.Resolved:
		c := sentiment.ClassifyValue(st.Result.Score)
		return c.Style().Render(fmt.Sprintf("%s  %s (%.2f)", st.Result.Message, c, float64(st.Result.Score)))
	case workflow.Failed:
		// Failed carries a neutral score, so this renders in the neutral color.
		c := sentiment.ClassifyValue(st.Result.Score)
		return c.Style().Render(st.Message)
	default:
		return hintStyle.Render("Press enter to analyze")
	}
}
