package tui

import (
	"fmt"
	"strings"

	"toneterm/internal/model"
	"toneterm/internal/sentiment"
	"toneterm/internal/util"
)

func (m *AppModel) historyView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("History (%d)", len(m.history))))
	if len(m.history) == 0 {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Nothing submitted yet"))
		return b.String()
	}
	for _, e := range m.history {
		b.WriteString("\n")
		b.WriteString(historyLine(e))
	}
	return b.String()
}

// historyLine renders one entry as "15:04  sentiment  input → output".
func historyLine(e model.HistoryEntry) string {
	kind := e.Workflow
	if e.Tone != "" {
		kind += " (" + e.Tone + ")"
	}
	head := hintStyle.Render(e.SettledAt.Local().Format("15:04") + "  " + kind + "  ")
	body := util.Preview(e.Input, 30) + " → " + util.Preview(e.Output, 40)

	switch {
	case e.Failed:
		return head + errorStyle.Render(body)
	case e.Workflow == model.WorkflowSentiment:
		return head + sentiment.Classify(e.Score).Style().Render(body)
	default:
		return head + body
	}
}
