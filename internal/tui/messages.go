package tui

import (
	"toneterm/internal/model"
	"toneterm/internal/workflow"
)

// Async message types for Bubble Tea commands.

type sentimentSettledMsg struct {
	input   string
	outcome workflow.Outcome[model.SentimentResult]
}

type emailSettledMsg struct {
	input   string
	tone    model.Tone
	outcome workflow.Outcome[model.EmailRewriteResult]
}

type historyLoadedMsg struct {
	entries []model.HistoryEntry
	err     error
}

type historyRecordedMsg struct {
	entry model.HistoryEntry
	err   error
}

type statusMsg string
