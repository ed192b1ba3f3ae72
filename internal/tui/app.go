package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"toneterm/internal/model"
	"toneterm/internal/session"
	"toneterm/internal/util"
	"toneterm/internal/workflow"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HistoryStore is the optional session history log.
type HistoryStore interface {
	Record(ctx context.Context, e model.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error)
}

type focus int

const (
	focusSentiment focus = iota
	focusEmail
	focusTone
	focusCount
)

const (
	historyLimit   = 20
	previewRunes   = 80
	statusDuration = 2 * time.Second
)

type AppModel struct {
	// Core state
	session *session.Session
	store   HistoryStore
	logger  *slog.Logger
	status  string

	// Form state. The workflows own the drafts; the inputs mirror them.
	focus          focus
	sentimentInput textinput.Model
	emailInput     textarea.Model
	emailOutput    viewport.Model
	spinner        spinner.Model

	history     []model.HistoryEntry
	showHistory bool

	keys KeyMap
	help help.Model

	// Layout
	width, height int
}

// NewAppModel builds the UI for one session. store may be nil.
func NewAppModel(sess *session.Session, store HistoryStore, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "Type text to analyze"
	ti.Prompt = "> "
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Paste or write an email draft"
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		session:        sess,
		store:          store,
		logger:         logger,
		focus:          focusSentiment,
		sentimentInput: ti,
		emailInput:     ta,
		emailOutput:    viewport.New(0, 6),
		spinner:        sp,
		keys:           defaultKeyMap(),
		help:           help.New(),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistoryCmd())
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inner := max(msg.Width-4, 10) // border + padding
		m.sentimentInput.Width = inner - 2
		m.emailInput.SetWidth(inner)
		m.emailOutput.Width = inner
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sentimentSettledMsg:
		if !m.session.Sentiment.Settle(msg.outcome) {
			return m, nil
		}
		st := m.session.Sentiment.State()
		return m, m.recordCmd(model.HistoryEntry{
			Workflow: model.WorkflowSentiment,
			Input:    msg.input,
			Output:   st.Result.Message,
			Score:    float64(st.Result.Score),
			Failed:   st.Phase == workflow.Failed,
		})

	case emailSettledMsg:
		if !m.session.Email.Settle(msg.outcome) {
			return m, nil
		}
		st := m.session.Email.State()
		m.emailOutput.SetContent(st.Result.Email)
		m.emailOutput.GotoTop()
		return m, m.recordCmd(model.HistoryEntry{
			Workflow: model.WorkflowEmail,
			Input:    msg.input,
			Output:   st.Result.Email,
			Tone:     msg.tone.String(),
			Failed:   st.Phase == workflow.Failed,
		})

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "Failed to load history: " + msg.err.Error()
			return m, clearStatusAfter(statusDuration)
		}
		m.history = msg.entries
		return m, nil

	case historyRecordedMsg:
		if msg.err != nil {
			m.status = "Failed to save history: " + msg.err.Error()
			return m, clearStatusAfter(statusDuration)
		}
		m.history = append([]model.HistoryEntry{msg.entry}, m.history...)
		if len(m.history) > historyLimit {
			m.history = m.history[:historyLimit]
		}
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain die once nothing is loading.
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		if string(msg) == "" {
			m.status = ""
		}
		return m, nil
	}

	// Delegate to the focused input (cursor blink etc.)
	var cmd tea.Cmd
	switch m.focus {
	case focusSentiment:
		m.sentimentInput, cmd = m.sentimentInput.Update(msg)
	case focusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.SubmitEmail):
		return m.submitEmail()
	case key.Matches(msg, m.keys.ToggleHistory):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.loadHistoryCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.sentimentInput.Reset()
		m.emailInput.Reset()
		m.emailOutput.SetContent("")
		m.status = "Forms reset"
		return m, clearStatusAfter(statusDuration)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSentiment:
		if key.Matches(msg, m.keys.SubmitSentiment) {
			return m.submitSentiment()
		}
		m.sentimentInput, cmd = m.sentimentInput.Update(msg)
		m.session.Sentiment.UpdateDraft(m.sentimentInput.Value())

	case focusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
		m.session.Email.UpdateDraft(m.emailInput.Value())

	case focusTone:
		switch {
		case key.Matches(msg, m.keys.Leave):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToneNext):
			m.session.Email.UpdateTone(m.session.Email.Tone().Next())
		case key.Matches(msg, m.keys.TonePrev):
			m.session.Email.UpdateTone(m.session.Email.Tone().Prev())
		case key.Matches(msg, m.keys.SubmitSentiment):
			// enter on the selector submits the email form it belongs to
			return m.submitEmail()
		}
	}
	return m, cmd
}

func (m *AppModel) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.sentimentInput.Blur()
	m.emailInput.Blur()
	switch f {
	case focusSentiment:
		return m.sentimentInput.Focus()
	case focusEmail:
		return m.emailInput.Focus()
	}
	return nil
}

func (m *AppModel) submitSentiment() (tea.Model, tea.Cmd) {
	w := m.session.Sentiment
	input := util.Preview(w.Draft(), previewRunes)
	pending, ok := w.Submit()
	if !ok {
		return m.rejected(w.State().Loading(), "Sentiment analysis already running", "Enter some text to analyze")
	}
	m.sentimentInput.Reset()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return sentimentSettledMsg{input: input, outcome: pending.Run(context.Background())}
	})
}

func (m *AppModel) submitEmail() (tea.Model, tea.Cmd) {
	w := m.session.Email
	input := util.Preview(w.Draft(), previewRunes)
	tone := w.Tone()
	pending, ok := w.Submit()
	if !ok {
		return m.rejected(w.State().Loading(), "Email rewrite already running", "Write an email draft first")
	}
	m.emailInput.Reset()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return emailSettledMsg{input: input, tone: tone, outcome: pending.Run(context.Background())}
	})
}

func (m *AppModel) rejected(loading bool, busy, blank string) (tea.Model, tea.Cmd) {
	if loading {
		m.status = busy
	} else {
		m.status = blank
	}
	return m, clearStatusAfter(statusDuration)
}

func (m *AppModel) anyLoading() bool {
	return m.session.Sentiment.State().Loading() || m.session.Email.State().Loading()
}

// Commands

func (m *AppModel) recordCmd(e model.HistoryEntry) tea.Cmd {
	e.SessionID = m.session.ID.String()
	e.SettledAt = time.Now()
	if m.store == nil {
		return func() tea.Msg { return historyRecordedMsg{entry: e} }
	}
	return func() tea.Msg {
		err := m.store.Record(context.Background(), e)
		if err != nil {
			m.logger.Error("record history", "workflow", e.Workflow, "err", err)
		}
		return historyRecordedMsg{entry: e, err: err}
	}
}

func (m *AppModel) loadHistoryCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := m.store.Recent(context.Background(), historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusMsg("")
	})
}
