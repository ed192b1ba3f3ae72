package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"toneterm/internal/model"
	"toneterm/internal/session"
	"toneterm/internal/workflow"
)

type fakeService struct {
	mu        sync.Mutex
	analyzed  []string
	rewrites  []model.Tone
	failNext  bool
	sentiment model.SentimentResult
	rewrite   model.EmailRewriteResult
}

func (f *fakeService) Analyze(_ context.Context, text string) (model.SentimentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzed = append(f.analyzed, text)
	if f.failNext {
		return model.SentimentResult{}, errors.New("connection refused")
	}
	return f.sentiment, nil
}

func (f *fakeService) Rewrite(_ context.Context, _ string, tone model.Tone) (model.EmailRewriteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewrites = append(f.rewrites, tone)
	if f.failNext {
		return model.EmailRewriteResult{}, errors.New("status 500")
	}
	return f.rewrite, nil
}

type fakeStore struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
}

func (s *fakeStore) Record(_ context.Context, e model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *fakeStore) Recent(_ context.Context, limit int) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func newTestApp(t *testing.T, svc *fakeService, store HistoryStore) *AppModel {
	t.Helper()
	m := NewAppModel(session.New(svc, nil), store, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &m
}

// runCmd executes cmd and any batched children, returning every message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func typeText(m *AppModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *AppModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestSentimentSubmitFlow(t *testing.T) {
	svc := &fakeService{sentiment: model.SentimentResult{Message: "Positive sentiment", Score: 0.8}}
	m := newTestApp(t, svc, nil)

	typeText(m, "I love this product")
	require.Equal(t, "I love this product", m.session.Sentiment.Draft())

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.Equal(t, workflow.Loading, m.session.Sentiment.State().Phase)
	require.Empty(t, m.session.Sentiment.Draft())
	require.Empty(t, m.sentimentInput.Value())
	require.Contains(t, m.View(), "Analyzing...")

	settled := findMsg[sentimentSettledMsg](t, runCmd(cmd))
	require.Equal(t, "I love this product", settled.input)

	_, cmd = m.Update(settled)
	require.Equal(t, workflow.Resolved, m.session.Sentiment.State().Phase)
	require.Contains(t, m.View(), "Positive sentiment")

	recorded := findMsg[historyRecordedMsg](t, runCmd(cmd))
	m.Update(recorded)
	require.Len(t, m.history, 1)
	require.Equal(t, m.session.ID.String(), m.history[0].SessionID)
	require.InDelta(t, 0.8, m.history[0].Score, 1e-9)
}

func TestSentimentRejections(t *testing.T) {
	svc := &fakeService{}
	m := newTestApp(t, svc, nil)

	typeText(m, "   ")
	press(m, tea.KeyEnter)
	require.Equal(t, workflow.Idle, m.session.Sentiment.State().Phase)
	require.Equal(t, "Enter some text to analyze", m.status)

	m.sentimentInput.SetValue("")
	typeText(m, "first")
	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	typeText(m, "second")
	press(m, tea.KeyEnter)
	require.Equal(t, "Sentiment analysis already running", m.status)
	require.Equal(t, "second", m.session.Sentiment.Draft())

	m.Update(findMsg[sentimentSettledMsg](t, runCmd(cmd)))
	require.Equal(t, []string{"first"}, svc.analyzed)
}

func TestSentimentFailureShowsFallback(t *testing.T) {
	svc := &fakeService{failNext: true}
	m := newTestApp(t, svc, nil)
	typeText(m, "ok")
	cmd := press(m, tea.KeyEnter)
	m.Update(findMsg[sentimentSettledMsg](t, runCmd(cmd)))

	st := m.session.Sentiment.State()
	require.Equal(t, workflow.Failed, st.Phase)
	require.Contains(t, m.View(), "Error analyzing sentiment")
}

func TestEmailSubmitFlow(t *testing.T) {
	svc := &fakeService{rewrite: model.EmailRewriteResult{Email: "I'm sorry, but the meeting has moved."}}
	store := &fakeStore{}
	m := newTestApp(t, svc, store)

	press(m, tea.KeyTab)
	require.Equal(t, focusEmail, m.focus)
	typeText(m, "Hi team, meeting moved.")
	require.Equal(t, "Hi team, meeting moved.", m.session.Email.Draft())

	press(m, tea.KeyTab)
	require.Equal(t, focusTone, m.focus)
	press(m, tea.KeyRight)
	press(m, tea.KeyRight)
	require.Equal(t, model.Apologetic, m.session.Email.Tone())

	cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	require.Equal(t, workflow.Loading, m.session.Email.State().Phase)
	require.Empty(t, m.emailInput.Value())

	_, cmd = m.Update(findMsg[emailSettledMsg](t, runCmd(cmd)))
	require.Equal(t, workflow.Resolved, m.session.Email.State().Phase)
	require.Equal(t, model.Apologetic, m.session.Email.Tone())
	require.Contains(t, m.View(), "I'm sorry, but the meeting has moved.")
	require.Equal(t, []model.Tone{model.Apologetic}, svc.rewrites)

	m.Update(findMsg[historyRecordedMsg](t, runCmd(cmd)))
	require.Len(t, store.entries, 1)
	require.Equal(t, "Apologetic", store.entries[0].Tone)
	require.Equal(t, model.WorkflowEmail, store.entries[0].Workflow)
}

func TestFormsDoNotInterfere(t *testing.T) {
	svc := &fakeService{
		sentiment: model.SentimentResult{Message: "Neutral", Score: 0},
		rewrite:   model.EmailRewriteResult{Email: "done"},
	}
	m := newTestApp(t, svc, nil)

	typeText(m, "text")
	sentCmd := press(m, tea.KeyEnter)

	press(m, tea.KeyTab)
	typeText(m, "draft")
	emailCmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, emailCmd)
	require.Equal(t, workflow.Loading, m.session.Sentiment.State().Phase)
	require.Equal(t, workflow.Loading, m.session.Email.State().Phase)

	m.Update(findMsg[emailSettledMsg](t, runCmd(emailCmd)))
	require.Equal(t, workflow.Loading, m.session.Sentiment.State().Phase)
	m.Update(findMsg[sentimentSettledMsg](t, runCmd(sentCmd)))
	require.Equal(t, workflow.Resolved, m.session.Sentiment.State().Phase)
}

func TestResetDropsInFlightResult(t *testing.T) {
	svc := &fakeService{sentiment: model.SentimentResult{Message: "late", Score: 0.9}}
	m := newTestApp(t, svc, nil)
	typeText(m, "hello")
	cmd := press(m, tea.KeyEnter)

	press(m, tea.KeyCtrlN)
	_, next := m.Update(findMsg[sentimentSettledMsg](t, runCmd(cmd)))
	require.Nil(t, next)
	require.Equal(t, workflow.Idle, m.session.Sentiment.State().Phase)
	require.Empty(t, m.history)
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestApp(t, &fakeService{}, nil)
	_, cmd := m.Update(spinner.TickMsg{})
	require.Nil(t, cmd)
}

func TestHistoryToggleLoadsFromStore(t *testing.T) {
	store := &fakeStore{entries: []model.HistoryEntry{
		{Workflow: model.WorkflowSentiment, Input: "old", Output: "Negative sentiment", Score: -0.7},
	}}
	m := newTestApp(t, &fakeService{}, store)

	cmd := press(m, tea.KeyCtrlR)
	require.True(t, m.showHistory)
	m.Update(findMsg[historyLoadedMsg](t, runCmd(cmd)))
	require.Len(t, m.history, 1)

	view := m.View()
	require.Contains(t, view, "History (1)")
	require.True(t, strings.Contains(view, "Negative sentiment"))

	press(m, tea.KeyCtrlR)
	require.False(t, m.showHistory)
}

func TestQuit(t *testing.T) {
	m := newTestApp(t, &fakeService{}, nil)
	cmd := press(m, tea.KeyCtrlC)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscQuitsOnlyOutsideTextInputs(t *testing.T) {
	m := newTestApp(t, &fakeService{}, nil)

	cmd := press(m, tea.KeyEsc)
	if cmd != nil {
		require.NotEqual(t, tea.QuitMsg{}, cmd(), "esc in the sentiment input must not quit")
	}

	press(m, tea.KeyTab)
	cmd = press(m, tea.KeyEsc)
	if cmd != nil {
		require.NotEqual(t, tea.QuitMsg{}, cmd(), "esc in the email input must not quit")
	}

	press(m, tea.KeyTab)
	require.Equal(t, focusTone, m.focus)
	cmd = press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
