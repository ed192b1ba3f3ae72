package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit            key.Binding
	Leave           key.Binding // quits when focus is not in a text input
	NextField       key.Binding
	PrevField       key.Binding
	SubmitSentiment key.Binding
	SubmitEmail     key.Binding
	ToneNext        key.Binding
	TonePrev        key.Binding
	ToggleHistory   key.Binding
	Reset           key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:            key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Leave:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit (tone)")),
		NextField:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		SubmitSentiment: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		SubmitEmail:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "rewrite email")),
		ToneNext:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "tone")),
		TonePrev:        key.NewBinding(key.WithKeys("left", "h")),
		ToggleHistory:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
		Reset:           key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "reset")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.SubmitSentiment, k.SubmitEmail, k.ToneNext, k.ToggleHistory, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.SubmitSentiment, k.SubmitEmail, k.ToneNext},
		{k.ToggleHistory, k.Reset, k.Quit, k.Leave},
	}
}
