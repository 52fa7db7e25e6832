package tui

import "github.com/charmbracelet/bubbles/key"

// keymap defines the transport key bindings.
type keymap struct {
	playPause    key.Binding
	seekBack     key.Binding
	seekForward  key.Binding
	stepBack     key.Binding
	stepForward  key.Binding
	goToStart    key.Binding
	goToEnd      key.Binding
	rateUp       key.Binding
	rateDown     key.Binding
	loop         key.Binding
	background   key.Binding
	seekTo       key.Binding
	quit         key.Binding
}

func newKeymap() keymap {
	return keymap{
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		stepBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "frame back"),
		),
		stepForward: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "frame forward"),
		),
		goToStart: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "start"),
		),
		goToEnd: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "end"),
		),
		rateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		rateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		loop: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "loop"),
		),
		background: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "simulate background"),
		),
		seekTo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "seek to timecode"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekBack, k.seekForward, k.seekTo, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.seekBack, k.seekForward, k.stepBack, k.stepForward},
		{k.goToStart, k.goToEnd, k.rateUp, k.rateDown, k.loop},
		{k.background, k.seekTo, k.quit},
	}
}
