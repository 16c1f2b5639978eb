package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	play     key.Binding
	next     key.Binding
	prev     key.Binding
	shuffle  key.Binding
	repeat   key.Binding
	mute     key.Binding
	louder   key.Binding
	quieter  key.Binding
	forward  key.Binding
	rewind   key.Binding
	playlist key.Binding
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	nextDeck key.Binding
	prevDeck key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev")),
		shuffle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		louder:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "louder")),
		quieter:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "quieter")),
		forward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +")),
		rewind:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -")),
		playlist: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "playlist")),
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		nextDeck: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next deck")),
		prevDeck: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev deck")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.next, k.prev, k.playlist, k.nextDeck, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.play, k.next, k.prev, k.forward, k.rewind},
		{k.shuffle, k.repeat, k.mute, k.louder, k.quieter},
		{k.playlist, k.up, k.down, k.enter},
		{k.nextDeck, k.prevDeck, k.quit},
	}
}
