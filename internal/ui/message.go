package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tapedeck/internal/player"
	"github.com/desertthunder/tapedeck/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	deck int
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEngineEvent MsgKind = iota
	MsgDurationFound
	MsgDiscoveryDone
	MsgPopoverExpired
	MsgProgressUpdate
)

// engineEventMsg is the constructor for [MsgEngineEvent]
func engineEventMsg(deck int, ev player.Event) Msg {
	return Msg{kind: MsgEngineEvent, deck: deck, data: ev}
}

// durationFoundMsg is the constructor for [MsgDurationFound]
func durationFoundMsg(deck int, res tasks.DurationResult) Msg {
	return Msg{kind: MsgDurationFound, deck: deck, data: res}
}

// discoveryDoneMsg is the constructor for [MsgDiscoveryDone]
func discoveryDoneMsg(deck int) Msg {
	return Msg{kind: MsgDiscoveryDone, deck: deck}
}

// popoverExpiredMsg is the constructor for [MsgPopoverExpired]
func popoverExpiredMsg(deck int, gen uint64) Msg {
	return Msg{kind: MsgPopoverExpired, deck: deck, data: gen}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, deck: -1, data: update}
}
