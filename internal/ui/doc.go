// Package ui implements an interactive terminal player using bubbletea's Elm architecture.
//
// The TUI hosts one or more decks, each wrapping an independent [player.Player] bound to its own playlist and engine:
//  1. Tab bar : one tab per deck, switched with tab / shift+tab or a click
//  2. Now playing : cover, title and artist of the active deck
//  3. Transport : prev, play/pause, next, shuffle, repeat, mute and playlist buttons, as far as the skin has them
//  4. Progress : elapsed time, a draggable rail and the duration
//  5. Volume : a slider popover revealed while the pointer hovers the mute button
//  6. Playlist : one row per track, each with a nested play button
//
// The [Model] is the only goroutine that touches players. Engine events, duration discovery results and popover
// timers arrive as [Msg] values and are applied in Update. Layout is deterministic, so the same [layout] that draws a
// frame is used to hit-test mouse events against it; a click is delivered to the innermost target only.
//
// Keyboard bindings are listed by the help line, rendered via charmbracelet/bubbles/help.
package ui
