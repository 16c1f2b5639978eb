// Package player implements the state machine behind one media-player widget.
//
// A [Player] owns exactly one [State] and one copy of its playlist. It is driven by named transitions:
//
//  1. Transport : [Player.TogglePlay], [Player.Next], [Player.Prev], [Player.SelectTrack], [Player.ToggleShuffle],
//     [Player.ToggleRepeat], [Player.ToggleMute], [Player.SetVolume], [Player.TogglePlaylist]
//  2. Progress : [Player.OnTimeUpdate], [Player.OnMetadata], [Player.ApplyDiscoveredDuration], [Player.BeginDrag],
//     [Player.DragTo], [Player.EndDrag], [Player.SeekTo], [Player.OnEnded]
//  3. Playlist view : [Player.ClickRow], [Player.ClickRowPlay], [Player.Rows]
//
// Playback itself is delegated to an [Engine]. Engine callbacks enter through [Player.Dispatch].
//
// # Rendering
//
// Rendered output is written into a [ControlSet], a record of optional controls resolved once per skin. A nil field
// means the skin does not have that control: the matching operation is a silent no-op.
//
// # Concurrency
//
// A Player is not safe for concurrent use. Every method must be called from the same goroutine (the UI event loop);
// engine events, discovery results and popover timers are marshalled onto that goroutine by the caller.
// The drag flag is checked synchronously at the top of the clock handler, so a tick queued behind a drag gesture is
// dropped rather than applied.
package player
