// Package models defines the playlist data handed to a player instance.
//
//   - [Track] : one playable entry with display metadata and a resolved or unresolved duration
//   - [Playlist] : an ordered, fixed-length sequence of tracks; the index is a track's identity
//
// A track's duration starts as [DurationUnknown]. Background discovery refines it ([DurationProbed]) and the live
// media engine may later overwrite it ([DurationEngine]). A probed value never replaces an engine value.
package models
