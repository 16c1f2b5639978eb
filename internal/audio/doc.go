// Package audio provides the gopxl/beep backed media engine and duration prober.
//
// Sources are local file paths. Files are read into memory and decoded by extension: mp3, wav, ogg and oga (vorbis).
//
// [Engine] implements player.Engine. Its notifications are delivered on [Engine.Events] and must be forwarded to
// player.Player.Dispatch on the UI goroutine. Each event carries the source that was loaded when it fired.
//
// Output goes through beep's speaker, which is initialised once per process on the first Play. Builds without a
// native audio backend get an engine that decodes and seeks but refuses to play.
package audio
