// Package tasks runs background duration discovery for playlists with real-time progress reporting.
//
// # Core Operations
//
// A [Discoverer] exposes two operations over the same worker pool:
//
//  1. [Discoverer.Discover] : Asynchronous discovery for interactive use
//     - Probes every track whose duration is still unknown
//     - Streams one [DurationResult] per track, in completion order
//     - Closes the result channel when every job has finished or the context is cancelled
//
//  2. [Discoverer.DiscoverAll] : Blocking discovery for headless use
//     - Drains [Discoverer.Discover] and aggregates counts
//     - Returns results sorted by track index
//
// Results carry the track index rather than a reference into the playlist, so the caller applies them on its own
// goroutine in any order. A track switch does not cancel discovery.
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// Probing is delegated to a [Prober]; the production one is audio.Prober. Probes are paced by a token bucket
// (golang.org/x/time/rate) so large directories do not saturate the disk.
package tasks
