// package models defines the playlist data model for the player
package models

import "math"

// DurationSource records which writer last set a track's duration.
type DurationSource int

const (
	DurationUnknown DurationSource = iota // Not yet discovered
	DurationProbed                        // Set by background discovery
	DurationEngine                        // Set by the live engine while the track was loaded
)

func (d DurationSource) String() string {
	switch d {
	case DurationProbed:
		return "probed"
	case DurationEngine:
		return "engine"
	default:
		return "unknown"
	}
}

// Track is a single playlist entry.
type Track struct {
	Title          string         `toml:"title" yaml:"title" json:"title"`
	Artist         string         `toml:"artist" yaml:"artist" json:"artist"`
	Source         string         `toml:"src" yaml:"src" json:"src"`                           // Locator handed to the media engine
	Cover          string         `toml:"cover,omitempty" yaml:"cover,omitempty" json:"cover"` // Optional cover locator
	Duration       float64        `toml:"-" yaml:"-" json:"duration,omitempty"`                // Whole seconds, meaningful only when HasDuration
	DurationSource DurationSource `toml:"-" yaml:"-" json:"duration_source,omitempty"`         // Which writer set Duration
}

// HasDuration reports whether the duration has been resolved to a usable value.
func (t Track) HasDuration() bool {
	return t.DurationSource != DurationUnknown && t.Duration > 0 && !math.IsInf(t.Duration, 0)
}

// Playlist is an ordered list of tracks.
type Playlist struct {
	Name   string  `toml:"name" yaml:"name" json:"name"`
	Tracks []Track `toml:"tracks" yaml:"tracks" json:"tracks"`
}

// Len returns the number of tracks.
func (p Playlist) Len() int { return len(p.Tracks) }

// Clone returns a deep copy so player instances never share track storage.
func (p Playlist) Clone() Playlist {
	tracks := make([]Track, len(p.Tracks))
	copy(tracks, p.Tracks)
	return Playlist{Name: p.Name, Tracks: tracks}
}

// RoundDuration normalises a raw duration in seconds. ok is false for values that cannot be used (NaN, zero, negative, infinite).
// Positive durations under a second round up to 1.
func RoundDuration(seconds float64) (rounded float64, ok bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, false
	}
	return max(math.Round(seconds), 1), true
}
