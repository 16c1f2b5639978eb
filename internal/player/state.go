package player

import "slices"

// PlaybackState is the transport state of a player.
type PlaybackState int

const (
	Stopped PlaybackState = iota // A track is loaded but has never been started
	Playing
	Paused
)

func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return ""
	}
}

// State is the single source of truth for one player instance.
type State struct {
	CurrentIndex     int
	Playback         PlaybackState
	ShuffleEnabled   bool
	RepeatEnabled    bool
	Muted            bool
	Volume           float64 // Engine volume in [0, 1]
	PlaylistVisible  bool
	ShuffleOrder     []int // Permutation of track indices, empty when shuffle is off
	DraggingProgress bool
}

// IsPlaying reports whether the transport is in the Playing state.
func (s State) IsPlaying() bool { return s.Playback == Playing }

func (s State) clone() State {
	s.ShuffleOrder = slices.Clone(s.ShuffleOrder)
	return s
}
