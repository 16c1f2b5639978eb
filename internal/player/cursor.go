package player

import (
	"slices"

	"github.com/desertthunder/tapedeck/internal/models"
)

// Direction selects the neighbour a cursor step moves to.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Resolve returns the index reached by one step from current over n tracks.
//
// Without shuffle the walk is linear with wraparound. With shuffle it walks order circularly from the position of
// current; an index missing from order is treated as position 0.
func Resolve(current, n int, order []int, shuffle bool, dir Direction) int {
	step := 1
	if dir == Backward {
		step = -1
	}
	if !shuffle || len(order) == 0 {
		return (current + step + n) % n
	}

	pos := slices.Index(order, current)
	if pos < 0 {
		pos = 0
	}
	pos = (pos + step + len(order)) % len(order)
	return order[pos]
}

// Current returns the track under the cursor.
func (p *Player) Current() models.Track {
	return p.tracks[p.state.CurrentIndex]
}

// advance moves the cursor one step and returns the new index.
func (p *Player) advance(dir Direction) int {
	p.state.CurrentIndex = Resolve(p.state.CurrentIndex, len(p.tracks), p.state.ShuffleOrder, p.state.ShuffleEnabled, dir)
	return p.state.CurrentIndex
}

func (p *Player) validIndex(i int) bool {
	return i >= 0 && i < len(p.tracks)
}
