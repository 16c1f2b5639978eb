package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tapedeck/internal/player"
)

// Fixed screen lines of a deck.
const (
	tabLine      = 0
	coverLine    = 2
	titleLine    = 3
	artistLine   = 4
	controlsLine = 6
	progressLine = 7
	volumeLine   = 8
	rowsLine     = 10
	footerLines  = 2
)

const (
	defaultWidth = 80
	minRailWidth = 10
	timeWidth    = 5
	sliderWidth  = 11
	sliderLabel  = "vol "
	rowPlayWidth = 3
	buttonGap    = 1
)

// region is a half-open column range [x0, x1).
type region struct{ x0, x1 int }

func (r region) contains(x int) bool { return x >= r.x0 && x < r.x1 }

type targetKind int

const (
	targetNone targetKind = iota
	targetTab
	targetPrev
	targetPlay
	targetNext
	targetShuffle
	targetRepeat
	targetMute
	targetPlaylistToggle
	targetRail
	targetHandle
	targetSlider
	targetRow
	targetRowPlay
)

// target is the innermost element under a point.
type target struct {
	kind  targetKind
	index int     // Tab or row index
	pos   float64 // Offset within the rail or slider
}

type button struct {
	kind   targetKind
	label  string
	active bool
	region region
}

// layout is the geometry of one rendered frame.
type layout struct {
	tabs      []region
	buttons   []button
	rail      region
	handleX   int
	slider    region
	rowsShown bool
	firstRow  int
	rowCount  int
}

// computeLayout derives the frame geometry for deck d at the given terminal size.
func computeLayout(decks []*Deck, d *Deck, width, height int) layout {
	if width <= 0 {
		width = defaultWidth
	}
	var l layout
	c := d.player.Controls()
	s := d.player.State()

	x := 0
	for _, other := range decks {
		w := lipgloss.Width(tabLabel(other))
		l.tabs = append(l.tabs, region{x, x + w})
		x += w + buttonGap
	}

	x = 0
	add := func(kind targetKind, label string, active bool) {
		w := lipgloss.Width(label)
		l.buttons = append(l.buttons, button{kind: kind, label: label, active: active, region: region{x, x + w}})
		x += w + buttonGap
	}
	if c.Prev != nil {
		add(targetPrev, " ⏮ ", false)
	}
	if c.Play != nil {
		glyph := " ▶ "
		if c.Play.Glyph == player.GlyphPause {
			glyph = " ⏸ "
		}
		add(targetPlay, glyph, s.IsPlaying())
	}
	if c.Next != nil {
		add(targetNext, " ⏭ ", false)
	}
	if c.Shuffle != nil {
		add(targetShuffle, " ⇄ ", c.Shuffle.Active)
	}
	if c.Repeat != nil {
		add(targetRepeat, " ↻ ", c.Repeat.Active)
	}
	if c.Mute != nil {
		glyph := " ♪ "
		if c.Mute.Glyph == player.GlyphMuted {
			glyph = " × "
		}
		add(targetMute, glyph, s.Muted)
	}
	if c.PlaylistToggle != nil {
		add(targetPlaylistToggle, " ☰ ", s.PlaylistVisible)
	}

	if c.Rail != nil {
		railW := max(minRailWidth, width-2*(timeWidth+1))
		l.rail = region{timeWidth + 1, timeWidth + 1 + railW}
		l.handleX = -1
		if c.Handle != nil {
			l.handleX = l.rail.x0 + min(int(math.Floor(c.Handle.Offset)), railW-1)
		}
	}

	if c.Volume != nil && c.Volume.Visible {
		x0 := len(sliderLabel)
		l.slider = region{x0, x0 + sliderWidth}
	}

	if c.Playlist != nil && c.Playlist.Shown {
		l.rowsShown = true
		l.firstRow = d.offset
		l.rowCount = len(c.Playlist.Rows) - d.offset
		if height > 0 {
			l.rowCount = min(l.rowCount, max(0, height-rowsLine-footerLines))
		}
	}
	return l
}

// visibleRows returns how many playlist rows fit at the given height, or -1 when unlimited.
func visibleRows(height int) int {
	if height <= 0 {
		return -1
	}
	return max(0, height-rowsLine-footerLines)
}

// railWidth returns the rail width in cells, or 0 without a rail.
func (l layout) railWidth() int { return l.rail.x1 - l.rail.x0 }

// railPos converts a screen column into a rail offset; the caller clamps.
func (l layout) railPos(x int) float64 { return float64(x - l.rail.x0) }

// sliderValue converts a screen column on the slider into a slider UI value. The right end is loudest.
func (l layout) sliderValue(x int) float64 {
	f := float64(x-l.slider.x0) / float64(sliderWidth-1)
	return 1 - max(0, min(f, 1))
}

// hitTest finds the innermost target at (x, y).
func (l layout) hitTest(x, y int) target {
	switch {
	case y == tabLine:
		for i, r := range l.tabs {
			if r.contains(x) {
				return target{kind: targetTab, index: i}
			}
		}
	case y == controlsLine:
		for _, b := range l.buttons {
			if b.region.contains(x) {
				return target{kind: b.kind}
			}
		}
	case y == progressLine && l.railWidth() > 0:
		if l.handleX >= 0 && abs(x-l.handleX) <= 1 {
			return target{kind: targetHandle, pos: l.railPos(x)}
		}
		if l.rail.contains(x) {
			return target{kind: targetRail, pos: l.railPos(x)}
		}
	case y == volumeLine && l.slider.contains(x):
		return target{kind: targetSlider, pos: l.sliderValue(x)}
	case l.rowsShown && y >= rowsLine && y < rowsLine+l.rowCount:
		i := l.firstRow + y - rowsLine
		if x < rowPlayWidth {
			return target{kind: targetRowPlay, index: i}
		}
		return target{kind: targetRow, index: i}
	}
	return target{kind: targetNone}
}

// overVolume reports whether (x, y) is over the mute button or the open volume popover.
func (l layout) overVolume(x, y int) bool {
	if y == controlsLine {
		for _, b := range l.buttons {
			if b.kind == targetMute && b.region.contains(x) {
				return true
			}
		}
	}
	return y == volumeLine && l.slider.x1 > 0 && x < l.slider.x1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
