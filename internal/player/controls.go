package player

import "slices"

// Glyph identifies an icon drawn by the view layer.
type Glyph int

const (
	GlyphPlay Glyph = iota
	GlyphPause
	GlyphVolume
	GlyphMuted
)

// Text is a text element.
type Text struct{ Value string }

// Image is an image element.
type Image struct{ Source string }

// Icon is a button whose glyph is swapped on state changes.
type Icon struct{ Glyph Glyph }

// Button is a control whose presence enables a feature.
type Button struct{}

// Toggle is a button with an active indicator.
type Toggle struct{ Active bool }

// Rail is the clickable progress track. Width is in view units (pixels, cells).
type Rail struct{ Width float64 }

// Bar is the progress fill, in percent.
type Bar struct{ Percent float64 }

// Handle is the draggable progress pointer, offset from the rail's left edge in view units.
type Handle struct{ Offset float64 }

// Slider is the volume slider. Value is the UI value, inverted so that 0 is loud.
type Slider struct{ Value float64 }

// Popover is a hover-revealed container.
type Popover struct{ Visible bool }

// Panel is the playlist container.
type Panel struct {
	Shown bool
	Rows  []Row
}

// Surface is the document-level host of the widget.
type Surface struct{ SelectionLocked bool }

// ControlSet is the capability record of one player instance.
//
// Every field is optional and resolved once at construction; operations check presence and never look controls up again.
type ControlSet struct {
	Cover          *Image
	Title          *Text
	Artist         *Text
	Play           *Icon
	Prev           *Button
	Next           *Button
	Shuffle        *Toggle
	Repeat         *Toggle
	Mute           *Icon
	Rail           *Rail
	Bar            *Bar
	Handle         *Handle
	Elapsed        *Text
	Duration       *Text
	Volume         *Popover
	VolumeSlider   *Slider
	Playlist       *Panel
	PlaylistToggle *Button
	Surface        *Surface
}

// Names accepted by [NewControlSet] to leave optional controls out.
const (
	ControlCover      = "cover"
	ControlNavigation = "navigation"
	ControlShuffle    = "shuffle"
	ControlRepeat     = "repeat"
	ControlMute       = "mute"
	ControlVolume     = "volume"
	ControlHandle     = "handle"
	ControlProgress   = "progress"
	ControlPlaylist   = "playlist"
)

// NewControlSet builds a full control set, minus the named controls.
func NewControlSet(railWidth float64, omit ...string) ControlSet {
	has := func(name string) bool { return !slices.Contains(omit, name) }

	c := ControlSet{
		Title:    &Text{},
		Artist:   &Text{},
		Play:     &Icon{Glyph: GlyphPlay},
		Elapsed:  &Text{Value: "0:00"},
		Duration: &Text{Value: "0:00"},
		Surface:  &Surface{},
	}
	if has(ControlCover) {
		c.Cover = &Image{}
	}
	if has(ControlNavigation) {
		c.Prev, c.Next = &Button{}, &Button{}
	}
	if has(ControlShuffle) {
		c.Shuffle = &Toggle{}
	}
	if has(ControlRepeat) {
		c.Repeat = &Toggle{}
	}
	if has(ControlMute) {
		c.Mute = &Icon{Glyph: GlyphVolume}
	}
	if has(ControlVolume) {
		c.Volume, c.VolumeSlider = &Popover{}, &Slider{}
	}
	if has(ControlProgress) {
		c.Rail, c.Bar = &Rail{Width: railWidth}, &Bar{}
		if has(ControlHandle) {
			c.Handle = &Handle{}
		}
	}
	if has(ControlPlaylist) {
		c.Playlist, c.PlaylistToggle = &Panel{}, &Button{}
	}
	return c
}
