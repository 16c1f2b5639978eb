package player

import (
	"time"

	"github.com/desertthunder/tapedeck/internal/shared"
)

// TogglePlay starts or pauses playback of the current track.
func (p *Player) TogglePlay() {
	if p.controls.Play == nil {
		return
	}
	if p.state.IsPlaying() {
		p.pause()
		return
	}
	p.play()
}

// SelectTrack loads track i and starts it. Out-of-range indices are ignored.
func (p *Player) SelectTrack(i int) {
	if !p.validIndex(i) {
		p.logger.Debug("ignoring selection", "index", i, "err", shared.ErrInvalidArgument)
		return
	}
	p.state.CurrentIndex = i
	p.load(i)
	p.play()
}

// Next moves to the following track and plays it.
func (p *Player) Next() {
	if p.controls.Next == nil {
		p.logger.Debug("next unavailable", "err", shared.ErrMissingControl)
		return
	}
	p.step(Forward)
}

// Prev moves to the preceding track and plays it.
func (p *Player) Prev() {
	if p.controls.Prev == nil {
		p.logger.Debug("prev unavailable", "err", shared.ErrMissingControl)
		return
	}
	p.step(Backward)
}

// ToggleShuffle flips shuffle mode. Enabling draws a fresh order that starts with the current track.
func (p *Player) ToggleShuffle() {
	if p.controls.Shuffle == nil {
		return
	}
	if p.sequencer == nil {
		p.sequencer = NewSequencer(p.rng)
	}

	p.state.ShuffleEnabled = !p.state.ShuffleEnabled
	if p.state.ShuffleEnabled {
		p.state.ShuffleOrder = p.sequencer.Enable(p.state.CurrentIndex, len(p.tracks))
	} else {
		p.state.ShuffleOrder = p.sequencer.Disable()
	}
	p.controls.Shuffle.Active = p.state.ShuffleEnabled
	p.logger.Debug("shuffle toggled", "enabled", p.state.ShuffleEnabled, "order", p.state.ShuffleOrder)
}

// ToggleRepeat flips single-track repeat.
func (p *Player) ToggleRepeat() {
	if p.controls.Repeat == nil {
		return
	}
	p.state.RepeatEnabled = !p.state.RepeatEnabled
	p.controls.Repeat.Active = p.state.RepeatEnabled
}

// ToggleMute flips the engine mute flag.
func (p *Player) ToggleMute() {
	if p.controls.Mute == nil {
		return
	}
	p.setMuted(!p.state.Muted)
}

// SetVolume applies a slider value. The slider is inverted: ui 0 is full volume and ui 1 is silence.
//
// Mute follows the resulting volume, so dragging the slider to the bottom mutes and any other value unmutes.
func (p *Player) SetVolume(ui float64) {
	if p.controls.Volume == nil || p.controls.VolumeSlider == nil {
		return
	}
	ui = clamp(ui, 0, 1)
	v := 1 - ui

	p.engine.SetVolume(v)
	p.state.Volume = v
	p.controls.VolumeSlider.Value = ui
	p.setMuted(v == 0)
}

// TogglePlaylist shows or hides the playlist panel. Rows are not re-rendered.
func (p *Player) TogglePlaylist() {
	if !p.hasPlaylist || p.controls.PlaylistToggle == nil || p.controls.Playlist == nil {
		return
	}
	p.state.PlaylistVisible = !p.state.PlaylistVisible
	p.controls.Playlist.Shown = p.state.PlaylistVisible
}

// EnterVolume reveals the volume popover and cancels any pending hide.
func (p *Player) EnterVolume() {
	if p.controls.Volume == nil {
		return
	}
	p.popoverGen++
	p.controls.Volume.Visible = true
}

// LeaveVolume schedules a hide of the volume popover.
//
// The caller waits delay and then passes gen to [Player.ExpireVolumePopover]. A call to EnterVolume in between
// invalidates gen.
func (p *Player) LeaveVolume() (gen uint64, delay time.Duration) {
	p.popoverGen++
	return p.popoverGen, p.popoverDelay
}

// ExpireVolumePopover hides the popover if no hover happened since the hide with generation gen was scheduled.
func (p *Player) ExpireVolumePopover(gen uint64) {
	if p.controls.Volume == nil || gen != p.popoverGen {
		return
	}
	p.controls.Volume.Visible = false
}

func (p *Player) play() {
	if err := p.engine.Play(); err != nil {
		p.logger.Warn("play failed", "source", p.loaded, "err", err)
		return
	}
	p.state.Playback = Playing
	if p.controls.Play != nil {
		p.controls.Play.Glyph = GlyphPause
	}
}

func (p *Player) pause() {
	p.engine.Pause()
	p.state.Playback = Paused
	if p.controls.Play != nil {
		p.controls.Play.Glyph = GlyphPlay
	}
}

func (p *Player) step(dir Direction) {
	i := p.advance(dir)
	p.load(i)
	p.play()
}

func (p *Player) setMuted(muted bool) {
	p.engine.SetMuted(muted)
	p.state.Muted = muted
	if p.controls.Mute != nil {
		p.controls.Mute.Glyph = GlyphVolume
		if muted {
			p.controls.Mute.Glyph = GlyphMuted
		}
	}
}

// load points the engine at track i and resets the display for it.
func (p *Player) load(i int) {
	t := p.tracks[i]
	if err := p.engine.Load(t.Source); err != nil {
		p.logger.Warn("load failed", "index", i, "source", t.Source, "err", err)
	}
	p.loaded = t.Source

	if p.controls.Cover != nil {
		p.controls.Cover.Source = p.coverOf(i)
	}
	p.setText(p.controls.Title, t.Title)
	p.setText(p.controls.Artist, t.Artist)
	p.setText(p.controls.Elapsed, defaultElapsedString)
	p.setText(p.controls.Duration, p.durationText(i))
	p.renderProgress(0)
	p.highlight(i)
}
