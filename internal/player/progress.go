package player

import (
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// percentOf converts an engine time into a progress percentage of the current track.
func (p *Player) percentOf(seconds float64) (float64, error) {
	t := p.Current()
	if !t.HasDuration() {
		return 0, shared.ErrUnresolvedDuration
	}
	return clamp(seconds/t.Duration*100, 0, 100), nil
}

// OnTimeUpdate applies an engine clock tick.
//
// Ticks are discarded while a drag is in progress, when they belong to a previously loaded source and while the
// duration is unresolved.
func (p *Player) OnTimeUpdate(source string, seconds float64) {
	if p.state.DraggingProgress {
		return
	}
	if source != p.loaded {
		return
	}
	percent, err := p.percentOf(seconds)
	if err != nil {
		p.logger.Debug("skipping clock tick", "err", err)
		return
	}
	p.renderProgress(percent)
	p.setText(p.controls.Elapsed, shared.FormatTime(seconds))
}

// OnMetadata applies the duration resolved by the live engine for the loaded track.
func (p *Player) OnMetadata(source string, seconds float64) {
	if source != p.loaded {
		return
	}
	d, ok := models.RoundDuration(seconds)
	if !ok {
		return
	}
	i := p.state.CurrentIndex
	p.tracks[i].Duration = d
	p.tracks[i].DurationSource = models.DurationEngine
	p.setText(p.controls.Duration, shared.FormatTime(d))
	p.refreshRowDuration(i)
}

// ApplyDiscoveredDuration applies a background discovery result.
//
// It is idempotent and safe to call in any order. A value set by the live engine is never overwritten. The main
// duration display is only touched when index is the current track.
func (p *Player) ApplyDiscoveredDuration(index int, seconds float64) {
	if !p.validIndex(index) {
		return
	}
	d, ok := models.RoundDuration(seconds)
	if !ok {
		return
	}
	t := &p.tracks[index]
	if t.DurationSource == models.DurationEngine {
		return
	}
	t.Duration = d
	t.DurationSource = models.DurationProbed

	p.refreshRowDuration(index)
	if index == p.state.CurrentIndex {
		p.setText(p.controls.Duration, shared.FormatTime(d))
	}
}

// BeginDrag starts a drag of the progress handle.
func (p *Player) BeginDrag() {
	if p.controls.Handle == nil || p.controls.Bar == nil || p.controls.Rail == nil {
		return
	}
	p.state.DraggingProgress = true
	p.dragFraction = p.Fraction(p.controls.Handle.Offset)
	if s := p.controls.Surface; s != nil {
		s.SelectionLocked = true
	}
}

// DragTo moves the handle to offset x from the rail's left edge. The engine position is not touched.
func (p *Player) DragTo(x float64) {
	if !p.state.DraggingProgress {
		return
	}
	p.dragFraction = p.Fraction(x)
	p.renderProgress(p.dragFraction * 100)

	if t := p.Current(); t.HasDuration() {
		p.setText(p.controls.Elapsed, shared.FormatTime(p.dragFraction*t.Duration))
	}
}

// EndDrag finishes a drag at offset x and issues exactly one seek to the final position.
func (p *Player) EndDrag(x float64) {
	if !p.state.DraggingProgress {
		return
	}
	p.DragTo(x)

	if t := p.Current(); t.HasDuration() {
		p.seek(p.dragFraction * t.Duration)
	} else {
		p.logger.Debug("drag released without seek", "err", shared.ErrUnresolvedDuration)
	}

	p.state.DraggingProgress = false
	if s := p.controls.Surface; s != nil {
		s.SelectionLocked = false
	}
}

// SeekTo seeks to the position under offset x on the rail.
func (p *Player) SeekTo(x float64) {
	if p.controls.Rail == nil || p.controls.Bar == nil {
		return
	}
	t := p.Current()
	if !t.HasDuration() {
		p.logger.Debug("click ignored", "err", shared.ErrUnresolvedDuration)
		return
	}
	p.seek(p.Fraction(x) * t.Duration)
}

// Fraction converts a rail offset into a position in [0, 1].
func (p *Player) Fraction(x float64) float64 {
	if p.controls.Rail == nil || p.controls.Rail.Width <= 0 {
		return 0
	}
	w := p.controls.Rail.Width
	return clamp(x, 0, w) / w
}

// SetRailWidth records a new rail width after a layout change and moves the handle to match the bar.
func (p *Player) SetRailWidth(width float64) {
	if p.controls.Rail == nil || width < 0 {
		return
	}
	p.controls.Rail.Width = width
	if p.controls.Bar != nil {
		p.renderProgress(p.controls.Bar.Percent)
	}
}

// OnEnded handles the engine reaching the end of the loaded track.
func (p *Player) OnEnded(source string) {
	if source != p.loaded {
		return
	}
	t := p.Current()
	if elapsed := p.engine.CurrentTime(); t.HasDuration() && elapsed < t.Duration-p.endTolerance {
		p.logger.Debug("treating end as stall", "err", shared.ErrSpuriousEnd, "elapsed", elapsed, "duration", t.Duration)
		p.pause()
		return
	}

	if p.state.RepeatEnabled {
		p.seek(0)
		p.play()
		return
	}
	p.step(Forward)
}

func (p *Player) seek(seconds float64) {
	if err := p.engine.SetCurrentTime(seconds); err != nil {
		p.logger.Warn("seek failed", "seconds", seconds, "err", err)
	}
}

func (p *Player) renderProgress(percent float64) {
	if p.controls.Bar != nil {
		p.controls.Bar.Percent = percent
	}
	if p.controls.Handle != nil && p.controls.Rail != nil {
		p.controls.Handle.Offset = percent / 100 * p.controls.Rail.Width
	}
}

func (p *Player) setText(t *Text, value string) {
	if t != nil {
		t.Value = value
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
