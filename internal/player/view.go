package player

import "github.com/desertthunder/tapedeck/internal/shared"

// Row is one rendered playlist entry.
type Row struct {
	Index    int
	Cover    string
	Title    string
	Artist   string
	Duration string
	Active   bool
}

// Rows returns a copy of the playlist rows, or nil when the player has no playlist panel.
func (p *Player) Rows() []Row {
	if p.controls.Playlist == nil {
		return nil
	}
	out := make([]Row, len(p.controls.Playlist.Rows))
	copy(out, p.controls.Playlist.Rows)
	return out
}

// ClickRow selects the track of row i.
func (p *Player) ClickRow(i int) {
	if !p.hasPlaylist || p.controls.Playlist == nil {
		return
	}
	p.SelectTrack(i)
}

// ClickRowPlay handles the play button nested inside row i. It selects exactly once, like [Player.ClickRow].
func (p *Player) ClickRowPlay(i int) {
	p.ClickRow(i)
}

func (p *Player) renderPlaylist() {
	if !p.hasPlaylist || p.controls.Playlist == nil {
		return
	}
	rows := make([]Row, len(p.tracks))
	for i, t := range p.tracks {
		rows[i] = Row{
			Index:    i,
			Cover:    p.coverOf(i),
			Title:    t.Title,
			Artist:   t.Artist,
			Duration: p.durationText(i),
			Active:   i == p.state.CurrentIndex,
		}
	}
	p.controls.Playlist.Rows = rows
}

func (p *Player) highlight(i int) {
	if p.controls.Playlist == nil {
		return
	}
	for j := range p.controls.Playlist.Rows {
		p.controls.Playlist.Rows[j].Active = j == i
	}
}

func (p *Player) refreshRowDuration(i int) {
	if p.controls.Playlist == nil || i >= len(p.controls.Playlist.Rows) {
		return
	}
	p.controls.Playlist.Rows[i].Duration = p.durationText(i)
}

func (p *Player) coverOf(i int) string {
	if c := p.tracks[i].Cover; c != "" {
		return c
	}
	return p.fallbackCover
}

func (p *Player) durationText(i int) string {
	t := p.tracks[i]
	if !t.HasDuration() {
		return defaultElapsedString
	}
	return shared.FormatTime(t.Duration)
}
