package player

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

const (
	DefaultEndTolerance  = 0.5 // Seconds an end event may precede the declared duration
	DefaultVolume        = 0.5
	DefaultPopoverDelay  = 200 * time.Millisecond
	defaultElapsedString = "0:00"
)

// Options contains the construction input of a player.
type Options struct {
	Playlist      models.Playlist
	Engine        Engine
	Controls      ControlSet
	HasPlaylist   bool     // Whether the skin has a playlist panel
	FallbackCover string   // Cover shown for tracks that declare none
	Registry      Registry // Defaults to a private PageRegistry
	Logger        *log.Logger
	Rand          *rand.Rand // Shuffle source; seeded randomly when nil

	EndTolerance  float64       // Defaults to DefaultEndTolerance when zero
	InitialVolume *float64      // Defaults to DefaultVolume when nil; zero starts muted
	PopoverDelay  time.Duration // Defaults to DefaultPopoverDelay when zero
}

// Player is one media-player widget instance.
type Player struct {
	id            string
	tracks        []models.Track
	state         State
	engine        Engine
	controls      ControlSet
	hasPlaylist   bool
	fallbackCover string
	registry      Registry
	logger        *log.Logger
	rng           *rand.Rand
	sequencer     *Sequencer // Created on the first shuffle toggle

	endTolerance float64
	popoverDelay time.Duration
	popoverGen   uint64

	dragFraction float64 // Last computed drag position in [0, 1]
	loaded       string  // Source currently loaded in the engine
}

// New builds a player, loads track 0 without starting it and renders the playlist.
func New(opts Options) (*Player, error) {
	if opts.Playlist.Len() == 0 {
		return nil, shared.ErrEmptyPlaylist
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: engine is required", shared.ErrMissingArgument)
	}
	if opts.Registry == nil {
		opts.Registry = NewPageRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.EndTolerance == 0 {
		opts.EndTolerance = DefaultEndTolerance
	}
	if opts.PopoverDelay == 0 {
		opts.PopoverDelay = DefaultPopoverDelay
	}

	p := &Player{
		tracks:        opts.Playlist.Clone().Tracks,
		engine:        opts.Engine,
		controls:      opts.Controls,
		hasPlaylist:   opts.HasPlaylist,
		fallbackCover: opts.FallbackCover,
		registry:      opts.Registry,
		rng:           opts.Rand,
		endTolerance:  opts.EndTolerance,
		popoverDelay:  opts.PopoverDelay,
		state: State{
			Playback:        Stopped,
			Volume:          opts.Engine.Volume(),
			Muted:           opts.Engine.Muted(),
			PlaylistVisible: true,
		},
	}
	p.id = p.registry.Register(p)
	p.logger = shared.WithLogger(opts.Logger, "player", p.id)

	if p.controls.Volume != nil && p.controls.VolumeSlider != nil {
		volume := DefaultVolume
		if opts.InitialVolume != nil {
			volume = clamp(*opts.InitialVolume, 0, 1)
		}
		p.engine.SetVolume(volume)
		p.state.Volume = volume
		p.controls.VolumeSlider.Value = 1 - volume
		if volume == 0 {
			p.setMuted(true)
		}
	}
	if p.hasPlaylist && p.controls.Playlist != nil {
		p.controls.Playlist.Shown = true
	}

	p.load(0)
	p.renderPlaylist()

	p.logger.Debug("player created", "playlist", opts.Playlist.Name, "tracks", len(p.tracks))
	return p, nil
}

// ID returns the instance ID assigned by the registry.
func (p *Player) ID() string { return p.id }

// State returns a copy of the player state.
func (p *Player) State() State { return p.state.clone() }

// Tracks returns a copy of the playlist with the durations known so far.
func (p *Player) Tracks() []models.Track {
	out := make([]models.Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// Controls returns the rendered control set for the view layer to draw. The view must treat it as read-only.
func (p *Player) Controls() ControlSet { return p.controls }

// Close removes the player from its registry.
func (p *Player) Close() {
	p.registry.Unregister(p.id)
	p.logger.Debug("player closed")
}
