package ui

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/player"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/desertthunder/tapedeck/internal/tasks"
)

// DeckOptions contains everything needed to put one playlist on the page.
type DeckOptions struct {
	Playlist models.Playlist
	Engine   player.Engine
	Events   <-chan player.Event // Engine notifications; nil for engines that emit none
	SkinName string
	Skin     shared.SkinConfig
	Player   shared.PlayerConfig
	Registry player.Registry
	Logger   *log.Logger
}

// Deck is one player instance on the page together with its event sources.
type Deck struct {
	name      string
	skin      string
	player    *player.Player
	events    <-chan player.Event
	durations <-chan tasks.DurationResult
	palette   *Palette
	cursor    int // Keyboard focus in the playlist
	offset    int // First visible playlist row
}

// NewDeck builds the player for a playlist with the controls its skin provides.
func NewDeck(opts DeckOptions) (*Deck, error) {
	omit := opts.Skin.Omit
	volume := opts.Player.DefaultVolume
	p, err := player.New(player.Options{
		Playlist:      opts.Playlist,
		Engine:        opts.Engine,
		Controls:      player.NewControlSet(minRailWidth, omit...),
		HasPlaylist:   !opts.Skin.Omits(player.ControlPlaylist),
		FallbackCover: opts.Skin.FallbackCover,
		Registry:      opts.Registry,
		Logger:        opts.Logger,
		EndTolerance:  opts.Player.EndTolerance,
		InitialVolume: &volume,
		PopoverDelay:  opts.Player.PopoverDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player for %q: %w", opts.Playlist.Name, err)
	}

	return &Deck{
		name:    opts.Playlist.Name,
		skin:    opts.SkinName,
		player:  p,
		events:  opts.Events,
		palette: SkinPalette(opts.Skin.Accent),
	}, nil
}

// Player returns the deck's player.
func (d *Deck) Player() *player.Player { return d.player }

// Name returns the playlist name shown on the deck's tab.
func (d *Deck) Name() string { return d.name }

// moveCursor moves playlist focus by delta rows, clamped to the playlist.
func (d *Deck) moveCursor(delta int) {
	n := len(d.player.Rows())
	if n == 0 {
		return
	}
	d.cursor = max(0, min(d.cursor+delta, n-1))
}

// scrollTo adjusts offset so that the cursor is inside a window of visible rows.
func (d *Deck) scrollTo(visible int) {
	if visible <= 0 {
		d.offset = 0
		return
	}
	if d.cursor < d.offset {
		d.offset = d.cursor
	}
	if d.cursor >= d.offset+visible {
		d.offset = d.cursor - visible + 1
	}
}
