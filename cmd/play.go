package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tapedeck/internal/audio"
	"github.com/desertthunder/tapedeck/internal/player"
	"github.com/desertthunder/tapedeck/internal/playlists"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/desertthunder/tapedeck/internal/tasks"
	"github.com/desertthunder/tapedeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// Play launches the interactive player with one deck per playlist argument.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one playlist is required", shared.ErrMissingArgument)
	}
	if !audio.OutputAvailable {
		return fmt.Errorf("%w: built without speaker support", shared.ErrOutputUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	decks, release, err := r.buildDecks(paths, cmd.StringSlice("skin"))
	if err != nil {
		return err
	}
	defer release()

	model, err := r.newModel(ctx, decks, !cmd.Bool("no-discovery"))
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// buildDecks loads every playlist and gives each its own engine.
//
// Skins are assigned in order and cycle when there are fewer skins than playlists. The returned func releases every
// engine that was created.
func (r *Runner) buildDecks(paths, skins []string) ([]*ui.Deck, func(), error) {
	if len(skins) == 0 {
		skins = []string{r.config.Player.Skin}
	}

	var releases []func()
	release := func() {
		for _, fn := range releases {
			fn()
		}
	}

	registry := player.NewPageRegistry()
	decks := make([]*ui.Deck, 0, len(paths))
	for i, path := range paths {
		pl, err := playlists.Load(path)
		if err != nil {
			release()
			return nil, nil, fmt.Errorf("failed to load playlist %s: %w", path, err)
		}

		skinName := skins[i%len(skins)]
		skin, err := r.config.Skin(skinName)
		if err != nil {
			release()
			return nil, nil, err
		}

		logger := shared.WithLogger(r.logger, "deck", pl.Name)
		engine, events, closeEngine := r.newEngine(r.config.Player, logger)
		releases = append(releases, closeEngine)

		deck, err := ui.NewDeck(ui.DeckOptions{
			Playlist: pl,
			Engine:   engine,
			Events:   events,
			SkinName: skinName,
			Skin:     skin,
			Player:   r.config.Player,
			Registry: registry,
			Logger:   logger,
		})
		if err != nil {
			release()
			return nil, nil, err
		}
		r.logger.Info("deck ready", "playlist", pl.Name, "tracks", pl.Len(), "skin", skinName)
		decks = append(decks, deck)
	}
	return decks, release, nil
}

func (r *Runner) newModel(ctx context.Context, decks []*ui.Deck, discover bool) (*ui.Model, error) {
	opts := ui.Options{Logger: r.logger}
	if discover {
		opts.Discoverer = tasks.NewDiscoverer(r.prober, r.logger)
		opts.Discovery = r.discoveryOpts()
	}
	return ui.NewModel(ctx, decks, opts)
}
