package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

// Init writes the example configuration to the path given by the config flag.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return fmt.Errorf("%w: --config", shared.ErrMissingArgument)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Config written to %s\n\n", path)
	r.writePlainHeader("Next steps")
	r.writePlain("1. Adjust [player] defaults and [skins] in %s\n", path)
	r.writePlain("2. Run 'tapedeck play <directory or playlist.toml>'\n")
	return nil
}

// Skins lists the configured skins and the controls each one leaves out.
func (r *Runner) Skins(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	names := lo.Keys(r.config.Skins)
	slices.Sort(names)

	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Skin", "Accent", "Fallback cover", "Omits"})
	for _, name := range names {
		skin := r.config.Skins[name]
		marker := ""
		if name == r.config.Player.Skin {
			marker = "*"
		}
		omits := "-"
		if len(skin.Omit) > 0 {
			omits = strings.Join(skin.Omit, ", ")
		}
		t.AppendRow(table.Row{marker, name, skin.Accent, skin.FallbackCover, omits})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d skins", len(names))})
	t.Render()
	return nil
}
