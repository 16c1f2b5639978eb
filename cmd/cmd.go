// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// playCommand opens the player TUI.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Aliases:   []string{"p"},
		Usage:     "Open one player deck per playlist (directory, .toml playlist or audio file)",
		ArgsUsage: "<playlist> [playlist...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "skin",
				Aliases: []string{"s"},
				Usage:   "Skin per deck, repeated in order (default: player.skin)",
			},
			&cli.BoolFlag{
				Name:  "no-discovery",
				Usage: "Do not probe track durations in the background",
			},
		},
		Action: r.Play,
	}
}

// probeCommand resolves durations without opening the player.
func probeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Probe track durations and print a playlist report",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "path",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (text, markdown, csv, toml)",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Probe,
	}
}

// initCommand writes the example configuration.
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Write an example config.toml",
		Action: r.Init,
	}
}

// skinsCommand lists configured skins.
func skinsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "skins",
		Usage:  "List configured skins",
		Action: r.Skins,
	}
}
