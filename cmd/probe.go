package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tapedeck/internal/formatter"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/playlists"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/desertthunder/tapedeck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// probeReport is the JSON shape of a probe run.
type probeReport struct {
	Playlist string       `json:"playlist"`
	Total    int          `json:"total"`
	Resolved int          `json:"resolved"`
	Failed   int          `json:"failed"`
	Skipped  int          `json:"skipped"`
	Tracks   []probeTrack `json:"tracks"`
}

type probeTrack struct {
	Index   int     `json:"index"`
	Source  string  `json:"src"`
	Seconds float64 `json:"seconds,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Probe resolves every track duration of a playlist and prints a report.
func (r *Runner) Probe(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: playlist path", shared.ErrMissingArgument)
	}

	pl, err := playlists.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}
	r.logger.Info("probing playlist", "name", pl.Name, "tracks", pl.Len())

	result, err := r.probe(ctx, pl)
	if err != nil {
		return err
	}
	applyDurations(&pl, result)

	if cmd.Bool("json") {
		return r.writeJSON(newProbeReport(pl, result), cmd.Bool("pretty"))
	}

	format := cmd.String("format")
	if out := cmd.String("output"); out != "" {
		if err := formatter.WriteFile(pl, format, out); err != nil {
			return err
		}
		r.logger.Info("report written", "path", out, "format", format)
		return nil
	}
	return formatter.Write(r.output, pl, format)
}

// probe runs discovery and relays progress to the logger.
func (r *Runner) probe(ctx context.Context, pl models.Playlist) (*tasks.DiscoveryResult, error) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ProbeTrack:
				r.logger.Debug(update.Message)
			default:
				r.logger.Info(update.Message)
			}
		}
	}()

	discoverer := tasks.NewDiscoverer(r.prober, r.logger)
	result, err := discoverer.DiscoverAll(ctx, progressCh, pl.Tracks, r.discoveryOpts())
	close(progressCh)
	<-done

	if err != nil {
		return nil, err
	}
	for _, res := range result.Results {
		if res.Err != nil {
			r.logger.Warn("probe failed", "src", res.Source, "err", res.Err)
		}
	}
	return result, nil
}

// applyDurations copies resolved durations into the playlist.
func applyDurations(pl *models.Playlist, result *tasks.DiscoveryResult) {
	for _, res := range result.Results {
		if res.Err != nil || res.Index < 0 || res.Index >= pl.Len() {
			continue
		}
		t := &pl.Tracks[res.Index]
		t.Duration = res.Seconds
		t.DurationSource = models.DurationProbed
	}
}

func newProbeReport(pl models.Playlist, result *tasks.DiscoveryResult) probeReport {
	report := probeReport{
		Playlist: pl.Name,
		Total:    result.Total,
		Resolved: result.Resolved,
		Failed:   result.Failed,
		Skipped:  result.Skipped,
		Tracks:   make([]probeTrack, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		t := probeTrack{Index: res.Index, Source: res.Source, Seconds: res.Seconds}
		if res.Err != nil {
			t.Seconds = 0
			t.Error = res.Err.Error()
		}
		report.Tracks = append(report.Tracks, t)
	}
	return report
}
