// package tasks implements background duration discovery.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// Prober resolves the duration of a media source in seconds.
type Prober interface {
	Probe(ctx context.Context, source string) (float64, error)
}

// DurationResult is the outcome of probing a single track.
type DurationResult struct {
	Index   int     // Track index in the playlist
	Source  string  // Probed locator
	Seconds float64 // Raw duration; zero when Err is set
	Err     error   // Error if the probe failed
}

// DiscoveryResult contains the aggregated outcome of a blocking discovery run.
type DiscoveryResult struct {
	Total    int              // Tracks submitted
	Skipped  int              // Tracks that already had a duration
	Resolved int              // Probes that succeeded
	Failed   int              // Probes that failed
	Results  []DurationResult // Per-track results sorted by index
}

// Discoverer probes playlist durations with a bounded, rate-limited worker pool.
type Discoverer struct {
	prober Prober
	logger *log.Logger
}

// NewDiscoverer creates a Discoverer. A nil logger discards output.
func NewDiscoverer(prober Prober, logger *log.Logger) *Discoverer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Discoverer{prober: prober, logger: logger}
}

// DiscoverAll probes every track and blocks until all results are in.
//
// Probe failures are counted, not returned. Cancelling ctx returns the partial result with [shared.ErrDiscoveryCancelled].
func (d *Discoverer) DiscoverAll(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	tracks []models.Track,
	opts DiscoveryOpts,
) (*DiscoveryResult, error) {
	results, err := d.Discover(ctx, prog, tracks, opts)
	if err != nil {
		return nil, err
	}

	out := &DiscoveryResult{Total: len(tracks), Results: make([]DurationResult, 0, len(tracks))}
	for _, t := range tracks {
		if t.HasDuration() {
			out.Skipped++
		}
	}
	for res := range results {
		if res.Err != nil {
			out.Failed++
		} else {
			out.Resolved++
		}
		out.Results = append(out.Results, res)
	}
	slices.SortFunc(out.Results, func(a, b DurationResult) int { return a.Index - b.Index })

	d.sendProgress(prog, discoveryCompleteUpdate(out.Resolved, out.Total-out.Skipped, out.Failed))

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("%w: %v", shared.ErrDiscoveryCancelled, err)
	}
	return out, nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (d *Discoverer) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// IsCancelled reports whether err came from a cancelled discovery run.
func IsCancelled(err error) bool {
	return errors.Is(err, shared.ErrDiscoveryCancelled) || errors.Is(err, context.Canceled)
}
