package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 16
	defaultRateLimit = 20.0
)

// DiscoveryOpts contains configuration for duration discovery.
type DiscoveryOpts struct {
	Workers   int     // Concurrent probes (default: 4, max: 16)
	RateLimit float64 // Probes started per second (default: 20)
}

// probeJob is a single unit of work for a discovery worker.
type probeJob struct {
	index  int
	source string
}

// Discover starts probing every track whose duration is unknown and returns a channel of results.
//
// The channel is buffered to the number of jobs and closed once all workers exit, so a slow consumer never blocks the
// pool. Jobs not yet started when ctx is cancelled are dropped without a result.
func (d *Discoverer) Discover(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	tracks []models.Track,
	opts DiscoveryOpts,
) (<-chan DurationResult, error) {
	if d.prober == nil {
		return nil, fmt.Errorf("%w: prober not initialized", shared.ErrMissingArgument)
	}

	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	pending := make([]probeJob, 0, len(tracks))
	for i, t := range tracks {
		if t.HasDuration() {
			continue
		}
		pending = append(pending, probeJob{index: i, source: t.Source})
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan probeJob, len(pending))
	results := make(chan DurationResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go d.probeWorker(ctx, &wg, jobs, results)
	}

	go func() {
		defer close(jobs)
		d.sendProgress(prog, discoveryStartedUpdate(len(pending)))
		for i, job := range pending {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			jobs <- job
			d.sendProgress(prog, probingTrackUpdate(i+1, len(pending), job.source))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

// probeWorker is a worker goroutine that probes sources from the jobs channel.
func (d *Discoverer) probeWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan probeJob,
	results chan<- DurationResult,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- d.probeOne(ctx, job)
	}
}

func (d *Discoverer) probeOne(ctx context.Context, job probeJob) DurationResult {
	res := DurationResult{Index: job.index, Source: job.source}

	seconds, err := d.prober.Probe(ctx, job.source)
	if err != nil {
		d.logger.Warn("duration probe failed", "index", job.index, "source", job.source, "err", err)
		res.Err = fmt.Errorf("probe %s: %w", job.source, err)
		return res
	}
	rounded, ok := models.RoundDuration(seconds)
	if !ok {
		res.Err = fmt.Errorf("%w: probe %s returned %v", shared.ErrInvalidInput, job.source, seconds)
		return res
	}

	d.logger.Debug("duration probed", "index", job.index, "seconds", rounded)
	res.Seconds = rounded
	return res
}
