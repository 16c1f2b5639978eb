package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/tapedeck/internal/models"
	"github.com/desertthunder/tapedeck/internal/shared"
	tu "github.com/desertthunder/tapedeck/internal/testing"
)

func testTracks(n int) ([]models.Track, *tu.MockProber) {
	tracks := make([]models.Track, n)
	prober := &tu.MockProber{Durations: make(map[string]float64), Errors: make(map[string]error)}
	for i := range tracks {
		src := fmt.Sprintf("t%d.mp3", i)
		tracks[i] = models.Track{Title: fmt.Sprintf("Song %d", i), Source: src}
		prober.Durations[src] = float64(60 * (i + 1))
	}
	return tracks, prober
}

func drain(ch chan ProgressUpdate) {
	go func() {
		for range ch {
			// Drain progress channel
		}
	}()
}

func TestDiscoverer_DiscoverAll(t *testing.T) {
	t.Run("resolves every track", func(t *testing.T) {
		tracks, prober := testTracks(5)
		d := NewDiscoverer(prober, nil)

		progressCh := make(chan ProgressUpdate, 100)
		drain(progressCh)

		result, err := d.DiscoverAll(context.Background(), progressCh, tracks, DiscoveryOpts{Workers: 2, RateLimit: 1000})
		close(progressCh)
		if err != nil {
			t.Fatalf("DiscoverAll() error = %v", err)
		}

		if result.Resolved != 5 || result.Failed != 0 || result.Total != 5 {
			t.Errorf("result = %+v", result)
		}
		for i, r := range result.Results {
			if r.Index != i {
				t.Errorf("Results[%d].Index = %d, want sorted", i, r.Index)
			}
			if want := float64(60 * (i + 1)); r.Seconds != want {
				t.Errorf("Results[%d].Seconds = %v, want %v", i, r.Seconds, want)
			}
		}
	})

	t.Run("partial failures are counted", func(t *testing.T) {
		tracks, prober := testTracks(4)
		prober.Errors["t2.mp3"] = errors.New("corrupt header")
		prober.Durations["t3.mp3"] = 0

		result, err := NewDiscoverer(prober, nil).DiscoverAll(context.Background(), nil, tracks, DiscoveryOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("DiscoverAll() error = %v", err)
		}
		if result.Resolved != 2 || result.Failed != 2 {
			t.Errorf("resolved=%d failed=%d, want 2/2", result.Resolved, result.Failed)
		}
		if !errors.Is(result.Results[3].Err, shared.ErrInvalidInput) {
			t.Errorf("zero duration error = %v", result.Results[3].Err)
		}
	})

	t.Run("known durations are skipped", func(t *testing.T) {
		tracks, prober := testTracks(3)
		tracks[1].Duration = 99
		tracks[1].DurationSource = models.DurationEngine

		result, err := NewDiscoverer(prober, nil).DiscoverAll(context.Background(), nil, tracks, DiscoveryOpts{RateLimit: 1000})
		if err != nil {
			t.Fatal(err)
		}
		if result.Skipped != 1 || len(result.Results) != 2 || prober.CallCount() != 2 {
			t.Errorf("result = %+v calls = %d", result, prober.CallCount())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		tracks, prober := testTracks(3)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := NewDiscoverer(prober, nil).DiscoverAll(ctx, nil, tracks, DiscoveryOpts{})
		if !errors.Is(err, shared.ErrDiscoveryCancelled) || !IsCancelled(err) {
			t.Errorf("error = %v, want ErrDiscoveryCancelled", err)
		}
		if result == nil {
			t.Fatal("result should not be nil")
		}
		if prober.CallCount() != 0 {
			t.Errorf("probed %d tracks after cancel", prober.CallCount())
		}
	})

	t.Run("missing prober", func(t *testing.T) {
		_, err := NewDiscoverer(nil, nil).DiscoverAll(context.Background(), nil, nil, DiscoveryOpts{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Run("streams one result per track", func(t *testing.T) {
		tracks, prober := testTracks(6)
		results, err := NewDiscoverer(prober, nil).Discover(context.Background(), nil, tracks, DiscoveryOpts{Workers: 3, RateLimit: 1000})
		if err != nil {
			t.Fatal(err)
		}

		seen := make(map[int]bool)
		for r := range results {
			if seen[r.Index] {
				t.Errorf("duplicate result for %d", r.Index)
			}
			seen[r.Index] = true
		}
		if len(seen) != 6 {
			t.Errorf("got %d results, want 6", len(seen))
		}
	})

	t.Run("cancel unblocks in-flight probes", func(t *testing.T) {
		tracks, prober := testTracks(2)
		prober.Block = make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())

		results, err := NewDiscoverer(prober, nil).Discover(ctx, nil, tracks, DiscoveryOpts{Workers: 2, RateLimit: 1000})
		if err != nil {
			t.Fatal(err)
		}
		cancel()

		done := make(chan struct{})
		go func() {
			for range results {
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("results channel not closed after cancel")
		}
	})

	t.Run("worker count is capped", func(t *testing.T) {
		tracks, prober := testTracks(3)
		results, err := NewDiscoverer(prober, nil).Discover(context.Background(), nil, tracks, DiscoveryOpts{Workers: 1000, RateLimit: 1000})
		if err != nil {
			t.Fatal(err)
		}
		n := 0
		for range results {
			n++
		}
		if n != 3 {
			t.Errorf("results = %d", n)
		}
	})
}

func TestDiscoverer_RateLimiting(t *testing.T) {
	tracks, prober := testTracks(4)

	start := time.Now()
	result, err := NewDiscoverer(prober, nil).DiscoverAll(context.Background(), nil, tracks, DiscoveryOpts{Workers: 4, RateLimit: 20})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatal(err)
	}
	if result.Resolved != 4 {
		t.Errorf("Resolved = %d", result.Resolved)
	}

	// 4 probes at 20/s with a burst of 1 need at least ~150ms
	if elapsed < 100*time.Millisecond {
		t.Logf("Warning: discovery completed very quickly (%v), rate limiting may not be working", elapsed)
	}
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	tracks, prober := testTracks(3)

	// Unbuffered and never read
	progressCh := make(chan ProgressUpdate)

	done := make(chan bool)
	go func() {
		_, err := NewDiscoverer(prober, nil).DiscoverAll(context.Background(), progressCh, tracks, DiscoveryOpts{RateLimit: 1000})
		if err != nil {
			t.Errorf("DiscoverAll() error = %v", err)
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("DiscoverAll() should not block on progress sends")
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{DiscoverStart, "discover_start"},
		{ProbeTrack, "probe_track"},
		{DiscoverDone, "discover_done"},
		{Phase(99), ""},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestProgressMessages(t *testing.T) {
	if got := probingTrackUpdate(1, 2, "/music/a.mp3").Message; got != "[1/2] Probing a.mp3..." {
		t.Errorf("probing message = %q", got)
	}
	if got := discoveryCompleteUpdate(2, 3, 1).Message; got != "✓ Resolved 2/3 durations (1 failed)" {
		t.Errorf("complete message = %q", got)
	}
}
