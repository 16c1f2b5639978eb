package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/player"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const (
	outputSampleRate = beep.SampleRate(44100)
	resampleQuality  = 4
	bufferDuration   = time.Second / 10
	eventBuffer      = 64
)

// EngineOptions configures an [Engine].
type EngineOptions struct {
	TickInterval time.Duration // Clock event period (default: 250ms)
	Logger       *log.Logger
}

// Engine plays one track at a time through the shared speaker.
//
// Methods are safe for concurrent use. The speaker streams on its own goroutine, so every touch of the stream
// pipeline happens under the speaker lock.
type Engine struct {
	mu     sync.Mutex
	logger *log.Logger

	current *track
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	gen     uint64 // Bumped on every Load so end callbacks of replaced tracks are ignored
	queued  bool   // Pipeline handed to the speaker and not yet finished
	playing bool

	level float64
	muted bool

	events chan player.Event
	done   chan struct{}
	once   sync.Once

	initOutput func() error
	queue      func(beep.Streamer)
}

// NewEngine creates an Engine at full volume and starts its clock.
func NewEngine(opts EngineOptions) *Engine {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 250 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	e := &Engine{
		logger: opts.Logger,
		level:  1,
		events: make(chan player.Event, eventBuffer),
		done:   make(chan struct{}),

		initOutput: initOutput,
		queue:      queue,
	}
	go e.clock(opts.TickInterval)
	return e
}

// Events returns the notification stream. It is never closed; stop reading after [Engine.Close].
func (e *Engine) Events() <-chan player.Event { return e.events }

// Load decodes source and prepares it paused at position zero, replacing any current track.
//
// A MetadataReady event with the decoded length follows a successful load.
func (e *Engine) Load(source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()
	e.gen++

	t, err := openTrack(source)
	if err != nil {
		return err
	}
	e.current = t
	e.pipelineLocked()

	e.post(player.Event{Kind: player.MetadataReady, Source: source, Seconds: t.seconds()})
	e.logger.Debug("track loaded", "source", source, "rate", t.format.SampleRate, "seconds", t.seconds())
	return nil
}

// Play starts or resumes the loaded track.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return shared.ErrNoTrackLoaded
	}
	if err := e.initOutput(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrOutputUnavailable, err)
	}

	if !e.queued {
		// A finished resampler stays drained after the decoder seeks, so every queue gets a fresh chain.
		if err := e.rewindAtEndLocked(); err != nil {
			return err
		}
		e.pipelineLocked()
		gen, source := e.gen, e.current.source
		e.queue(beep.Seq(e.volume, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held.
			go e.finished(gen, source)
		})))
		e.queued = true
	}

	lockOutput()
	e.ctrl.Paused = false
	unlockOutput()
	e.playing = true
	return nil
}

// Pause halts output, keeping the position.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl != nil {
		lockOutput()
		e.ctrl.Paused = true
		unlockOutput()
	}
	e.playing = false
}

// CurrentTime returns the playback position in seconds.
func (e *Engine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

// SetCurrentTime seeks to seconds, clamped to the track.
func (e *Engine) SetCurrentTime(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return shared.ErrNoTrackLoaded
	}
	s := e.current.streamer
	n := e.current.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = max(0, min(n, s.Len()-1))

	lockOutput()
	defer unlockOutput()
	return s.Seek(n)
}

// Volume returns the linear volume in [0, 1].
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// SetVolume sets the linear volume, clamped to [0, 1].
func (e *Engine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = max(0, min(volume, 1))
	e.applyVolumeLocked()
}

// Muted reports the mute flag.
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted sets the mute flag. The volume level is kept.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	e.applyVolumeLocked()
}

// Close stops output and the clock. The engine cannot be reused.
func (e *Engine) Close() {
	e.once.Do(func() { close(e.done) })

	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseLocked()
}

// finished handles the end of the pipeline queued under generation gen.
func (e *Engine) finished(gen uint64, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	e.queued = false
	e.playing = false
	e.post(player.Event{Kind: player.Ended, Source: source})
}

// clock emits TimeUpdated while playing.
func (e *Engine) clock(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.playing && e.current != nil {
				ev := player.Event{Kind: player.TimeUpdated, Source: e.current.source, Seconds: e.positionLocked()}
				select {
				case e.events <- ev:
				default:
					// Consumer is behind; the next tick supersedes this one.
				}
			}
			e.mu.Unlock()
		}
	}
}

// post delivers a non-clock event without blocking the caller, which may be the consumer itself.
func (e *Engine) post(ev player.Event) {
	go func() {
		select {
		case e.events <- ev:
		case <-e.done:
		}
	}()
}

func (e *Engine) positionLocked() float64 {
	if e.current == nil {
		return 0
	}
	lockOutput()
	pos := e.current.streamer.Position()
	unlockOutput()
	return e.current.format.SampleRate.D(pos).Seconds()
}

// pipelineLocked builds a paused resample, control and volume chain over the current decoder.
func (e *Engine) pipelineLocked() {
	t := e.current
	e.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(resampleQuality, t.format.SampleRate, outputSampleRate, t.streamer),
		Paused:   true,
	}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	e.applyVolumeLocked()
}

// rewindAtEndLocked seeks a fully played decoder back to the start.
func (e *Engine) rewindAtEndLocked() error {
	s := e.current.streamer
	lockOutput()
	defer unlockOutput()
	if s.Position() < s.Len() {
		return nil
	}
	return s.Seek(0)
}

// applyVolumeLocked maps the linear level onto the exponential volume effect.
func (e *Engine) applyVolumeLocked() {
	if e.volume == nil {
		return
	}
	lockOutput()
	defer unlockOutput()
	e.volume.Silent = e.muted || e.level <= 0
	if e.level > 0 {
		e.volume.Volume = math.Log2(e.level)
	}
}

// releaseLocked detaches the current pipeline from the speaker and closes the decoder.
func (e *Engine) releaseLocked() {
	if e.ctrl != nil {
		lockOutput()
		e.ctrl.Streamer = nil
		e.ctrl.Paused = true
		unlockOutput()
	}
	if e.current != nil {
		e.current.Close()
	}
	e.current, e.ctrl, e.volume = nil, nil, nil
	e.queued, e.playing = false, false
}
