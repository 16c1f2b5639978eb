//go:build (linux && cgo) || windows || darwin

package audio

import (
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// OutputAvailable indicates whether audio playback is supported in this build.
const OutputAvailable = true

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initOutput initialises the process-wide speaker on first use.
func initOutput() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(outputSampleRate, outputSampleRate.N(bufferDuration))
	})
	return speakerErr
}

func queue(s beep.Streamer) { speaker.Play(s) }
func lockOutput()           { speaker.Lock() }
func unlockOutput()         { speaker.Unlock() }
