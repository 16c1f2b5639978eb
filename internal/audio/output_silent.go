//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"errors"

	"github.com/gopxl/beep/v2"
)

// OutputAvailable indicates whether audio playback is supported in this build.
// Audio on linux requires cgo for ALSA.
const OutputAvailable = false

// initOutput always fails: there is no sound device in this build.
func initOutput() error {
	return errors.New("built without audio output")
}

func queue(beep.Streamer) {}
func lockOutput()         {}
func unlockOutput()       {}
