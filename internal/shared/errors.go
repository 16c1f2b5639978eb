package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrUnknownSkin   = fmt.Errorf("unknown skin")

	// Playlist source errors
	ErrEmptyPlaylist      = fmt.Errorf("playlist has no tracks")
	ErrInvalidPlaylist    = fmt.Errorf("invalid playlist")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported audio format")
	ErrNoTrackLoaded      = fmt.Errorf("no track loaded")
	ErrOutputUnavailable  = fmt.Errorf("audio output unavailable")
	ErrDiscoveryCancelled = fmt.Errorf("duration discovery cancelled")

	// Player conditions. These are logged, never surfaced to the listener.
	ErrUnresolvedDuration = fmt.Errorf("duration not yet resolved")
	ErrSpuriousEnd        = fmt.Errorf("end reported before track duration")
	ErrMissingControl     = fmt.Errorf("control not present in skin")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
