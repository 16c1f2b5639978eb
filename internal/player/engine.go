package player

// Engine is the native playback primitive a player drives.
//
// Times and durations are in seconds. Volume is linear in [0, 1].
type Engine interface {
	Load(source string) error
	Play() error
	Pause()
	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	Volume() float64
	SetVolume(volume float64)
	Muted() bool
	SetMuted(muted bool)
}

// EventKind enumerates the engine notifications a player consumes.
type EventKind int

const (
	TimeUpdated   EventKind = iota // Playback clock advanced
	MetadataReady                  // Engine resolved the loaded track's duration
	Ended                          // Engine reached the end of the loaded track
)

func (k EventKind) String() string {
	switch k {
	case TimeUpdated:
		return "time_updated"
	case MetadataReady:
		return "metadata_ready"
	case Ended:
		return "ended"
	default:
		return ""
	}
}

// Event is an engine notification. Source is the locator that was loaded when the event was produced, so events
// from a previously loaded track can be told apart and dropped.
type Event struct {
	Kind    EventKind
	Source  string
	Seconds float64 // Current time for TimeUpdated, duration for MetadataReady
}

// Dispatch routes an engine event to the matching transition.
func (p *Player) Dispatch(ev Event) {
	switch ev.Kind {
	case TimeUpdated:
		p.OnTimeUpdate(ev.Source, ev.Seconds)
	case MetadataReady:
		p.OnMetadata(ev.Source, ev.Seconds)
	case Ended:
		p.OnEnded(ev.Source)
	}
}
