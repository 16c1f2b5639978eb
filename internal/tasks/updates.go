package tasks

import (
	"fmt"
	"path/filepath"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	DiscoverStart Phase = iota
	ProbeTrack
	DiscoverDone
)

func (p Phase) String() string {
	switch p {
	case DiscoverStart:
		return "discover_start"
	case ProbeTrack:
		return "probe_track"
	case DiscoverDone:
		return "discover_done"
	default:
		return ""
	}
}

func discoveryStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DiscoverStart,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Discovering durations for %d tracks...", total),
	}
}

func probingTrackUpdate(step, total int, source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProbeTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Probing %s...", step, total, filepath.Base(source)),
		Data:    source,
	}
}

func discoveryCompleteUpdate(resolved, total, failed int) ProgressUpdate {
	msg := fmt.Sprintf("✓ Resolved %d/%d durations", resolved, total)
	if failed > 0 {
		msg = fmt.Sprintf("%s (%d failed)", msg, failed)
	}
	return ProgressUpdate{
		Phase:   DiscoverDone,
		Step:    resolved,
		Total:   total,
		Message: msg,
	}
}
