package sampler

import "github.com/audiograph/engine/pkg/timestamp"

// EventKind distinguishes a scheduled start from a scheduled stop.
type EventKind int

const (
	// EventStart begins playback from StartPosition at Time.
	EventStart EventKind = iota
	// EventStop fades out whatever voice is currently active at Time.
	EventStop
)

// Event is one timestamped playback instruction. The control thread
// schedules these ahead of the audio thread reaching Time; the sampler
// renders up to Time exactly, applies the event, and continues.
type Event struct {
	Kind          EventKind
	Time          timestamp.Timestamp
	StartPosition int
}
