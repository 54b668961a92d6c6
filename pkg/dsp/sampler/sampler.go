// Package sampler implements a two-voice sample playback node. Starting a
// new voice while one is already playing crossfades between them with a
// short linear ramp instead of cutting over abruptly, which is what keeps
// retriggering a sample from clicking.
package sampler

import (
	"math"

	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/framework/queue"
	"github.com/audiograph/engine/pkg/timestamp"
)

// pendingCapacity bounds how many scheduled events the sampler holds at
// once; events are expected to be drained well before they pile up, so this
// is a sanity ceiling, not a working-set size.
const pendingCapacity = 10

// Sampler plays back a Sample in response to timestamped Start/Stop events
// delivered through its own SPSC queue, independent of the engine's general
// command queue.
type Sampler struct {
	sample     *Sample
	fadeFrames int

	voices      [2]voice
	activeVoice int

	events  *queue.Queue[Event]
	pending []Event
}

// New creates a sampler playing sample, crossfading over fadeMs
// milliseconds at sampleRate whenever a voice starts or stops.
func New(sample *Sample, fadeMs, sampleRate float64) *Sampler {
	return &Sampler{
		sample:     sample,
		fadeFrames: int(math.Ceil(fadeMs * sampleRate / 1000.0)),
		events:     queue.New[Event](pendingCapacity),
	}
}

// Events returns the queue the control thread schedules Start/Stop events
// onto. Exactly one goroutine may push to it.
func (s *Sampler) Events() *queue.Queue[Event] { return s.events }

// ProcessAudio renders one block, applying any pending events at the exact
// frame they fall on by splitting the block into sub-spans at each event
// boundary.
func (s *Sampler) ProcessAudio(input, output buffer.AudioBuffer, startTime timestamp.Timestamp, parameters *param.Registry) {
	s.drainEvents()

	sampleRate := output.SampleRate()
	numFrames := output.NumFrames()
	numChannels := output.NumChannels()

	current := 0
	for current < numFrames {
		spanEnd, due, hasDue := s.nextRenderPoint(startTime, sampleRate, current, numFrames)

		s.renderSpan(output, current, spanEnd, numChannels)
		current = spanEnd

		if hasDue {
			s.pending = s.pending[1:]
			s.apply(due)
		}
	}
}

// nextRenderPoint finds where the current sub-span must end: either the end
// of the block, or the frame offset of the earliest pending event,
// whichever comes first. An event whose timestamp has already passed is
// treated as due at the current frame.
func (s *Sampler) nextRenderPoint(startTime timestamp.Timestamp, sampleRate float64, current, numFrames int) (spanEnd int, due Event, hasDue bool) {
	if len(s.pending) == 0 {
		return numFrames, Event{}, false
	}

	ev := s.pending[0]
	offset := int(math.Round(ev.Time.Sub(startTime) * sampleRate))
	if offset < current {
		offset = current
	}
	if offset >= numFrames {
		return numFrames, Event{}, false
	}
	return offset, ev, true
}

// renderSpan sums both voices' contribution into output[from:to) and
// advances each voice's playhead and fade state one sample at a time.
func (s *Sampler) renderSpan(output buffer.AudioBuffer, from, to, numChannels int) {
	for frame := from; frame < to; frame++ {
		for ch := 0; ch < numChannels; ch++ {
			var sum float32
			for i := range s.voices {
				v := &s.voices[i]
				if v.state == voiceStopped {
					continue
				}
				sum += s.sample.At(ch, v.position) * v.gain()
			}
			output.SetSample(buffer.SampleLocation{Channel: ch, Frame: frame}, sum)
		}
		for i := range s.voices {
			s.voices[i].advance(s.sample.NumFrames())
		}
	}
}

// apply dispatches one due event to the start/stop state machine.
func (s *Sampler) apply(ev Event) {
	switch ev.Kind {
	case EventStart:
		s.start(ev.StartPosition)
	case EventStop:
		s.stop()
	}
}

// start begins playback at startPosition. If the active voice is already
// playing (or fading in) from that exact position, the request is a
// duplicate and is debounced rather than restarting the crossfade. Otherwise
// the current voice fades out while the other voice fades in from
// startPosition.
func (s *Sampler) start(startPosition int) {
	active := &s.voices[s.activeVoice]
	if (active.state == voicePlaying || active.state == voiceFadingIn) && active.startedAt == startPosition {
		return
	}

	active.stopFade(s.fadeFrames)

	next := 1 - s.activeVoice
	s.voices[next].startFade(startPosition, s.fadeFrames)
	s.activeVoice = next
}

// stop fades out whichever voice is currently active.
func (s *Sampler) stop() {
	s.voices[s.activeVoice].stopFade(s.fadeFrames)
}

// drainEvents moves every event currently queued into the sorted pending
// list. Events are expected to arrive roughly in time order; insert keeps
// the list correct even when they don't.
func (s *Sampler) drainEvents() {
	for {
		ev, ok := s.events.TryPop()
		if !ok {
			return
		}
		s.insertPending(ev)
	}
}

func (s *Sampler) insertPending(ev Event) {
	if len(s.pending) >= pendingCapacity {
		return
	}

	i := 0
	for i < len(s.pending) && !s.pending[i].Time.After(ev.Time) {
		i++
	}
	s.pending = append(s.pending, Event{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = ev
}
