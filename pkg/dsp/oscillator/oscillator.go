// Package oscillator implements a wavetable sine oscillator node: a single
// table built once at startup, read back through a phase accumulator whose
// frequency and gain are driven by per-sample parameter automation.
package oscillator

import (
	"math"

	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

// tableSize is the number of samples in one full cycle of the wavetable.
// 8192 keeps quantization distortion below audible levels for the
// frequency range a synth oscillator needs while staying cache-friendly.
const tableSize = 8192

var sineTable [tableSize]float64

func init() {
	for i := 0; i < tableSize; i++ {
		sineTable[i] = math.Sin(2 * math.Pi * float64(i) / float64(tableSize))
	}
}

// Oscillator renders a sine wave whose frequency and gain are read from a
// node's parameter registry every sample. If either parameter is missing
// from the registry - never scheduled, or removed - the oscillator
// produces silence for that sample rather than guessing a value.
type Oscillator struct {
	FrequencyParam id.Id
	GainParam      id.Id

	// phase is the accumulator's position in [0, 1); kept as float64 so it
	// doesn't drift audibly over long renders the way a float32 phase
	// would.
	phase float64
}

// New creates an oscillator reading its frequency and gain from the given
// parameter ids. The caller is responsible for registering both ids, with
// whatever initial values and automation it wants, in the registry passed
// to ProcessAudio.
func New(frequencyParam, gainParam id.Id) *Oscillator {
	return &Oscillator{FrequencyParam: frequencyParam, GainParam: gainParam}
}

// ProcessAudio fills output with one block of the oscillator's signal,
// ignoring input (the oscillator has no upstream).
func (o *Oscillator) ProcessAudio(input, output buffer.AudioBuffer, startTime timestamp.Timestamp, parameters *param.Registry) {
	sampleRate := output.SampleRate()
	numFrames := output.NumFrames()
	numChannels := output.NumChannels()

	for frame := 0; frame < numFrames; frame++ {
		frameTime := startTime.Add(float64(frame) / sampleRate)

		freq, freqOk := parameters.ValueAt(o.FrequencyParam, frameTime)
		gain, gainOk := parameters.ValueAt(o.GainParam, frameTime)
		if !freqOk || !gainOk {
			o.advancePhase(0, sampleRate)
			continue
		}

		sample := float32(lookup(o.phase) * gain)
		for ch := 0; ch < numChannels; ch++ {
			output.SetSample(buffer.SampleLocation{Channel: ch, Frame: frame}, sample)
		}

		o.advancePhase(freq, sampleRate)
	}
}

func (o *Oscillator) advancePhase(freq, sampleRate float64) {
	o.phase += freq / sampleRate
	if o.phase >= 1.0 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
}

// lookup reads the wavetable at phase in [0, 1), linearly interpolating
// between the two nearest table entries.
func lookup(phase float64) float64 {
	pos := phase * float64(tableSize)
	i0 := int(pos) % tableSize
	i1 := (i0 + 1) % tableSize
	frac := pos - math.Floor(pos)
	return sineTable[i0]*(1-frac) + sineTable[i1]*frac
}
