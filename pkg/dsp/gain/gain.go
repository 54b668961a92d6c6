// Package gain implements a single-parameter gain node: it scales whatever
// input the scheduler has already summed for it, which is what makes it
// double as a mixer at the convergence point of a fan-out.
package gain

import (
	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

// Gain multiplies its (already mixed-down) input by a per-sample automated
// gain value. With no input connected, it produces silence - there is
// nothing to scale.
type Gain struct {
	GainParam id.Id
}

// New creates a gain node reading its gain from gainParam.
func New(gainParam id.Id) *Gain {
	return &Gain{GainParam: gainParam}
}

// ProcessAudio scales input by GainParam's value at each frame, writing the
// result to output.
func (g *Gain) ProcessAudio(input, output buffer.AudioBuffer, startTime timestamp.Timestamp, parameters *param.Registry) {
	if input == nil {
		return
	}

	sampleRate := output.SampleRate()
	numFrames := output.NumFrames()
	numChannels := output.NumChannels()

	for frame := 0; frame < numFrames; frame++ {
		frameTime := startTime.Add(float64(frame) / sampleRate)

		value, ok := parameters.ValueAt(g.GainParam, frameTime)
		if !ok {
			continue
		}

		for ch := 0; ch < numChannels; ch++ {
			loc := buffer.SampleLocation{Channel: ch, Frame: frame}
			output.SetSample(loc, input.GetSample(loc)*float32(value))
		}
	}
}
