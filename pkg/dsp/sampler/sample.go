package sampler

// Sample is an in-memory, channel-major block of audio a Sampler voice
// plays back from. Loading sample data from disk is a concern for whatever
// constructs a Sample, not for this package.
type Sample struct {
	data       [][]float32
	sampleRate float64
}

// NewSample wraps data (channel-major: data[channel][frame]) as a playable
// sample. Every channel must have the same length.
func NewSample(data [][]float32, sampleRate float64) *Sample {
	return &Sample{data: data, sampleRate: sampleRate}
}

// NumFrames is the sample's length in frames.
func (s *Sample) NumFrames() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// NumChannels is the sample's channel count.
func (s *Sample) NumChannels() int { return len(s.data) }

// SampleRate is the rate the sample was recorded/generated at.
func (s *Sample) SampleRate() float64 { return s.sampleRate }

// At returns the sample value at (channel, frame), or 0 once frame runs past
// the end - reading off the end of a sample is normal (it's how playback
// naturally stops) rather than a bounds error.
func (s *Sample) At(channel, frame int) float32 {
	if frame < 0 || frame >= s.NumFrames() {
		return 0
	}
	if channel >= len(s.data) {
		channel = len(s.data) - 1
	}
	return s.data[channel][frame]
}
