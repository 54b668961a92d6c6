// Package timestamp provides sample-accurate time arithmetic shared by the
// graph scheduler and its DSP nodes.
package timestamp

import "math"

// Timestamp is a rational point in time, held as seconds for precision
// independent of any one sample rate. Conversions to/from a sample count at
// a given rate are explicit.
type Timestamp struct {
	seconds float64
}

// Zero is the timestamp at the start of the transport.
var Zero = Timestamp{}

// FromSeconds builds a Timestamp directly from a second count.
func FromSeconds(seconds float64) Timestamp {
	return Timestamp{seconds: seconds}
}

// FromSamples builds a Timestamp from a sample count at the given rate.
func FromSamples(samples float64, sampleRate float64) Timestamp {
	return Timestamp{seconds: samples / sampleRate}
}

// Seconds returns the timestamp as a second count.
func (t Timestamp) Seconds() float64 {
	return t.seconds
}

// Samples converts the timestamp to a sample count at the given rate,
// rounded to the nearest integer.
func (t Timestamp) Samples(sampleRate float64) float64 {
	return math.Round(t.seconds * sampleRate)
}

// Add returns t advanced by the given number of seconds.
func (t Timestamp) Add(seconds float64) Timestamp {
	return Timestamp{seconds: t.seconds + seconds}
}

// AddSamples returns t advanced by numSamples samples at the given rate.
func (t Timestamp) AddSamples(numSamples int, sampleRate float64) Timestamp {
	return Timestamp{seconds: t.seconds + float64(numSamples)/sampleRate}
}

// Sub returns the duration in seconds between t and other (t - other).
func (t Timestamp) Sub(other Timestamp) float64 {
	return t.seconds - other.seconds
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.seconds < other.seconds
}

// After reports whether t is strictly later than other.
func (t Timestamp) After(other Timestamp) bool {
	return t.seconds > other.seconds
}

// Max returns the later of two timestamps.
func Max(a, b Timestamp) Timestamp {
	if a.After(b) {
		return a
	}
	return b
}
