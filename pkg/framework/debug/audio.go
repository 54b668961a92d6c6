// Package debug provides the audio-side error-handling discipline described
// in the engine's design: failures that would require allocation, panic, or
// blocking are bugs, not runtime conditions. Assert catches them in debug
// builds; callers still degrade to silence in release builds regardless of
// whether Assert panics.
package debug

import (
	"math"
	"os"
)

// audioThreadAsserts, when true, makes Assert panic on a failed condition
// instead of silently returning. Debug builds of a host application should
// set this to true; it defaults to on unless NDEBUG is set, mirroring the
// "assert in debug, degrade to silence in release" split in the spec.
var audioThreadAsserts = os.Getenv("NDEBUG") == ""

// Assert panics with msg if condition is false and assertions are enabled.
// It must never be called from a path that could itself allocate when the
// assertion holds - only the panic path allocates, and a failed assertion is
// already a programming bug.
func Assert(condition bool, msg string) {
	if !condition && audioThreadAsserts {
		panic("audiograph: " + msg)
	}
}

// DisableAssertions turns off audio-thread assertions, e.g. for release
// builds that prefer to degrade to silence over panicking the audio thread.
func DisableAssertions() {
	audioThreadAsserts = false
}

// AudioAnalyzer inspects rendered audio for the conditions the engine's
// error-handling policy treats as bugs: NaN samples, clipping, DC offset.
type AudioAnalyzer struct {
	ClippingThreshold float32
	DCThreshold       float32
	SilenceThreshold  float32
}

// NewAudioAnalyzer creates an analyzer with the default thresholds.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// AnalysisResult summarizes one channel's worth of rendered samples.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	HasNaN         bool
	NaNCount       int
	ZeroCrossings  int
}

// Analyze performs peak/RMS/DC/clipping/NaN analysis on a single channel.
func (a *AudioAnalyzer) Analyze(samples []float32) AnalysisResult {
	var result AnalysisResult
	if len(samples) == 0 {
		return result
	}

	var sum, sumSquares, dcSum float64
	var lastSample float32

	for i, sample := range samples {
		if math.IsNaN(float64(sample)) {
			result.HasNaN = true
			result.NaNCount++
			continue
		}

		absSample := sample
		if absSample < 0 {
			absSample = -absSample
		}

		if absSample > result.Peak {
			result.Peak = absSample
		}
		if absSample >= a.ClippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		sum += float64(sample)
		sumSquares += float64(sample) * float64(sample)
		dcSum += float64(absSample)

		if i > 0 && ((lastSample < 0 && sample >= 0) || (lastSample >= 0 && sample < 0)) {
			result.ZeroCrossings++
		}
		lastSample = sample
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(len(samples))))
	result.DC = float32(sum / float64(len(samples)))
	result.Silent = result.RMS < a.SilenceThreshold

	return result
}
