package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopFadeFromPlayingStartsAtFullGain(t *testing.T) {
	v := voice{}
	v.startFade(0, 0) // instant start -> voicePlaying
	v.stopFade(10)

	assert.Equal(t, voiceFadingOut, v.state)
	assert.Equal(t, 10, v.fadeRemaining, "expected a full fade-out from a fully playing voice")
}

func TestStopFadeMidFadeInPreservesGainContinuity(t *testing.T) {
	v := voice{}
	v.startFade(0, 10)
	for i := 0; i < 4; i++ {
		v.advance(1000)
	}
	gainBeforeStop := v.gain()

	v.stopFade(10)

	assert.InDelta(t, float64(gainBeforeStop), float64(v.gain()), 0.01,
		"expected fade-out to continue from the fade-in's gain rather than jump")
}

func TestStopFadeAtZeroGainStopsImmediately(t *testing.T) {
	v := voice{}
	v.startFade(0, 10)
	// Gain is 0 at the very start of the fade-in.
	v.stopFade(10)

	assert.Equal(t, voiceStopped, v.state, "expected a voice with zero accumulated gain to stop outright")
}
