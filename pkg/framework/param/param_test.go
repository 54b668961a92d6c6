package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

func TestInitialValueBeforeAnyEvent(t *testing.T) {
	p := New(440.0)
	assert.Equal(t, 440.0, p.ValueAt(timestamp.Zero))
}

func TestStepHoldsFlat(t *testing.T) {
	p := New(0.0)
	p.SetAtTime(timestamp.FromSeconds(1.0), 0.5)

	assert.Equal(t, 0.5, p.ValueAt(timestamp.FromSeconds(1.0)), "at the step")
	assert.Equal(t, 0.5, p.ValueAt(timestamp.FromSeconds(5.0)), "after the step")
}

func TestRampInterpolatesLinearly(t *testing.T) {
	p := New(0.0)
	p.SetAtTime(timestamp.FromSeconds(0.0), 0.0)
	p.LinearRampTo(timestamp.FromSeconds(1.0), 1.0)

	assert.InDelta(t, 0.5, p.ValueAt(timestamp.FromSeconds(0.5)), 0.001)
	assert.Equal(t, 1.0, p.ValueAt(timestamp.FromSeconds(1.0)), "at the ramp's end")
}

func TestStepAfterRampStopsInterpolation(t *testing.T) {
	p := New(0.0)
	p.SetAtTime(timestamp.FromSeconds(0.0), 0.0)
	p.LinearRampTo(timestamp.FromSeconds(1.0), 1.0)
	p.SetAtTime(timestamp.FromSeconds(2.0), 0.2)

	// Between the ramp's arrival and the following step, value holds flat
	// at the ramp's target rather than continuing to interpolate toward
	// the step.
	assert.Equal(t, 1.0, p.ValueAt(timestamp.FromSeconds(1.5)))
}

func TestRegistryMissingParameterIsReportedNotPanicked(t *testing.T) {
	r := NewRegistry()
	_, ok := r.ValueAt(id.Generate(), timestamp.Zero)
	assert.False(t, ok, "expected ValueAt to report ok=false for an unregistered parameter")
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	freqId := id.Generate()
	r.Register(freqId, 220.0)

	got, ok := r.ValueAt(freqId, timestamp.Zero)
	require.True(t, ok, "expected registered parameter to be found")
	assert.Equal(t, 220.0, got)
}

func TestEventsInsertedOutOfOrder(t *testing.T) {
	p := New(0.0)
	p.SetAtTime(timestamp.FromSeconds(2.0), 2.0)
	p.SetAtTime(timestamp.FromSeconds(1.0), 1.0)

	assert.Equal(t, 1.0, p.ValueAt(timestamp.FromSeconds(1.5)), "events scheduled out of order")
	assert.Equal(t, 2.0, p.ValueAt(timestamp.FromSeconds(2.5)))
}
