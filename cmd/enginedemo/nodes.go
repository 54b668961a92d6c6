package main

import (
	"github.com/audiograph/engine/pkg/dsp/gain"
	"github.com/audiograph/engine/pkg/dsp/oscillator"
	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/id"
)

// oscillatorNode is a thin convenience wrapper gluing an oscillator's graph
// node together with the parameter ids a caller needs to automate it. The
// framework packages never need this pairing - only a demo wiring up a
// literal topology by hand does.
type oscillatorNode struct {
	Dsp       *graph.Dsp
	Frequency id.Id
	Gain      id.Id
}

func newOscillatorNode(frequency, gainValue float64) *oscillatorNode {
	freqId := id.Generate()
	gainId := id.Generate()

	registry := param.NewRegistry()
	registry.Register(freqId, frequency)
	registry.Register(gainId, gainValue)

	osc := oscillator.New(freqId, gainId)
	dsp := graph.NewDsp(osc, registry)

	return &oscillatorNode{Dsp: dsp, Frequency: freqId, Gain: gainId}
}

// gainNode is the same convenience pairing for a gain/mixer node.
type gainNode struct {
	Dsp  *graph.Dsp
	Gain id.Id
}

func newGainNode(initial float64) *gainNode {
	gainId := id.Generate()

	registry := param.NewRegistry()
	registry.Register(gainId, initial)

	g := gain.New(gainId)
	dsp := graph.NewDsp(g, registry)

	return &gainNode{Dsp: dsp, Gain: gainId}
}
