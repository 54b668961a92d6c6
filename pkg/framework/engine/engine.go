package engine

import (
	"github.com/rs/zerolog"

	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/framework/queue"
	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

const (
	defaultCommandQueueCapacity      = 256
	defaultNotificationQueueCapacity = 64
	defaultGcQueueCapacity           = 64
	defaultNotifyHz                  = 30.0
)

// Engine is the control-thread handle to a running graph: every mutating
// call here enqueues a command for the audio thread rather than touching
// the graph directly, and PollNotifications drains whatever the audio
// thread has reported back since the last call.
type Engine struct {
	dspGraph      *DspGraph
	processor     *Processor
	commands      *queue.Queue[Command]
	notifications *queue.Queue[Notification]
	gcQueue       *queue.Queue[*nodeHandle]
	gc            *GarbageCollector
	log           zerolog.Logger
}

// New builds an engine rendering at sampleRate, with a scratch pool sized
// for up to maxNodes concurrent nodes rendering blocks up to maxFrames x
// maxChannels.
func New(sampleRate float64, maxNodes, maxFrames, maxChannels int, logger zerolog.Logger) *Engine {
	g := graph.New()
	dspGraph := NewDspGraph(g, maxNodes, maxFrames, maxChannels, sampleRate)

	commands := queue.New[Command](defaultCommandQueueCapacity)
	notifications := queue.New[Notification](defaultNotificationQueueCapacity)
	gcQueue := queue.New[*nodeHandle](defaultGcQueueCapacity)

	processor := NewProcessor(dspGraph, commands, gcQueue, notifications, sampleRate, defaultNotifyHz)

	e := &Engine{
		dspGraph:      dspGraph,
		processor:     processor,
		commands:      commands,
		notifications: notifications,
		gcQueue:       gcQueue,
		log:           logger,
	}
	e.gc = NewGarbageCollector(gcQueue, func(d *graph.Dsp) {
		e.log.Debug().Str("node", d.Id.String()).Msg("disposed retired dsp node")
	})
	return e
}

// Processor returns the audio-thread entry point; the host's audio callback
// calls Render on it directly, never on the Engine itself.
func (e *Engine) Processor() *Processor { return e.processor }

// Start begins rendering.
func (e *Engine) Start() { e.send(Start{}) }

// Stop halts rendering without tearing down the graph.
func (e *Engine) Stop() { e.send(Stop{}) }

// AddDsp schedules dsp's insertion into the graph.
func (e *Engine) AddDsp(dsp *graph.Dsp) { e.send(AddDsp{Dsp: dsp}) }

// RemoveDsp schedules nodeId's removal; the node is retired to the garbage
// collector once the audio thread processes the command.
func (e *Engine) RemoveDsp(nodeId id.Id) { e.send(RemoveDsp{NodeId: nodeId}) }

// SetParameterAtTime schedules an instantaneous jump of paramId's value.
func (e *Engine) SetParameterAtTime(nodeId, paramId id.Id, t timestamp.Timestamp, value float64) {
	e.send(SetParameterValue{NodeId: nodeId, Param: paramId, Kind: param.SetAtTime, Time: t, Value: value})
}

// RampParameterTo schedules a linear ramp of paramId arriving at value at t.
func (e *Engine) RampParameterTo(nodeId, paramId id.Id, t timestamp.Timestamp, value float64) {
	e.send(SetParameterValue{NodeId: nodeId, Param: paramId, Kind: param.LinearRampTo, Time: t, Value: value})
}

// AddConnection schedules routing from's output into to's input.
func (e *Engine) AddConnection(from, to id.Id) { e.send(AddConnection{From: from, To: to}) }

// RemoveConnection schedules removing one from->to connection.
func (e *Engine) RemoveConnection(from, to id.Id) { e.send(RemoveConnection{From: from, To: to}) }

// ConnectToOutput schedules routing nodeId to the external output.
func (e *Engine) ConnectToOutput(nodeId id.Id) { e.send(ConnectToOutput{NodeId: nodeId}) }

func (e *Engine) send(cmd Command) {
	if !e.commands.TryPush(cmd) {
		e.log.Warn().Type("command", cmd).Msg("command queue full, dropping command")
	}
}

// PollNotifications drains and returns every notification the audio thread
// has emitted since the last call.
func (e *Engine) PollNotifications() []Notification {
	var out []Notification
	for {
		n, ok := e.notifications.TryPop()
		if !ok {
			break
		}
		out = append(out, n)
	}
	return out
}

// CollectGarbage disposes every node retired since the last call. Intended
// to run periodically (e.g. on a UI timer) off the audio thread.
func (e *Engine) CollectGarbage() int {
	return e.gc.Collect()
}
