package engine

import (
	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/framework/queue"
	"github.com/audiograph/engine/pkg/timestamp"
)

// maxBlockFrames bounds how many frames Processor.Render hands the
// scheduler at once; the audio callback's own block may be larger, in
// which case Render slices it into chunks this size or smaller so no
// single DspGraph.Process call processes an unbounded span.
const maxBlockFrames = 512

// Processor is the audio thread's entry point: one call to Render per audio
// callback. It drains pending commands, then - if started - renders the
// graph into output in bounded-size chunks, advancing the sample clock and
// periodically notifying the control thread of playback position.
type Processor struct {
	dspGraph *DspGraph
	commands *queue.Queue[Command]
	gc       *queue.Queue[*nodeHandle]

	notify *queue.Queue[Notification]

	started        bool
	sampleRate     float64
	samplePosition int64

	notifyIntervalSamples int64
	samplesSinceNotify    int64
}

// NewProcessor wires a scheduler to its command and garbage queues.
// notifyHz is how often a Position notification is emitted while rendering;
// 0 disables it. 30Hz is a reasonable default for UI playhead updates.
func NewProcessor(dspGraph *DspGraph, commands *queue.Queue[Command], gc *queue.Queue[*nodeHandle], notify *queue.Queue[Notification], sampleRate float64, notifyHz float64) *Processor {
	interval := int64(0)
	if notifyHz > 0 {
		interval = int64(sampleRate / notifyHz)
	}
	return &Processor{
		dspGraph:              dspGraph,
		commands:              commands,
		gc:                    gc,
		notify:                notify,
		sampleRate:            sampleRate,
		notifyIntervalSamples: interval,
	}
}

// Render fills output with one audio callback's worth of samples.
func (p *Processor) Render(output buffer.AudioBuffer) {
	output.Clear()

	for {
		cmd, ok := p.commands.TryPop()
		if !ok {
			break
		}
		p.handle(cmd)
	}

	if !p.started {
		return
	}

	// Chunks are also capped at the scheduler pool's frame capacity, the
	// most frames one DspGraph.Process call renders.
	chunkLimit := max(min(maxBlockFrames, p.dspGraph.pool.MaxFrames()), 1)

	total := output.NumFrames()
	for offset := 0; offset < total; {
		chunk := total - offset
		if chunk > chunkLimit {
			chunk = chunkLimit
		}

		slice := buffer.NewSlice(output, offset, chunk)
		startTime := timestamp.FromSamples(float64(p.samplePosition), p.sampleRate)
		p.dspGraph.Process(slice, startTime)

		p.samplePosition += int64(chunk)
		offset += chunk

		p.samplesSinceNotify += int64(chunk)
		if p.notifyIntervalSamples > 0 && p.samplesSinceNotify >= p.notifyIntervalSamples {
			p.samplesSinceNotify -= p.notifyIntervalSamples
			p.notify.TryPush(Position{Time: timestamp.FromSamples(float64(p.samplePosition), p.sampleRate)})
		}
	}
}

func (p *Processor) handle(cmd Command) {
	g := p.dspGraph.Graph()

	switch c := cmd.(type) {
	case Start:
		p.started = true
	case Stop:
		p.started = false
	case AddDsp:
		g.AddNode(c.Dsp)
	case RemoveDsp:
		if node, ok := g.Node(c.NodeId); ok {
			g.RemoveNode(c.NodeId)
			p.gc.TryPush(&nodeHandle{dsp: node})
		}
	case SetParameterValue:
		node, ok := g.Node(c.NodeId)
		if !ok {
			break
		}
		parameter, ok := node.Parameters.Get(c.Param)
		if !ok {
			break
		}
		switch c.Kind {
		case param.SetAtTime:
			parameter.SetAtTime(c.Time, c.Value)
		case param.LinearRampTo:
			parameter.LinearRampTo(c.Time, c.Value)
		}
	case AddConnection:
		g.AddConnection(c.From, c.To)
	case RemoveConnection:
		g.RemoveConnection(c.From, c.To)
	case ConnectToOutput:
		g.ConnectToOutput(c.NodeId)
	}
}
