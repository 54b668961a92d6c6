package engine

import (
	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

// Command is a tagged variant: every concrete command implements isCommand
// and the audio thread dispatches on it with a type switch, the same
// pattern the control/audio boundary used for MIDI events. A closed set of
// processor kinds is exactly the case where a tagged variant beats an
// interface per method per kind.
type Command interface {
	isCommand()
}

// Start begins rendering; before the first Start, Processor.Render produces
// silence without touching the graph.
type Start struct{}

// Stop halts rendering; the graph is left intact so a later Start resumes.
type Stop struct{}

// AddDsp inserts a fully-constructed node into the graph.
type AddDsp struct {
	Dsp *graph.Dsp
}

// RemoveDsp takes a node out of the graph. The node is hazard-pointer safe
// to free only after the audio thread has moved past the block it was
// removed in, so removal hands the node to the garbage collector rather
// than freeing it inline.
type RemoveDsp struct {
	NodeId id.Id
}

// SetParameterValue schedules one automation event against a node's
// parameter.
type SetParameterValue struct {
	NodeId id.Id
	Param  id.Id
	Kind   param.Kind
	Time   timestamp.Timestamp
	Value  float64
}

// AddConnection routes From's output into To's input. Repeating the same
// pair creates a parallel, separately-summed connection.
type AddConnection struct {
	From id.Id
	To   id.Id
}

// RemoveConnection removes one instance of a From->To connection.
type RemoveConnection struct {
	From id.Id
	To   id.Id
}

// ConnectToOutput routes nodeId's output to the engine's external output
// buffer, replacing whatever was previously connected.
type ConnectToOutput struct {
	NodeId id.Id
}

func (Start) isCommand()             {}
func (Stop) isCommand()              {}
func (AddDsp) isCommand()            {}
func (RemoveDsp) isCommand()         {}
func (SetParameterValue) isCommand() {}
func (AddConnection) isCommand()     {}
func (RemoveConnection) isCommand()  {}
func (ConnectToOutput) isCommand()   {}

// Notification is a tagged variant the audio thread emits toward the
// control thread.
type Notification interface {
	isNotification()
}

// Position reports the transport time just past the most recently rendered
// frame (the start time of the next frame to render), emitted at a fixed
// rate rather than once per block.
type Position struct {
	Time timestamp.Timestamp
}

func (Position) isNotification() {}
