// Package param implements the per-sample parameter automation timeline:
// an append-only sequence of scheduled events, evaluated piecewise-linear at
// any point in time. Nodes read parameter values once per sample on the
// audio thread; only the control thread schedules events.
package param

import (
	"sort"

	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

// Kind distinguishes an instantaneous value change from a ramp toward a
// target value.
type Kind int

const (
	// SetAtTime is a step: the parameter jumps to Value at Time and holds it
	// until the next event.
	SetAtTime Kind = iota
	// LinearRampTo ramps linearly from the previous event's value up to
	// Value, arriving exactly at Time.
	LinearRampTo
)

// Event is one scheduled automation point.
type Event struct {
	Kind  Kind
	Time  timestamp.Timestamp
	Value float64
}

// Parameter holds an initial value and the automation events scheduled
// against it. Events are kept sorted by time; ValueAt evaluates the
// piecewise curve they describe.
type Parameter struct {
	initial float64
	events  []Event
}

// New creates a parameter holding initial until the first event.
func New(initial float64) *Parameter {
	return &Parameter{initial: initial}
}

// SetAtTime schedules an instantaneous jump to value at t.
func (p *Parameter) SetAtTime(t timestamp.Timestamp, value float64) {
	p.insert(Event{Kind: SetAtTime, Time: t, Value: value})
}

// LinearRampTo schedules a linear ramp arriving at value when t is reached.
// The ramp starts from the previous event's value at that event's time. If
// there is no earlier event, nothing is interpolated: the parameter holds
// its initial value until t and takes value from t on.
func (p *Parameter) LinearRampTo(t timestamp.Timestamp, value float64) {
	p.insert(Event{Kind: LinearRampTo, Time: t, Value: value})
}

// insert keeps events sorted by time; control-thread callers normally append
// in increasing time order, but inserting in place keeps ValueAt correct
// even when they don't.
func (p *Parameter) insert(e Event) {
	i := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Time.After(e.Time)
	})
	p.events = append(p.events, Event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

// ValueAt evaluates the parameter's automation curve at t.
//
// Find the latest event at or before t. With none, return the initial
// value. If it is the last event, or the event immediately after it is a
// step, the value holds flat at that event's value. Otherwise the next
// event is a ramp, and the value is linearly interpolated between the two -
// a ramp is owned by its endpoint event, not by the anchor's own kind, so a
// step anchor immediately followed by a ramp still interpolates.
func (p *Parameter) ValueAt(t timestamp.Timestamp) float64 {
	i := p.indexAtOrBefore(t)
	if i < 0 {
		return p.initial
	}

	current := p.events[i]
	if i == len(p.events)-1 {
		return current.Value
	}

	next := p.events[i+1]
	if next.Kind == SetAtTime {
		return current.Value
	}

	span := next.Time.Sub(current.Time)
	if span <= 0 {
		return next.Value
	}
	frac := t.Sub(current.Time) / span
	return current.Value + (next.Value-current.Value)*frac
}

// indexAtOrBefore returns the index of the latest event with Time <= t, or
// -1 if every event is after t (or there are none).
func (p *Parameter) indexAtOrBefore(t timestamp.Timestamp) int {
	n := sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Time.After(t)
	})
	return n - 1
}

// Registry maps parameter ids to the Parameter instances a node reads from.
// A node processor is constructed with a Registry and looks up its
// parameters by id every block; a lookup miss means the parameter was never
// registered, which realtime nodes treat as "produce silence" rather than a
// panic.
type Registry struct {
	params map[id.Id]*Parameter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{params: make(map[id.Id]*Parameter)}
}

// Register adds a new parameter with the given initial value and returns it.
func (r *Registry) Register(paramId id.Id, initial float64) *Parameter {
	p := New(initial)
	r.params[paramId] = p
	return p
}

// Get returns the parameter registered under paramId, if any.
func (r *Registry) Get(paramId id.Id) (*Parameter, bool) {
	p, ok := r.params[paramId]
	return p, ok
}

// ValueAt looks up paramId and evaluates it at t. The second return value is
// false if no such parameter was ever registered.
func (r *Registry) ValueAt(paramId id.Id, t timestamp.Timestamp) (float64, bool) {
	p, ok := r.params[paramId]
	if !ok {
		return 0, false
	}
	return p.ValueAt(t), true
}
