package buffer

// slotState is the lifecycle of one pool-owned buffer.
type slotState int

const (
	stateFree slotState = iota
	stateInUse
	stateAssigned
)

type slot[K comparable] struct {
	buf   *Owned
	state slotState
	tag   K
}

// Pool is a fixed-capacity array of pre-allocated buffers, handed out to the
// graph scheduler during a block and returned before the next one. Every
// buffer is sized for maxFrames x maxChannels at a fixed sample rate.
//
// A buffer returned via ReturnAssigned keeps its samples and is tagged with
// K; a later TakeAssigned(tag) returns that same buffer and clears the tag.
// ClearAssignments drops every tag at the end of a block without freeing the
// buffers themselves.
//
// Pool never allocates outside of New: Take/Return/TakeAssigned/
// ReturnAssigned only flip slot state. Exhaustion (Take returning false) is
// a construction-time sizing bug, not a runtime condition - callers on the
// audio thread should treat it as fatal (see pkg/framework/debug.Assert).
type Pool[K comparable] struct {
	slots       []slot[K]
	maxFrames   int
	maxChannels int
	sampleRate  float64
}

// New creates a pool of capacity buffers, each sized maxFrames x
// maxChannels at sampleRate. Capacity should be sized at construction to
// the worst case (the spec recommends >= 2x the maximum node count).
func New[K comparable](capacity, maxFrames, maxChannels int, sampleRate float64) *Pool[K] {
	p := &Pool[K]{
		slots:       make([]slot[K], capacity),
		maxFrames:   maxFrames,
		maxChannels: maxChannels,
		sampleRate:  sampleRate,
	}
	for i := range p.slots {
		p.slots[i].buf = NewOwned(maxFrames, maxChannels, sampleRate)
		p.slots[i].state = stateFree
	}
	return p
}

// MaxFrames is the per-channel capacity of every buffer in the pool.
func (p *Pool[K]) MaxFrames() int { return p.maxFrames }

// MaxChannels is the channel capacity of every buffer in the pool.
func (p *Pool[K]) MaxChannels() int { return p.maxChannels }

// TakeUnassigned returns a zeroed, untagged buffer marked in-use, or false
// if the pool is exhausted.
func (p *Pool[K]) TakeUnassigned() (*Owned, bool) {
	for i := range p.slots {
		if p.slots[i].state == stateFree {
			p.slots[i].state = stateInUse
			p.slots[i].buf.Clear()
			return p.slots[i].buf, true
		}
	}
	return nil, false
}

// Return marks buf free again. buf must have come from TakeUnassigned and
// must not currently be tagged.
func (p *Pool[K]) Return(buf *Owned) {
	for i := range p.slots {
		if p.slots[i].buf == buf {
			p.slots[i].state = stateFree
			return
		}
	}
	panic("buffer.Pool: Return called on a buffer not owned by this pool")
}

// ReturnAssigned releases buf from use but keeps it tagged with key; a later
// TakeAssigned(key) returns this same buffer, samples intact. A tagged
// buffer is not handed out by TakeUnassigned and does not count as free for
// AllFree until ClearAssignments drops the tag.
func (p *Pool[K]) ReturnAssigned(buf *Owned, key K) {
	for i := range p.slots {
		if p.slots[i].buf == buf {
			p.slots[i].state = stateAssigned
			p.slots[i].tag = key
			return
		}
	}
	panic("buffer.Pool: ReturnAssigned called on a buffer not owned by this pool")
}

// TakeAssigned returns the buffer tagged with key, if any, and detaches the
// tag. The buffer's samples are unchanged.
func (p *Pool[K]) TakeAssigned(key K) (*Owned, bool) {
	for i := range p.slots {
		if p.slots[i].state == stateAssigned && p.slots[i].tag == key {
			p.slots[i].state = stateInUse
			return p.slots[i].buf, true
		}
	}
	return nil, false
}

// PeekAssigned returns the buffer tagged with key without detaching the
// tag, letting more than one consumer read the same producer's output
// within a block - the zero-copy fan-out the scheduler relies on when a
// node has more than one downstream connection.
func (p *Pool[K]) PeekAssigned(key K) (*Owned, bool) {
	for i := range p.slots {
		if p.slots[i].state == stateAssigned && p.slots[i].tag == key {
			return p.slots[i].buf, true
		}
	}
	return nil, false
}

// ClearAssignments drops every tag, returning assigned buffers to free.
// Called once at the end of every block.
func (p *Pool[K]) ClearAssignments() {
	for i := range p.slots {
		if p.slots[i].state == stateAssigned {
			p.slots[i].state = stateFree
		}
	}
}

// AllFree reports whether every buffer in the pool is currently free - the
// postcondition the scheduler checks after every block.
func (p *Pool[K]) AllFree() bool {
	for i := range p.slots {
		if p.slots[i].state != stateFree {
			return false
		}
	}
	return true
}
