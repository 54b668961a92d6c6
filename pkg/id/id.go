// Package id provides the opaque handle type used to name graph nodes and
// parameters throughout the engine.
package id

import (
	"strconv"
	"sync/atomic"
)

// Id is an opaque handle, monotonically generated from a process-wide
// counter. Equality and hashing are value-based; ids are never reused.
type Id uint64

var next uint64

// Generate returns a fresh Id, distinct from every Id generated before it
// in this process.
func Generate() Id {
	return Id(atomic.AddUint64(&next, 1))
}

// String implements fmt.Stringer for log and test output.
func (i Id) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
