package reactive

import "sync/atomic"

// globalIDCounter is the source of unique ids for every reactive primitive
// (signals, derived signals, effects, scopes).
var globalIDCounter uint64

// nextID returns the next unique id. Ids are monotonically increasing and
// never reused, so they double as insertion-order tie-breakers.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
