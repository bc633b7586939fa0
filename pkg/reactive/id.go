package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for every reactive node.
var globalIDCounter uint64

// nextID returns the next unique, monotonically increasing node ID.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// globalRootIndexCounter hands out root_index values (invariant 4): assigned
// only to parentless Effects, at creation time, in creation order.
var globalRootIndexCounter uint64

func nextRootIndex() uint64 {
	return atomic.AddUint64(&globalRootIndexCounter, 1)
}

// NodeCount returns the total number of Signals, Deriveds, and Effects ever
// constructed in this process, torn down or not. Exposed read-only for
// introspection tooling (pkg/reactivedebug); the runtime itself never reads
// it back.
func NodeCount() uint64 {
	return atomic.LoadUint64(&globalIDCounter)
}

// RootScopeCount returns the total number of top-level (parentless) effects
// ever created, i.e. every call to Root plus every CreateEffect made outside
// of a running reaction.
func RootScopeCount() uint64 {
	return atomic.LoadUint64(&globalRootIndexCounter)
}
