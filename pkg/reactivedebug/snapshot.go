package reactivedebug

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"

	"github.com/vango-dev/reactorctl/pkg/reactive"
)

// Snapshot is a point-in-time summary of the reactive graph's size.
type Snapshot struct {
	TotalNodes int
	RootScopes int
}

// Capture reads the runtime's process-global counters. Values only ever
// grow — there is no tracking of disposed-node counts, matching the
// runtime's "no incremental GC accounting" non-goal.
func Capture() Snapshot {
	return Snapshot{
		TotalNodes: int(reactive.NodeCount()),
		RootScopes: int(reactive.RootScopeCount()),
	}
}

// Humanized renders the snapshot's counts as a short human-readable phrase,
// e.g. "128 nodes across 4 root scopes".
func (s Snapshot) Humanized() string {
	return fmt.Sprintf("%s nodes across %s root scopes",
		humanize.Comma(int64(s.TotalNodes)),
		humanize.Comma(int64(s.RootScopes)),
	)
}

// ShortHash returns an 8-hex-digit stable display hash for a node ID, short
// enough to print in a CLI table or dashboard row without the full uint64.
func ShortHash(nodeID uint64) string {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(nodeID >> (8 * i))
	}
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64(buf[:])))
}
