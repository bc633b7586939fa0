package reactive

// forkMap is the shadow overlay a fork writes into: node -> speculative
// value. Keyed by the type-erased source interface so a single map can hold
// both Signal and Derived entries.
type forkMap map[source]any

// activeFork is the overlay the read/write paths consult while a fork's fn
// (or a With callback) is running. applyingFork is set only while a
// ForkHandle commits its captured writes, and exists solely so mark_dirty
// can suppress a redundant recompute of a derived that the fork already has
// a final value for (§4.4 step 2, §4.7).
var (
	activeFork   *forkMap
	applyingFork *forkMap
)

// ForkHandle is returned by Fork. Its captured writes can be committed
// (Apply) or replayed for inspection (With, a free function since Go methods
// can't be generic).
type ForkHandle struct {
	values *forkMap
}

// Fork runs fn with a fresh, empty speculative overlay: writes performed by
// fn land in the overlay rather than real node storage, and reads prefer the
// overlay. No effect ever runs because of a write made under a fork.
func Fork(fn func()) *ForkHandle {
	prev := activeFork
	m := make(forkMap)
	activeFork = &m
	func() {
		defer func() { activeFork = prev }()
		fn()
	}()
	return &ForkHandle{values: &m}
}

// Apply commits every value the fork captured, through each node's normal
// write path — ordinary propagation runs, including scheduling any effects
// that observe the change (unlike the speculative run itself).
func (h *ForkHandle) Apply() {
	applyingFork = h.values
	defer func() { applyingFork = nil }()
	for node, v := range *h.values {
		node.applyForkValue(v)
	}
}

// With re-enters a clone of the fork's captured overlay and runs g against
// it: reads inside g see the speculative values, and writes g performs land
// in the clone, leaving the original fork's captured values untouched.
func With[T any](h *ForkHandle, g func() T) T {
	prev := activeFork
	clone := make(forkMap, len(*h.values))
	for k, v := range *h.values {
		clone[k] = v
	}
	activeFork = &clone
	defer func() { activeFork = prev }()
	return g()
}
