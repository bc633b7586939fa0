package reactive

// This runtime is single-threaded per the package's explicit scope: no
// multi-threaded reads/writes of the reactive graph itself. All process-scoped
// state below is an ordinary package-level variable, not per-goroutine or
// mutex-guarded storage. A host driving the graph from multiple goroutines
// must serialize through its own lock or through the microtask boundary
// (see scheduler.go's SetMicrotaskScheduler/Flush).

// reactionStack holds the currently running reactions, innermost last. A nil
// entry is a sentinel "none" frame, pushed around teardown callbacks so that
// cleanup code neither tracks reads nor attributes writes to any reaction.
var reactionStack []reaction

// trackingEnabled is the global toggle flipped by Untrack: reads inside an
// Untrack body still return current values but register no edges, regardless
// of what is on top of the reaction stack.
var trackingEnabled = true

func pushReaction(r reaction) {
	reactionStack = append(reactionStack, r)
}

func pushSentinel() {
	reactionStack = append(reactionStack, nil)
}

func popReaction() {
	reactionStack = reactionStack[:len(reactionStack)-1]
}

func currentReaction() reaction {
	if len(reactionStack) == 0 {
		return nil
	}
	return reactionStack[len(reactionStack)-1]
}

// trackRead implements the dependency tracker's read-path step 1: if tracking
// is live and a real (non-sentinel, non-root, non-self) reaction is running,
// cross-link it to s.
func trackRead(s source) {
	if !trackingEnabled {
		return
	}
	r := currentReaction()
	if r == nil || r.isRootReaction() || r.nodeID() == s.nodeID() {
		return
	}
	r.addDep(s)
	s.linkReaction(r)
}

// Untrack runs fn with dependency tracking disabled: reads inside fn return
// current values but register no edges, even though whatever reaction is
// running keeps its place on the stack. The toggle is global, so an effect
// created or a derived evaluated inside fn registers no edges for its reads
// either while fn is running.
func Untrack[T any](fn func() T) T {
	prev := trackingEnabled
	trackingEnabled = false
	defer func() { trackingEnabled = prev }()
	return fn()
}
