package reactive

// Effect is an impure reaction: it runs once immediately on creation and
// again whenever a source it read becomes dirty. Effects nest — one effect's
// body may create others — forming the effect tree walked by teardown and
// by the scheduler's ordering rule.
type Effect struct {
	depSet

	id    uint64
	flags flags
	fn    func() Cleanup

	// teardowns accumulates every cleanup registered for the current run:
	// any OnCleanup registrations made while the body ran, in registration
	// order, followed by the body's own return value (if callable).
	teardowns []Cleanup

	parent reaction

	// prev/next link this effect into its parent's child list when the
	// parent is itself an Effect (invariant 6).
	prev, next *Effect
	// head/tail are this effect's own children, when it is the parent.
	head, tail *Effect

	hasRootIndex bool
	rootIndex    uint64

	disposed bool
}

func (e *Effect) nodeID() uint64           { return e.id }
func (e *Effect) nodeFlags() flags         { return e.flags }
func (e *Effect) reactionParent() reaction { return e.parent }
func (e *Effect) isDerivedReaction() bool  { return false }
func (e *Effect) isRootReaction() bool     { return e.flags.has(flagRoot) }
func (e *Effect) hasSubscribers() bool     { return false }
func (e *Effect) markMaybeDirty()          {}

// recompute is never called on an Effect by the propagator (only Deriveds
// are eagerly recomputed during mark_dirty); it exists to satisfy the
// reaction interface.
func (e *Effect) recompute() bool { return false }

func (e *Effect) addDep(s source) { e.depSet.addDep(s) }
func (e *Effect) clearDeps()      { e.depSet.clearDeps(e) }

func (e *Effect) linkChildEffect(c *Effect) {
	c.prev = e.tail
	c.next = nil
	if e.tail != nil {
		e.tail.next = c
	} else {
		e.head = c
	}
	e.tail = c
}

func (e *Effect) unlinkChildEffect(c *Effect) {
	if c.prev != nil {
		c.prev.next = c.next
	} else if e.head == c {
		e.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else if e.tail == c {
		e.tail = c.prev
	}
	c.prev, c.next = nil, nil
}

func (e *Effect) childPosition(child reaction) int {
	idx := 0
	for c := e.head; c != nil; c = c.next {
		if c.nodeID() == child.nodeID() {
			return idx
		}
		idx++
	}
	return -1
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 { return e.id }

// DepCount returns the number of sources this effect read during its last
// run. Read-only, for introspection tooling.
func (e *Effect) DepCount() int { return len(e.deps) }

// Children returns a snapshot of this effect's child effects, in creation
// order. Read-only, for introspection tooling (pkg/reactivedebug's tree
// dump).
func (e *Effect) Children() []*Effect {
	out := make([]*Effect, 0)
	for c := e.head; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Disposed reports whether this effect has been torn down for good.
func (e *Effect) Disposed() bool { return e.disposed }

// newEffect implements create_effect (§4.6). disconnected corresponds to the
// DISCONNECTED flag (root scopes and any other intentionally detached
// effect); isRoot additionally marks it as a root scope, which — per the
// dependency tracker's read-path rule — never itself tracks reads.
func newEffect(fn func() Cleanup, disconnected, isRoot bool) *Effect {
	var parent reaction
	if !disconnected {
		parent = currentReaction()
	}

	e := &Effect{id: nextID(), fn: fn, parent: parent}
	if disconnected {
		e.flags |= flagDisconnected
	}
	if isRoot {
		e.flags |= flagRoot
	}
	if parent == nil {
		e.rootIndex = nextRootIndex()
		e.hasRootIndex = true
	}

	pushReaction(e)
	cleanup := func() (c Cleanup) {
		defer popReaction()
		c = e.fn()
		return
	}()
	if cleanup != nil {
		e.teardowns = append(e.teardowns, cleanup)
	}

	if parent != nil {
		parent.linkChildEffect(e)
	}
	return e
}

// CreateEffect creates and immediately runs an effect. The effect re-runs
// whenever a signal or derived it read during its last run becomes dirty.
// If fn returns a non-nil Cleanup, it runs before the next re-run and when
// the effect is torn down.
func CreateEffect(fn func() Cleanup) *Effect {
	return newEffect(fn, false, false)
}

// Root creates a disconnected scope: effects created inside fn are children
// of this scope rather than of whatever reaction is currently running, and
// none of fn's own top-level reads are tracked. Root returns a disposer that
// tears the whole scope down; calling it more than once is a no-op.
func Root(fn func()) func() {
	e := newEffect(func() Cleanup {
		fn()
		return nil
	}, true, true)
	return func() { disposeEffect(e) }
}

// OnMount creates an effect that runs fn once, immediately, and never again
// — sugar for CreateEffect when fn reads no signals.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		fn()
		return nil
	})
}

// OnUnmount registers fn to run when the effect currently running is torn
// down for good — sugar for OnCleanup under the name most callers reach for
// when the intent is "run this on unmount" rather than "run this on re-run".
func OnUnmount(fn func()) {
	OnCleanup(fn)
}

// OnUpdate creates an effect whose deps closure establishes dependencies on
// every run, but whose callback is skipped on the first (mount) run and
// invoked on every run after that.
func OnUpdate(deps func(), callback func()) {
	first := true
	CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}

// OnCleanup registers an additional teardown callback on the effect
// currently running. Multiple registrations accumulate and all run, in
// registration order, when the effect tears down or re-runs.
func OnCleanup(fn func()) {
	r := currentReaction()
	e, ok := r.(*Effect)
	if !ok {
		panic("reactive: OnCleanup called outside a running effect")
	}
	e.teardowns = append(e.teardowns, fn)
}

// teardownEffect tears e down in preparation for either a re-run or a full
// disposal: children are disposed recursively, e's own dep edges are
// unlinked, and every accumulated teardown callback runs, in order, with
// tracking disabled (a sentinel frame on the reaction stack) so cleanup code
// neither tracks reads nor attributes writes to any reaction. It leaves e
// linked into its own parent — callers that are disposing e for good follow
// up with the unlink step themselves (see disposeEffect).
//
// Per §7's exception-in-teardown handling, a panicking teardown callback
// does not stop its siblings (here, or in a child's own teardown) from
// running: teardownEffect recovers each callback individually and returns
// the first panic it saw instead of re-raising immediately, so a caller
// tearing down many effects (the scheduler drain, or a Root disposing a
// whole subtree) can finish the rest of the work before re-panicking once.
func teardownEffect(e *Effect) any {
	var firstPanic any
	record := func(p any) {
		if firstPanic == nil {
			firstPanic = p
		}
	}

	for c := e.head; c != nil; {
		next := c.next
		if p := teardownEffect(c); p != nil {
			record(p)
		}
		c.disposed = true
		c.prev, c.next = nil, nil
		c = next
	}
	e.head, e.tail = nil, nil

	e.clearDeps()

	teardowns := e.teardowns
	e.teardowns = nil
	if len(teardowns) > 0 {
		pushSentinel()
		for _, cb := range teardowns {
			func() {
				defer func() {
					if r := recover(); r != nil {
						record(r)
					}
				}()
				cb()
			}()
		}
		popReaction()
	}

	e.flags &^= flagDirty
	return firstPanic
}

// disposeEffect permanently tears e down and detaches it from its parent's
// child list (if any), leaving sibling order of the remaining children
// untouched.
func disposeEffect(e *Effect) {
	if e.disposed {
		return
	}
	p := teardownEffect(e)
	e.disposed = true
	if e.parent != nil {
		e.parent.unlinkChildEffect(e)
	}
	e.prev, e.next = nil, nil
	if p != nil {
		panic(p)
	}
}
