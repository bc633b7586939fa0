package reactive

// Derived is a memoised, lazily-evaluated projection of other nodes — both a
// Source (others can read and subscribe to it) and a Reaction (it reads
// other sources and is invalidated when they change). It never runs eagerly
// at creation; the first read computes it.
type Derived[T any] struct {
	reactionSet
	depSet

	id           uint64
	flags        flags
	parent       reaction
	value        T
	fn           func() T
	childEffects []*Effect
	equal        func(a, b T) bool
}

// NewDerived creates a lazily-evaluated memo. fn must be pure: it may read
// other signals/deriveds but must never call Set on one (doing so panics
// with *UnsafeMutationError).
func NewDerived[T any](fn func() T) *Derived[T] {
	return &Derived[T]{
		id:     nextID(),
		flags:  flagDerived | flagUninitialized,
		parent: currentReaction(),
		fn:     fn,
	}
}

// NewMemo is an alias for NewDerived matching the vocabulary memo-based code
// tends to reach for first.
func NewMemo[T any](fn func() T) *Derived[T] { return NewDerived(fn) }

func (d *Derived[T]) nodeID() uint64          { return d.id }
func (d *Derived[T]) nodeFlags() flags        { return d.flags }
func (d *Derived[T]) reactionParent() reaction { return d.parent }
func (d *Derived[T]) isDerivedReaction() bool { return true }
func (d *Derived[T]) isRootReaction() bool    { return false }
func (d *Derived[T]) hasSubscribers() bool    { return d.reactionSet.has() }
func (d *Derived[T]) markMaybeDirty()         { d.flags |= flagMaybeDirty }

func (d *Derived[T]) addDep(s source)  { d.depSet.addDep(s) }
func (d *Derived[T]) clearDeps()       { d.depSet.clearDeps(d) }

func (d *Derived[T]) linkReaction(r reaction)   { d.link(r) }
func (d *Derived[T]) unlinkReaction(r reaction) { d.unlink(r) }
func (d *Derived[T]) hasReactions() bool        { return d.has() }
func (d *Derived[T]) reactionsSnapshot() []reaction { return d.snapshot() }

// applyForkValue commits a fork's captured value directly into the derived's
// real storage, bypassing fn — the value was already computed speculatively
// during the fork, so re-running fn here would be redundant (and could
// observe other, not-yet-applied entries from the same fork out of order).
func (d *Derived[T]) applyForkValue(v any) {
	next := v.(T)
	if !d.equals(d.value, next) {
		d.value = next
		d.flags &^= flagUninitialized | flagMaybeDirty
		markDirty(d)
	}
}

func (d *Derived[T]) linkChildEffect(e *Effect) {
	d.childEffects = append(d.childEffects, e)
}

func (d *Derived[T]) unlinkChildEffect(e *Effect) {
	for i, c := range d.childEffects {
		if c == e {
			d.childEffects = append(d.childEffects[:i], d.childEffects[i+1:]...)
			return
		}
	}
}

func (d *Derived[T]) childPosition(child reaction) int {
	for i, c := range d.childEffects {
		if c.nodeID() == child.nodeID() {
			return i
		}
	}
	return -1
}

// Get returns the memo's value, tracking it as a dependency of whatever
// reaction is currently running, and recomputing first if stale (§4.2).
func (d *Derived[T]) Get() T {
	trackRead(d)
	if activeFork != nil {
		if shadow, ok := (*activeFork)[d]; ok {
			return shadow.(T)
		}
	}
	if d.flags.has(flagUninitialized) || d.flags.has(flagMaybeDirty) {
		d.recompute()
	}
	return d.value
}

// Peek returns the memo's value without tracking it, recomputing first if
// stale.
func (d *Derived[T]) Peek() T {
	if activeFork != nil {
		if shadow, ok := (*activeFork)[d]; ok {
			return shadow.(T)
		}
	}
	if d.flags.has(flagUninitialized) || d.flags.has(flagMaybeDirty) {
		d.recompute()
	}
	return d.value
}

// WithEquals configures a custom equality function for change detection.
func (d *Derived[T]) WithEquals(fn func(a, b T) bool) *Derived[T] {
	d.equal = fn
	return d
}

// ID returns the unique identifier for this derived node.
func (d *Derived[T]) ID() uint64 { return d.id }

// DepCount returns the number of sources this derived read during its last
// recompute. Read-only, for introspection tooling.
func (d *Derived[T]) DepCount() int { return len(d.deps) }

// ChildEffects returns a snapshot of the effects created during this
// derived's last recompute. Read-only, for introspection tooling.
func (d *Derived[T]) ChildEffects() []*Effect {
	out := make([]*Effect, len(d.childEffects))
	copy(out, d.childEffects)
	return out
}

func (d *Derived[T]) equals(a, b T) bool {
	if d.equal != nil {
		return d.equal(a, b)
	}
	return defaultEquals(a, b)
}

// recompute implements update_derived (§4.3). It returns whether the stored
// value changed; the dirty propagator uses that to decide whether to keep
// walking upward. If fn panics, control unwinds out of this function before
// reaching the assignment below — the previous value and flags are left
// exactly as they were, so the next read retries the computation.
func (d *Derived[T]) recompute() bool {
	var teardownPanic any
	for _, e := range d.childEffects {
		if p := teardownEffect(e); p != nil && teardownPanic == nil {
			teardownPanic = p
		}
		e.disposed = true
		e.prev, e.next = nil, nil
	}
	d.childEffects = d.childEffects[:0]
	if teardownPanic != nil {
		panic(teardownPanic)
	}
	d.clearDeps()

	wasUninitialized := d.flags.has(flagUninitialized)
	prev := d.value
	if activeFork != nil {
		if shadow, ok := (*activeFork)[d]; ok {
			prev = shadow.(T)
		}
	}

	pushReaction(d)
	result := func() (r T) {
		defer popReaction()
		r = d.fn()
		return
	}()

	d.flags &^= flagUninitialized | flagMaybeDirty

	changed := wasUninitialized || !d.equals(prev, result)
	if changed {
		if activeFork != nil {
			(*activeFork)[d] = result
		} else {
			d.value = result
		}
	}
	return changed
}
