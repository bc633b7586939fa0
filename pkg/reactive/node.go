package reactive

// flags holds the per-node bits from the data model: DIRTY, MAYBE_DIRTY,
// DERIVED, UNINITIALIZED, ROOT, DISCONNECTED. Every node variant (Signal,
// Derived, Effect) shares this header alongside its parent link.
type flags uint8

const (
	flagDirty flags = 1 << iota
	flagMaybeDirty
	flagDerived
	flagUninitialized
	flagRoot
	flagDisconnected
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

// Cleanup is a function returned by an effect body, or registered with
// OnCleanup while an effect runs, releasing resources before the effect
// re-runs or is torn down for good.
type Cleanup func()

// reaction is a node that can sit on the reaction stack and be recomputed or
// rescheduled when one of its dependencies changes: a *Derived[T] or an
// *Effect. Deriveds are also sources (§3: "Derived is both Source and
// Reaction"); Effects are not.
type reaction interface {
	nodeID() uint64
	nodeFlags() flags
	reactionParent() reaction

	isDerivedReaction() bool
	isRootReaction() bool

	// recompute re-runs a Derived's fn (update_derived, §4.3). Effects
	// implement it as a no-op; the propagator never calls it on an Effect.
	recompute() bool

	// hasSubscribers reports whether anything reads this reaction as a
	// source. Always false for Effects.
	hasSubscribers() bool

	// markMaybeDirty sets MAYBE_DIRTY without eagerly recomputing. Only
	// meaningful on a Derived; a no-op on Effect.
	markMaybeDirty()

	// addDep records that this reaction read s during its last run.
	addDep(s source)

	// clearDeps unlinks this reaction from every source it previously read.
	clearDeps()

	// childPosition returns the sibling index of child among this
	// reaction's own children, used by the scheduler's ordering rule.
	// child must actually be a child of this reaction.
	childPosition(child reaction) int

	// linkChildEffect and unlinkChildEffect attach/detach an Effect to/from
	// this reaction's children (create_effect step 3, teardown_effect).
	linkChildEffect(e *Effect)
	unlinkChildEffect(e *Effect)
}

// source is a node that can be read and tracked: a *Signal[T] or a
// *Derived[T].
type source interface {
	nodeID() uint64
	linkReaction(r reaction)
	unlinkReaction(r reaction)
	hasReactions() bool
	reactionsSnapshot() []reaction

	// applyForkValue commits a fork's captured speculative value through
	// this node's normal write path (ForkHandle.Apply, §4.7).
	applyForkValue(v any)
}

// depSet is the reverse-edge bookkeeping ("deps") shared by Derived and
// Effect: the set of sources read during the node's last run.
type depSet struct {
	deps []source
}

func (d *depSet) addDep(s source) {
	for _, existing := range d.deps {
		if existing.nodeID() == s.nodeID() {
			return
		}
	}
	d.deps = append(d.deps, s)
}

// clearDeps unlinks self from every recorded dep and empties the set. Called
// at the start of update_derived and by teardown_effect.
func (d *depSet) clearDeps(self reaction) {
	for _, s := range d.deps {
		s.unlinkReaction(self)
	}
	d.deps = d.deps[:0]
}

// reactionSet is the forward-edge bookkeeping ("reactions") shared by Signal
// and Derived: the set of reactions currently subscribed to this source.
type reactionSet struct {
	reactions []reaction
}

func (rs *reactionSet) link(r reaction) {
	for _, existing := range rs.reactions {
		if existing.nodeID() == r.nodeID() {
			return
		}
	}
	rs.reactions = append(rs.reactions, r)
}

func (rs *reactionSet) unlink(r reaction) {
	for i, existing := range rs.reactions {
		if existing.nodeID() == r.nodeID() {
			rs.reactions = append(rs.reactions[:i], rs.reactions[i+1:]...)
			return
		}
	}
}

func (rs *reactionSet) has() bool { return len(rs.reactions) > 0 }

func (rs *reactionSet) snapshot() []reaction {
	out := make([]reaction, len(rs.reactions))
	copy(out, rs.reactions)
	return out
}
