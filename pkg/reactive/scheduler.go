package reactive

import "sort"

// effectQueue is the process-scoped FIFO of effects pending their microtask
// run. draining guards against re-entrant/concurrent drains (Flush is
// idempotent while already running).
var (
	effectQueue []*Effect
	draining    bool

	microtaskScheduler = defaultMicrotaskScheduler
)

func defaultMicrotaskScheduler(run func()) {
	go run()
}

// SetMicrotaskScheduler overrides how the effect queue's drain is scheduled.
// The default spawns a fresh goroutine the moment a write first makes the
// queue non-empty — so the calling goroutine's own synchronous region (e.g.
// two back-to-back Set calls) still observes one coalesced drain, matching
// scenario S5. A host with its own event loop can pass a hook that posts the
// drain onto that loop instead.
func SetMicrotaskScheduler(fn func(run func())) {
	if fn == nil {
		fn = defaultMicrotaskScheduler
	}
	microtaskScheduler = fn
}

// markDirty implements the dirty propagator's write path (§4.4). N is the
// node that just changed — a Signal or a Derived.
func markDirty(n source) {
	var queuedDeriveds []reaction
	var maybeDirtyDeriveds []reaction
	var effectsToCheck []*Effect

	for _, r := range n.reactionsSnapshot() {
		if r.isDerivedReaction() {
			if applyingFork != nil {
				if sd, ok := r.(source); ok {
					if _, present := (*applyingFork)[sd]; present {
						continue
					}
				}
			}
			if r.hasSubscribers() {
				queuedDeriveds = append(queuedDeriveds, r)
			} else {
				maybeDirtyDeriveds = append(maybeDirtyDeriveds, r)
			}
			continue
		}

		if activeFork != nil {
			// Forks never run effects.
			continue
		}
		effectsToCheck = append(effectsToCheck, r.(*Effect))
	}

	for _, d := range maybeDirtyDeriveds {
		d.markMaybeDirty()
	}

	for _, d := range queuedDeriveds {
		if d.recompute() {
			markDirty(d.(source))
		}
	}

	scheduleEffects(effectsToCheck)
}

// scheduleEffects implements the effect scheduler's filter+sort+enqueue
// (§4.5) for a freshly-discovered batch of candidates.
func scheduleEffects(candidates []*Effect) {
	if len(candidates) == 0 {
		return
	}

	survivors := filterAncestors(candidates)
	sort.SliceStable(survivors, func(i, j int) bool {
		return effectLess(survivors[i], survivors[j])
	})

	wasEmpty := len(effectQueue) == 0
	appended := false
	for _, e := range survivors {
		if e.disposed || e.flags.has(flagDirty) {
			continue
		}
		e.flags |= flagDirty
		effectQueue = append(effectQueue, e)
		appended = true
	}

	if wasEmpty && appended && !draining {
		microtaskScheduler(Flush)
	}
}

// filterAncestors applies the "ancestor wins" rule: drop any candidate that
// has a non-derived ancestor which is also a candidate. Walking up stops at
// a Derived boundary — effects owned by a derived are independent units.
func filterAncestors(candidates []*Effect) []*Effect {
	inSet := make(map[uint64]bool, len(candidates))
	for _, e := range candidates {
		inSet[e.nodeID()] = true
	}

	out := make([]*Effect, 0, len(candidates))
candidate:
	for _, e := range candidates {
		for p := e.reactionParent(); p != nil; p = p.reactionParent() {
			if p.isDerivedReaction() {
				break
			}
			if inSet[p.nodeID()] {
				continue candidate
			}
		}
		out = append(out, e)
	}
	return out
}

// effectLess implements the scheduler's sort rule: tree depth ascending;
// within depth 0, root_index; within depth >= 1, document order in the
// effect tree.
func effectLess(a, b *Effect) bool {
	da, db := depthOf(a), depthOf(b)
	if da != db {
		return da < db
	}
	if da == 0 {
		return a.rootIndex < b.rootIndex
	}
	return documentOrderLess(a, b)
}

func depthOf(r reaction) int {
	depth := 0
	for p := r.reactionParent(); p != nil; p = p.reactionParent() {
		depth++
	}
	return depth
}

// documentOrderLess compares two effects that share a common ancestor by
// climbing both parent chains in lock-step and comparing sibling position at
// the first point they diverge. Two effects from completely disjoint trees
// have no common ancestor; they are ordered by node ID, a stable but
// otherwise meaningless tiebreaker.
func documentOrderLess(a, b *Effect) bool {
	achain := ancestorChain(a)
	bchain := ancestorChain(b)

	i := 0
	for i < len(achain) && i < len(bchain) && achain[i].nodeID() == bchain[i].nodeID() {
		i++
	}

	if i == 0 {
		return a.nodeID() < b.nodeID()
	}
	if i >= len(achain) || i >= len(bchain) {
		return len(achain) < len(bchain)
	}

	parent := achain[i-1]
	return parent.childPosition(achain[i]) < parent.childPosition(bchain[i])
}

// ancestorChain returns r and every ancestor of r, root-first.
func ancestorChain(r reaction) []reaction {
	var chain []reaction
	for n := r; n != nil; n = n.reactionParent() {
		chain = append(chain, n)
	}
	for l, h := 0, len(chain)-1; l < h; l, h = l+1, h-1 {
		chain[l], chain[h] = chain[h], chain[l]
	}
	return chain
}

// Flush synchronously drains the effect queue: every pending effect runs
// exactly once (§8 invariant 2) before Flush returns. It is idempotent
// (re-entrant calls, including a host calling it while one is already
// running on another goroutine that has serialized onto the graph, are a
// no-op) and safe to call from inside a running effect — any effect appended
// during the drain by a synchronous Set runs in the same pass, and no new
// microtask is scheduled while draining (§4.5).
func Flush() {
	if draining {
		return
	}
	draining = true
	defer func() { draining = false }()

	var firstPanic any
	record := func(p any) {
		if firstPanic == nil {
			firstPanic = p
		}
	}

	for len(effectQueue) > 0 {
		e := effectQueue[0]
		effectQueue = effectQueue[1:]

		e.flags &^= flagDirty
		if e.disposed {
			continue
		}

		if p := teardownEffect(e); p != nil {
			record(p)
		}
		if e.disposed {
			continue
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					record(r)
				}
			}()
			pushReaction(e)
			defer popReaction()
			cleanup := e.fn()
			if cleanup != nil {
				e.teardowns = append(e.teardowns, cleanup)
			}
		}()
	}

	if firstPanic != nil {
		panic(firstPanic)
	}
}
