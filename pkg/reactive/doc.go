// Package reactive implements a fine-grained reactivity runtime: a push-pull
// dependency graph of signals, lazily-memoised deriveds, and effects, with
// microtask-batched scheduling, nested effect scopes, and a speculative
// "fork" overlay.
//
// # Core types
//
// Signal[T] is a reactive value cell:
//
//	count := NewSignal(0)
//	value := count.Get()   // read; tracks the current reaction
//	count.Set(5)           // write; propagates if changed
//	count.Update(func(n int) int { return n + 1 })
//
// Derived[T] is a memoised, lazily-evaluated projection:
//
//	doubled := NewDerived(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // recomputes only if a dependency changed
//
// CreateEffect runs a side-effecting reader that re-runs when a dependency
// changes:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return func() { /* teardown */ }
//	})
//
// Root creates a disconnected scope whose effects can be torn down together:
//
//	dispose := Root(func() {
//	    CreateEffect(func() Cleanup { return nil })
//	})
//	defer dispose()
//
// # Scheduling
//
// Signal writes never run effects synchronously. The first write that makes
// the effect queue non-empty schedules a drain (by default on a fresh
// goroutine, via SetMicrotaskScheduler); Flush drains it immediately and
// deterministically, which is what tests and hosts with their own event loop
// should call.
//
// # Forks
//
// Fork captures writes made during a speculative run into a private
// overlay instead of touching real node storage. The resulting ForkHandle
// can commit those writes for real (Apply) or be re-entered to inspect
// further speculative state (With).
//
// # Concurrency
//
// This package is single-threaded: the reaction stack, effect queue, and
// fork overlays are ordinary package-level variables, not synchronized
// storage. A host driving the graph from multiple goroutines must serialize
// access itself — through a lock, or by only ever calling into this package
// from one goroutine and using the scheduling hook above to bounce work back
// onto it.
package reactive
