package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	ran := false
	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			ran = true
			return nil
		})
	})
	defer dispose()

	if !ran {
		t.Error("effect should run synchronously on creation")
	}
}

func TestEffectReRunsOnDependencyChange(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	var seen int

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			seen = count.Get()
			runs++
			return nil
		})
	})
	defer dispose()

	count.Set(1)
	Flush()
	count.Set(2)
	Flush()

	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
	if seen != 2 {
		t.Errorf("expected last seen value 2, got %d", seen)
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(100)
	runs := 0

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			runs++
			if useA.Get() {
				a.Get()
			} else {
				b.Get()
			}
			return nil
		})
	})
	defer dispose()

	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	// Switch away from a: b is now the tracked dependency.
	useA.Set(false)
	Flush()
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}

	// a is no longer tracked — changing it must not trigger a re-run.
	a.Set(999)
	Flush()
	if runs != 2 {
		t.Errorf("stale dependency should not trigger a run, got %d runs", runs)
	}

	b.Set(200)
	Flush()
	if runs != 3 {
		t.Errorf("expected 3 runs after b changed, got %d", runs)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	count := NewSignal(0)
	var cleanups []int
	var bodies []int

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			v := count.Get()
			bodies = append(bodies, v)
			return func() { cleanups = append(cleanups, v) }
		})
	})
	defer dispose()

	count.Set(1)
	Flush()
	count.Set(2)
	Flush()

	if len(cleanups) != 2 || cleanups[0] != 0 || cleanups[1] != 1 {
		t.Errorf("expected cleanups [0 1], got %v", cleanups)
	}
	if len(bodies) != 3 || bodies[2] != 2 {
		t.Errorf("expected bodies to end with run for 2, got %v", bodies)
	}
}

func TestNestedEffectsTeardownWithParent(t *testing.T) {
	toggle := NewSignal(true)
	childTornDown := false
	childRuns := 0

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			if !toggle.Get() {
				return nil
			}
			CreateEffect(func() Cleanup {
				childRuns++
				return func() { childTornDown = true }
			})
			return nil
		})
	})
	defer dispose()

	if childRuns != 1 {
		t.Fatalf("expected child to run once, got %d", childRuns)
	}

	toggle.Set(false)
	Flush()

	if !childTornDown {
		t.Error("child effect should be torn down when parent re-runs without recreating it")
	}
	if childRuns != 1 {
		t.Errorf("child should not run again, got %d runs", childRuns)
	}
}

func TestRootDisposeTeardownAllEffects(t *testing.T) {
	var torn []string

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			return func() { torn = append(torn, "outer") }
		})
		CreateEffect(func() Cleanup {
			CreateEffect(func() Cleanup {
				return func() { torn = append(torn, "inner") }
			})
			return func() { torn = append(torn, "middle") }
		})
	})

	dispose()

	if len(torn) != 3 {
		t.Fatalf("expected 3 teardowns, got %v", torn)
	}
}

func TestRootDisposeIsIdempotent(t *testing.T) {
	runs := 0
	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			return func() { runs++ }
		})
	})

	dispose()
	dispose()

	if runs != 1 {
		t.Errorf("teardown should run exactly once, got %d", runs)
	}
}

func TestOnCleanupAccumulatesInOrder(t *testing.T) {
	count := NewSignal(0)
	var order []int

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			count.Get()
			OnCleanup(func() { order = append(order, 1) })
			OnCleanup(func() { order = append(order, 2) })
			return func() { order = append(order, 3) }
		})
	})
	defer dispose()

	count.Set(1)
	Flush()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected teardown order [1 2 3], got %v", order)
	}
}

func TestOnCleanupOutsideEffectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when OnCleanup is called outside an effect")
		}
	}()
	OnCleanup(func() {})
}

func TestOnMountRunsOnceRegardlessOfDependencies(t *testing.T) {
	count := NewSignal(0)
	runs := 0

	dispose := Root(func() {
		OnMount(func() {
			runs++
		})
	})
	defer dispose()

	count.Set(1)
	Flush()

	if runs != 1 {
		t.Errorf("OnMount should run exactly once, got %d", runs)
	}
}

func TestOnUpdateSkipsFirstRun(t *testing.T) {
	count := NewSignal(0)
	updates := 0

	dispose := Root(func() {
		OnUpdate(func() { count.Get() }, func() {
			updates++
		})
	})
	defer dispose()

	if updates != 0 {
		t.Fatalf("OnUpdate callback should not run on mount, got %d", updates)
	}

	count.Set(1)
	Flush()
	if updates != 1 {
		t.Errorf("expected 1 update after a change, got %d", updates)
	}

	count.Set(2)
	Flush()
	if updates != 2 {
		t.Errorf("expected 2 updates, got %d", updates)
	}
}

func TestEffectSetInsideEffectDoesNotPanic(t *testing.T) {
	count := NewSignal(0)
	ranEffectBody := false

	dispose := Root(func() {
		CreateEffect(func() Cleanup {
			count.Set(count.Get() + 1)
			ranEffectBody = true
			return nil
		})
	})
	defer dispose()

	if !ranEffectBody {
		t.Fatal("writing to a signal from inside an effect should be allowed")
	}
	if count.Peek() != 1 {
		t.Errorf("expected signal to be updated to 1, got %d", count.Peek())
	}
}
