package core

import "testing"

func mountCounter(t *testing.T, owner *BuildOwner, state *testState) *StatefulElement {
	t.Helper()
	element := NewStatefulElement(testStatefulWidget{
		createStateFn: func() State { return state },
	}, owner)
	element.Mount(nil, nil)
	return element
}

func TestSetState_SchedulesRebuild(t *testing.T) {
	owner := NewBuildOwner()
	builds := 0
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget {
		builds++
		return nil
	}
	mountCounter(t, owner, state)

	state.SetState(func() {})
	owner.FlushBuild()

	if builds != 2 {
		t.Errorf("expected 2 builds (mount + SetState), got %d", builds)
	}
}

func TestSetState_AfterDisposeIsNoOp(t *testing.T) {
	owner := NewBuildOwner()
	state := &testState{}
	element := mountCounter(t, owner, state)

	element.Unmount()
	ran := false
	state.SetState(func() { ran = true })

	if ran {
		t.Error("expected the mutation not to run after disposal")
	}
	if owner.NeedsWork() {
		t.Error("expected no scheduled work after a post-dispose SetState")
	}
}

func TestOnDispose_RunsInReverseOrder(t *testing.T) {
	var order []int
	state := &testState{}
	state.OnDispose(func() { order = append(order, 1) })
	state.OnDispose(func() { order = append(order, 2) })
	state.OnDispose(func() { order = append(order, 3) })

	state.Dispose()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("expected LIFO disposer order, got %v", order)
	}
}

func TestOnDispose_UnregisterPreventsRun(t *testing.T) {
	ran := false
	state := &testState{}
	unregister := state.OnDispose(func() { ran = true })

	unregister()
	state.Dispose()

	if ran {
		t.Error("expected an unregistered disposer not to run")
	}
}

func TestOnDispose_AfterDisposeRunsImmediately(t *testing.T) {
	state := &testState{}
	state.Dispose()

	ran := false
	state.OnDispose(func() { ran = true })

	if !ran {
		t.Error("expected registration on a disposed state to run immediately")
	}
}

func TestDispose_RunsDisposersOnce(t *testing.T) {
	runs := 0
	state := &testState{}
	state.OnDispose(func() { runs++ })

	state.Dispose()
	state.Dispose()

	if runs != 1 {
		t.Errorf("expected disposers to run once, got %d", runs)
	}
	if !state.IsDisposed() {
		t.Error("expected IsDisposed to report true")
	}
}

func TestUseController_DisposedWithState(t *testing.T) {
	controller := &fakeController{}
	state := &testState{}
	got := UseController(state, func() *fakeController { return controller })

	if got != controller {
		t.Fatal("expected UseController to return the created controller")
	}
	state.Dispose()
	if controller.disposed != 1 {
		t.Errorf("expected controller disposed once, got %d", controller.disposed)
	}
}

type fakeController struct {
	disposed int
}

func (c *fakeController) Dispose() { c.disposed++ }

func TestUseObservable_RebuildsOnChange(t *testing.T) {
	owner := NewBuildOwner()
	obs := NewObservable(1)
	builds := 0
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget {
		builds++
		return nil
	}
	element := NewStatefulElement(testStatefulWidget{
		createStateFn: func() State {
			UseObservable(state, obs)
			return state
		},
	}, owner)
	element.Mount(nil, nil)

	obs.Set(2)
	owner.FlushBuild()
	if builds != 2 {
		t.Errorf("expected rebuild after Set, got %d builds", builds)
	}

	// Disposal unsubscribes; further sets schedule nothing.
	element.Unmount()
	obs.Set(3)
	if owner.NeedsWork() {
		t.Error("expected no work after the subscriber was disposed")
	}
}

func TestUseListenable_RebuildsOnNotify(t *testing.T) {
	owner := NewBuildOwner()
	notifier := NewNotifier()
	builds := 0
	state := &testState{}
	state.buildFn = func(ctx BuildContext) Widget {
		builds++
		return nil
	}
	element := NewStatefulElement(testStatefulWidget{
		createStateFn: func() State {
			UseListenable(state, notifier)
			return state
		},
	}, owner)
	element.Mount(nil, nil)

	notifier.Notify()
	owner.FlushBuild()
	if builds != 2 {
		t.Errorf("expected rebuild after Notify, got %d builds", builds)
	}

	// Disposal unsubscribes; further notifications schedule nothing.
	element.Unmount()
	notifier.Notify()
	if owner.NeedsWork() {
		t.Error("expected no work after the subscriber was disposed")
	}
}

func TestNotifier_ListenersAndUnsubscribe(t *testing.T) {
	notifier := NewNotifier()
	var first, second int
	unsubscribe := notifier.AddListener(func() { first++ })
	notifier.AddListener(func() { second++ })

	notifier.Notify()
	if first != 1 || second != 1 {
		t.Errorf("expected both listeners notified once, got %d and %d", first, second)
	}

	unsubscribe()
	notifier.Notify()
	if first != 1 {
		t.Errorf("expected the unsubscribed listener to stay at 1, got %d", first)
	}
	if second != 2 {
		t.Errorf("expected the remaining listener notified again, got %d", second)
	}
}

func TestManaged_UpdateTriggersRebuild(t *testing.T) {
	owner := NewBuildOwner()
	state := &testState{}
	mountCounter(t, owner, state)
	count := NewManaged(state, 10)

	count.Update(func(v int) int { return v + 5 })

	if count.Value() != 15 {
		t.Errorf("expected 15, got %d", count.Value())
	}
	if !owner.NeedsWork() {
		t.Error("expected Update to schedule a rebuild")
	}
}
