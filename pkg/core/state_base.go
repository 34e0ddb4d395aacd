package core

import "sync"

// stateBase is satisfied by any struct that embeds StateBase.
// Hooks and NewManaged accept stateBase so callers can pass s directly.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// StateBase provides common functionality for stateful widget states.
// Embed this struct in your state to eliminate boilerplate.
//
// Example:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
type StateBase struct {
	element   *StatefulElement
	disposers []func()
	disposed  bool
	mu        sync.Mutex
}

// SetElement stores the element reference for triggering rebuilds.
// Called automatically by the framework during mount.
func (s *StateBase) SetElement(element *StatefulElement) {
	s.element = element
}

// Element returns the element associated with this state.
// Returns nil if the state has not yet been mounted.
func (s *StateBase) Element() *StatefulElement {
	return s.element
}

// Context returns the element as a BuildContext for inherited reads from
// callbacks. Nil before mount.
func (s *StateBase) Context() BuildContext {
	if s.element == nil {
		return nil
	}
	return s.element
}

// SetState executes the given function and schedules a rebuild.
// Safe to call after disposal (becomes a no-op), which is what makes a
// completed asynchronous operation targeting a destroyed element harmless.
//
// SetState must only be called on the tree-owner timeline. To update state
// from another goroutine, marshal the call through runtime.Dispatch.
func (s *StateBase) SetState(fn func()) {
	if s.disposed {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// OnDispose registers a cleanup function called when the state is disposed.
// Returns an unregister function. The cleanup runs at most once; registering
// on an already-disposed state runs the cleanup immediately.
func (s *StateBase) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		cleanup()
		return func() {}
	}

	index := len(s.disposers)
	s.disposers = append(s.disposers, cleanup)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if index < len(s.disposers) {
			s.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered disposers in reverse order.
// Called automatically by Dispose.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true

	// LIFO: later registrations may depend on earlier ones.
	for i := len(s.disposers) - 1; i >= 0; i-- {
		if s.disposers[i] != nil {
			s.disposers[i]()
		}
	}
	s.disposers = nil
}

// Dispose cleans up resources. Override for custom cleanup, but always call
// s.RunDisposers() or s.StateBase.Dispose() in the override.
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

// InitState is a no-op default implementation.
func (s *StateBase) InitState() {}

// Build is a no-op default implementation that returns nil.
func (s *StateBase) Build(ctx BuildContext) Widget {
	return nil
}

// DidChangeDependencies is a no-op default implementation.
func (s *StateBase) DidChangeDependencies() {}

// DidUpdateWidget is a no-op default implementation.
func (s *StateBase) DidUpdateWidget(oldWidget StatefulWidget) {}

// IsDisposed returns true if this state has been disposed.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
