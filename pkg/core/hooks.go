package core

// UseController creates a controller and registers it for automatic
// disposal when the state is disposed.
//
//	func (s *myState) InitState() {
//	    s.ticker = core.UseController(s, func() *Ticker {
//	        return NewTicker(300 * time.Millisecond)
//	    })
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	controller := create()
	base.OnDispose(func() {
		controller.Dispose()
	})
	return controller
}

// UseListenable subscribes to a listenable and triggers rebuilds.
// The subscription is cleaned up when the state is disposed.
func UseListenable(s stateBase, listenable Listenable) {
	base := s.state()
	unsub := listenable.AddListener(func() {
		base.SetState(nil)
	})
	base.OnDispose(unsub)
}

// UseObservable subscribes to an observable and triggers rebuilds when it
// changes. Call once in InitState, not in Build; read Value() during Build.
func UseObservable[T any](s stateBase, obs *Observable[T]) {
	base := s.state()
	unsub := obs.AddListener(func(T) {
		base.SetState(nil)
	})
	base.OnDispose(unsub)
}

// Managed holds a value and triggers a rebuild of its owning state when it
// changes. Unlike Observable it is not thread-safe: access it only on the
// tree-owner timeline, marshaling background results through
// runtime.Dispatch first.
//
//	func (s *myState) InitState() {
//	    s.count = core.NewManaged(s, 0)
//	}
type Managed[T any] struct {
	base  *StateBase
	value T
}

// NewManaged creates a managed state value bound to s.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.SetState(nil)
}

// Update applies a transformation to the current value and triggers a
// rebuild.
func (m *Managed[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.base.SetState(nil)
}
