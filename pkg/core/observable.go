package core

import "sync"

// Observable holds a value and notifies listeners when it changes.
// Unlike Managed, it is thread-safe and not tied to any one state: update it
// from a background goroutine and let subscribed states rebuild.
type Observable[T any] struct {
	mu        sync.Mutex
	value     T
	equals    func(a, b T) bool
	listeners map[int]func(T)
	nextID    int
}

// NewObservable creates an observable with an initial value.
// Every Set notifies listeners.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// NewObservableWithEquality creates an observable that only notifies
// listeners when equals(old, new) is false.
func NewObservableWithEquality[T any](initial T, equals func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equals: equals}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the value and notifies listeners. When an equality function
// is configured and reports the values equal, listeners are not notified.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.value = value
		o.mu.Unlock()
		return
	}
	o.value = value
	listeners := make([]func(T), 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	o.mu.Unlock()

	// Notify outside the lock so listeners may read or update the observable.
	for _, l := range listeners {
		l(value)
	}
}

// AddListener registers a listener and returns an unsubscribe function.
func (o *Observable[T]) AddListener(listener func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.listeners == nil {
		o.listeners = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = listener
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

// Notifier broadcasts events to listeners without holding a value.
type Notifier struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a listener and returns an unsubscribe function.
func (n *Notifier) AddListener(listener func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = listener
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// Notify invokes every registered listener.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
