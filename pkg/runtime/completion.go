package runtime

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Completion is a cancelable token for asynchronous work whose result must
// re-enter the tree-owner timeline. A state object that starts background
// work holds a Completion and cancels it on dispose, so a late result never
// touches freed state.
type Completion struct {
	id       uuid.UUID
	loop     *Loop
	canceled atomic.Bool
}

// NewCompletion registers a fresh token with the loop.
func NewCompletion(loop *Loop) *Completion {
	c := &Completion{id: uuid.New(), loop: loop}
	loop.completionsMu.Lock()
	loop.completions[c.id] = c
	loop.completionsMu.Unlock()
	return c
}

// ID returns the token's unique identifier.
func (c *Completion) ID() uuid.UUID {
	return c.id
}

// Resolve dispatches fn onto the tree-owner timeline unless the token was
// canceled first. Each token resolves at most once; later calls are no-ops.
// Safe to call from any goroutine.
func (c *Completion) Resolve(fn func()) {
	if c.canceled.Swap(true) {
		return
	}
	c.unregister()
	c.loop.Dispatch(fn)
}

// Cancel discards the token. A Resolve racing with Cancel either runs fully
// or not at all.
func (c *Completion) Cancel() {
	if c.canceled.Swap(true) {
		return
	}
	c.unregister()
}

// Canceled reports whether the token was canceled or already resolved.
func (c *Completion) Canceled() bool {
	return c.canceled.Load()
}

func (c *Completion) unregister() {
	c.loop.completionsMu.Lock()
	delete(c.loop.completions, c.id)
	c.loop.completionsMu.Unlock()
}

// PendingCompletions reports how many tokens are registered and neither
// resolved nor canceled.
func (l *Loop) PendingCompletions() int {
	l.completionsMu.Lock()
	defer l.completionsMu.Unlock()
	return len(l.completions)
}
