// Package runtime drives the tree-owner timeline: it owns the root element,
// marshals work from other goroutines onto frame boundaries, and runs the
// build/layout pipeline once per frame. Painting is the embedder's job; it
// consumes the render tree after StepFrame returns.
package runtime

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/loom-ui/loom/pkg/core"
	loomerrors "github.com/loom-ui/loom/pkg/errors"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/render"
)

// ErrNoRoot is returned by StepFrame when no root widget was configured.
// This is the one construction-time error fatal to the whole run.
var ErrNoRoot = errors.New("no root widget configured")

// Loop owns one element tree and the single sequential timeline that is
// allowed to mutate it. All reconciliation, state mutation, and inherited
// propagation happen inside StepFrame; everything arriving from other
// goroutines goes through Dispatch and runs at the start of the next frame.
type Loop struct {
	mu         sync.Mutex // serializes StepFrame and tree access
	owner      *core.BuildOwner
	root       core.Element
	rootWidget core.Widget

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	pendingFrame atomic.Bool

	completionsMu sync.Mutex
	completions   map[uuid.UUID]*Completion
}

// NewLoop creates a loop with an empty tree.
func NewLoop() *Loop {
	return &Loop{
		owner:       core.NewBuildOwner(),
		completions: make(map[uuid.UUID]*Completion),
	}
}

// BuildOwner exposes the dirty-element scheduler, mainly for test harnesses.
func (l *Loop) BuildOwner() *core.BuildOwner {
	return l.owner
}

// SetOnNeedsFrame registers the embedder callback invoked whenever new work
// is scheduled, enabling on-demand frame production.
func (l *Loop) SetOnNeedsFrame(fn func()) {
	l.owner.OnNeedsFrame = fn
}

// SetRoot configures the root widget. The tree is (re)mounted on the next
// StepFrame.
func (l *Loop) SetRoot(widget core.Widget) {
	l.mu.Lock()
	l.rootWidget = widget
	if l.root != nil {
		l.root.Unmount()
		l.root = nil
	}
	l.mu.Unlock()
	l.RequestFrame()
}

// Dispatch schedules a callback to run on the tree-owner timeline during
// the next frame. Safe to call from any goroutine; this is how background
// work re-enters the system.
func (l *Loop) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	l.dispatchMu.Lock()
	l.dispatchQueue = append(l.dispatchQueue, callback)
	l.dispatchMu.Unlock()
	l.RequestFrame()
}

// RequestFrame marks that a frame should be produced.
func (l *Loop) RequestFrame() {
	l.pendingFrame.Store(true)
	if l.owner.OnNeedsFrame != nil {
		l.owner.OnNeedsFrame()
	}
}

// NeedsFrame reports whether a StepFrame call would do work.
func (l *Loop) NeedsFrame() bool {
	if l.pendingFrame.Load() {
		return true
	}
	l.dispatchMu.Lock()
	hasCallbacks := len(l.dispatchQueue) > 0
	l.dispatchMu.Unlock()
	if hasCallbacks {
		return true
	}
	l.mu.Lock()
	unmounted := l.root == nil && l.rootWidget != nil
	l.mu.Unlock()
	return unmounted || l.owner.NeedsWork()
}

// StepFrame runs one frame: drain dispatched callbacks, mount the root if
// needed, flush dirty-element rebuilds, then flush layout with the given
// surface size. After it returns the embedder may paint the render tree.
//
// Faults inside dispatched callbacks or builds are subtree-local and
// reported through the error handler; the only error StepFrame itself
// returns is the fatal absence of a root widget.
func (l *Loop) StepFrame(size graphics.Size) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, callback := range l.drainDispatchQueue() {
		l.runDispatched(callback)
	}

	if l.rootWidget == nil {
		return &loomerrors.FrameworkError{
			Op:   "runtime.StepFrame",
			Kind: loomerrors.KindConfig,
			Err:  ErrNoRoot,
		}
	}
	if l.root == nil {
		l.root = core.InflateRoot(l.rootWidget, l.owner)
	}

	l.owner.FlushBuild()

	if rootRender := l.rootRenderLocked(); rootRender != nil {
		l.owner.Pipeline().FlushLayout(rootRender, render.Tight(size))
	}

	l.pendingFrame.Store(false)
	return nil
}

func (l *Loop) runDispatched(callback func()) {
	defer loomerrors.Recover("runtime.Dispatch")
	callback()
}

func (l *Loop) drainDispatchQueue() []func() {
	l.dispatchMu.Lock()
	callbacks := l.dispatchQueue
	l.dispatchQueue = nil
	l.dispatchMu.Unlock()
	return callbacks
}

// Root returns the root element for read-only traversal.
func (l *Loop) Root() core.Element {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.root
}

// RootRender returns the root of the render tree the painter consumes.
func (l *Loop) RootRender() render.RenderObject {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rootRenderLocked()
}

func (l *Loop) rootRenderLocked() render.RenderObject {
	if l.root == nil {
		return nil
	}
	if provider, ok := l.root.(interface{ RenderObject() render.RenderObject }); ok {
		return provider.RenderObject()
	}
	return nil
}

// Restart unmounts the whole tree and remounts it from the configured root
// widget on the next frame. All element state is lost. Safe to call from
// any goroutine.
func (l *Loop) Restart() {
	l.Dispatch(func() {
		// Runs inside StepFrame, which already holds the tree lock.
		if l.root != nil {
			l.root.Unmount()
			l.root = nil
		}
	})
}
