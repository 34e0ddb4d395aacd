package core

import (
	"slices"
	"sync"

	"github.com/loom-ui/loom/pkg/render"
)

// BuildOwner is the dirty-element scheduler: the work queue of elements
// needing rebuild, drained ancestor-before-descendant once per frame.
type BuildOwner struct {
	dirty    []Element
	dirtySet map[Element]bool
	pipeline *render.PipelineOwner
	mu       sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for rebuild,
	// signalling the embedder that a frame should be produced. Needed for
	// on-demand frame scheduling where the driver sleeps until asked.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{
		pipeline: &render.PipelineOwner{},
	}
}

// Pipeline returns the PipelineOwner used for render object scheduling.
func (b *BuildOwner) Pipeline() *render.PipelineOwner {
	return b.pipeline
}

// ScheduleBuild marks an element as needing rebuild. Idempotent, and safe
// to call from any goroutine: completions arriving off the tree-owner
// timeline enqueue here and the work happens on the next FlushBuild.
func (b *BuildOwner) ScheduleBuild(element Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if there are dirty elements or pending layout.
// Pending paint is excluded: a frame flushes builds and layout, while paint
// is consumed by the embedder after the frame, so paint dirt alone must not
// keep the frame loop spinning.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	hasDirty := len(b.dirty) > 0
	b.mu.Unlock()
	if hasDirty {
		return true
	}
	return b.pipeline.NeedsLayout()
}

// FlushBuild rebuilds all dirty elements in depth (ancestor-first) order
// and leaves the queue empty. An ancestor rebuild may re-reconcile a
// descendant that was already queued; that descendant is clean by the time
// it is visited and RebuildIfNeeded skips it, so no element builds twice
// per drain unless it was legitimately re-dirtied. Elements dirtied during
// the drain are picked up by the next loop iteration, so the drain
// converges and terminates.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if !element.Mounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}
