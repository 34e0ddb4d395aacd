// Package render defines the narrow surface the element tree exposes to a
// painter/layout backend. It carries dirty-flag bookkeeping and read-only
// traversal; geometry algorithms and rasterization live in the backend.
package render

import (
	"github.com/loom-ui/loom/pkg/graphics"
)

// Constraints bound the size a render object may choose during layout.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that force exactly the given size.
func Tight(size graphics.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Constrain clamps a size to the constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	w := size.Width
	if w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	h := size.Height
	if h < c.MinHeight {
		h = c.MinHeight
	}
	if c.MaxHeight > 0 && h > c.MaxHeight {
		h = c.MaxHeight
	}
	return graphics.Size{Width: w, Height: h}
}

// RenderObject is a geometry-bearing node consumed by the painter backend
// after each frame's builds have flushed.
type RenderObject interface {
	Layout(constraints Constraints)
	Size() graphics.Size
	MarkNeedsLayout()
	MarkNeedsPaint()
	SetOwner(owner *PipelineOwner)
	SetParent(parent RenderObject)
	Parent() RenderObject
}

// ChildVisitor is implemented by render objects that have children.
type ChildVisitor interface {
	// VisitChildren calls the visitor for each child in paint order.
	VisitChildren(visitor func(RenderObject))
}

// BoxBase provides dirty-flag and ownership bookkeeping for render boxes.
// Concrete render objects embed it and implement Layout.
type BoxBase struct {
	size        graphics.Size
	owner       *PipelineOwner
	parent      RenderObject
	self        RenderObject
	needsLayout bool
	needsPaint  bool
}

// SetSelf stores the concrete object so dirty marks schedule the right node.
// Must be called once after construction, before the object enters the tree.
func (b *BoxBase) SetSelf(self RenderObject) {
	b.self = self
}

// Size returns the size chosen by the last layout pass.
func (b *BoxBase) Size() graphics.Size {
	return b.size
}

// SetSize records the size chosen during layout.
// A size change dirties paint: the node's content must be re-recorded.
func (b *BoxBase) SetSize(size graphics.Size) {
	if b.size == size {
		return
	}
	b.size = size
	b.MarkNeedsPaint()
}

// SetOwner attaches the object to a pipeline owner.
func (b *BoxBase) SetOwner(owner *PipelineOwner) {
	b.owner = owner
}

// SetParent records the parent render object.
func (b *BoxBase) SetParent(parent RenderObject) {
	b.parent = parent
}

// Parent returns the parent render object, or nil at the root.
func (b *BoxBase) Parent() RenderObject {
	return b.parent
}

// MarkNeedsLayout schedules this object for layout on the next flush.
func (b *BoxBase) MarkNeedsLayout() {
	if b.needsLayout {
		return
	}
	b.needsLayout = true
	if b.owner != nil && b.self != nil {
		b.owner.ScheduleLayout(b.self)
	}
}

// MarkNeedsPaint schedules this object for paint on the next flush.
func (b *BoxBase) MarkNeedsPaint() {
	if b.needsPaint {
		return
	}
	b.needsPaint = true
	if b.owner != nil && b.self != nil {
		b.owner.SchedulePaint(b.self)
	}
}

// ClearDirty resets the dirty flags. Called by the owner after a flush.
func (b *BoxBase) ClearDirty() {
	b.needsLayout = false
	b.needsPaint = false
}
