package render

// PipelineOwner tracks render objects that need layout or paint.
//
// The frame sequence is: flush builds (element tree), then FlushLayout here,
// then the backend paints. Scheduling is idempotent per object per frame.
type PipelineOwner struct {
	dirtyLayout    []RenderObject
	dirtyLayoutSet map[RenderObject]bool
	dirtyPaint     map[RenderObject]struct{}
	needsLayout    bool
	needsPaint     bool
}

// ScheduleLayout marks a render object as needing layout.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
}

// SchedulePaint marks a render object as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	if _, exists := p.dirtyPaint[object]; exists {
		return
	}
	p.dirtyPaint[object] = struct{}{}
	p.needsPaint = true
}

// NeedsLayout reports whether any render object needs layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports whether any render object needs paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayout lays out from the root with tight constraints and clears the
// layout queue. The root is always a layout boundary.
func (p *PipelineOwner) FlushLayout(root RenderObject, constraints Constraints) {
	if root == nil {
		return
	}
	if p.needsLayout {
		root.Layout(constraints)
	}
	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// MarkPainted clears the paint queue after the backend has consumed it.
func (p *PipelineOwner) MarkPainted() {
	p.dirtyPaint = nil
	p.needsPaint = false
}

// Walk traverses the render tree depth-first in paint order, calling visit
// for every node. This is the read-only traversal the painter backend uses.
func Walk(root RenderObject, visit func(RenderObject)) {
	if root == nil {
		return
	}
	visit(root)
	if parent, ok := root.(ChildVisitor); ok {
		parent.VisitChildren(func(child RenderObject) {
			Walk(child, visit)
		})
	}
}
