package widgets

import (
	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/render"
)

// Box is a single-child container. It sizes itself to its child, or to the
// minimum constraints when childless.
type Box struct {
	ChildWidget core.Widget
}

func (b Box) CreateElement() core.Element {
	return core.NewRenderObjectElement(b, nil)
}

func (b Box) Key() any {
	return nil
}

// Child satisfies core.SingleChildWidget.
func (b Box) Child() core.Widget {
	return b.ChildWidget
}

func (b Box) CreateRenderObject(ctx core.BuildContext) render.RenderObject {
	box := &renderBox{}
	box.SetSelf(box)
	return box
}

func (b Box) UpdateRenderObject(ctx core.BuildContext, renderObject render.RenderObject) {
	renderObject.MarkNeedsLayout()
}

type renderBox struct {
	render.BoxBase
	child render.RenderObject
}

func (r *renderBox) SetChild(child render.RenderObject) {
	r.child = child
	r.MarkNeedsLayout()
}

func (r *renderBox) VisitChildren(visitor func(render.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderBox) Layout(constraints render.Constraints) {
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{}))
		r.ClearDirty()
		return
	}
	r.child.Layout(constraints)
	r.SetSize(constraints.Constrain(r.child.Size()))
	r.ClearDirty()
}
