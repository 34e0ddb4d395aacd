package widgets

import (
	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/render"
)

// Column stacks its children vertically in list order. Children keep their
// element identity across reorders when wrapped in KeyedSubtree.
type Column struct {
	ChildWidgets []core.Widget
}

func (c Column) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c Column) Key() any {
	return nil
}

// Children satisfies core.MultiChildWidget.
func (c Column) Children() []core.Widget {
	return c.ChildWidgets
}

func (c Column) CreateRenderObject(ctx core.BuildContext) render.RenderObject {
	column := &renderColumn{}
	column.SetSelf(column)
	return column
}

func (c Column) UpdateRenderObject(ctx core.BuildContext, renderObject render.RenderObject) {
	renderObject.MarkNeedsLayout()
}

type renderColumn struct {
	render.BoxBase
	children []render.RenderObject
	offsets  []graphics.Offset
}

func (r *renderColumn) SetChildren(children []render.RenderObject) {
	r.children = children
	r.MarkNeedsLayout()
}

func (r *renderColumn) VisitChildren(visitor func(render.RenderObject)) {
	for _, child := range r.children {
		visitor(child)
	}
}

// ChildOffset returns the laid-out position of the child at index, for the
// painter backend.
func (r *renderColumn) ChildOffset(index int) graphics.Offset {
	if index < 0 || index >= len(r.offsets) {
		return graphics.Offset{}
	}
	return r.offsets[index]
}

func (r *renderColumn) Layout(constraints render.Constraints) {
	loose := render.Constraints{MaxWidth: constraints.MaxWidth}
	var width, height float64
	r.offsets = make([]graphics.Offset, len(r.children))
	for i, child := range r.children {
		child.Layout(loose)
		r.offsets[i] = graphics.Offset{Y: height}
		size := child.Size()
		height += size.Height
		if size.Width > width {
			width = size.Width
		}
	}
	r.SetSize(constraints.Constrain(graphics.Size{Width: width, Height: height}))
	r.ClearDirty()
}
