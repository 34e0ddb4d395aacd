package core

import (
	"github.com/loom-ui/loom/pkg/render"
)

// RenderObjectWidget is a widget that creates a geometry-bearing render
// object directly instead of composing other widgets.
type RenderObjectWidget interface {
	Widget
	CreateRenderObject(ctx BuildContext) render.RenderObject
	UpdateRenderObject(ctx BuildContext, renderObject render.RenderObject)
}

// SingleChildWidget is implemented by render object widgets with one child.
type SingleChildWidget interface {
	Child() Widget
}

// MultiChildWidget is implemented by render object widgets with an ordered
// child list.
type MultiChildWidget interface {
	Children() []Widget
}

// RenderObjectElement hosts a RenderObject and its child elements.
type RenderObjectElement struct {
	elementBase
	renderObject render.RenderObject
	children     []Element
}

func NewRenderObjectElement(widget RenderObjectWidget, owner *BuildOwner) *RenderObjectElement {
	element := &RenderObjectElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *RenderObjectElement) Mount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true

	widget := e.widget.(RenderObjectWidget)
	e.renderObject = widget.CreateRenderObject(e)
	if e.buildOwner != nil {
		e.renderObject.SetOwner(e.buildOwner.Pipeline())
	}
	// A fresh render object has never been laid out. UpdateRenderObject sees
	// the widget's own values and may not mark anything, so mark here.
	e.renderObject.MarkNeedsLayout()

	// Attach to the render tree before building children so descendants can
	// find their render parent.
	e.attachRenderObject()

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderObjectElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *RenderObjectElement) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false

	// Children first: deep removal tears a subtree down leaves-last from the
	// caller's point of view, and the children detach their own render objects.
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil

	e.detachRenderObject()
	e.unregisterDependencies()
}

func (e *RenderObjectElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widget := e.widget.(RenderObjectWidget)
	widget.UpdateRenderObject(e, e.renderObject)

	switch typed := e.widget.(type) {
	case SingleChildWidget:
		var existing Element
		if len(e.children) > 0 {
			existing = e.children[0]
		}
		child := updateChild(existing, typed.Child(), e, e.buildOwner, IndexedSlot{Index: 0})
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}

	case MultiChildWidget:
		e.children = updateChildren(e, e.children, typed.Children(), e.buildOwner)
		// The render child list can only be rebuilt once e.children is fully
		// populated; insertion during child mounts sees a partial list.
		e.rebuildChildrenRenderList()
	}
}

func (e *RenderObjectElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// RenderObject exposes the backing render object for the element.
func (e *RenderObjectElement) RenderObject() render.RenderObject {
	return e.renderObject
}

// attachRenderObject attaches this element's render object to the nearest
// ancestor render object.
func (e *RenderObjectElement) attachRenderObject() {
	e.renderParent = e.findRenderParent()
	if e.renderParent != nil {
		e.renderParent.insertRenderObjectChild(e.renderObject)
	}
}

// detachRenderObject removes this element's render object from the render
// tree. Called from Unmount.
func (e *RenderObjectElement) detachRenderObject() {
	if e.renderParent != nil {
		e.renderParent.removeRenderObjectChild(e.renderObject)
		e.renderParent = nil
	}
}

// insertRenderObjectChild adds a child render object under this element's
// render object.
func (e *RenderObjectElement) insertRenderObjectChild(child render.RenderObject) {
	if child == nil {
		return
	}
	child.SetParent(e.renderObject)
	if single, ok := e.renderObject.(interface{ SetChild(render.RenderObject) }); ok {
		single.SetChild(child)
		return
	}
	// Multi-child parents rebuild their list after RebuildIfNeeded completes.
}

// removeRenderObjectChild removes a child render object.
func (e *RenderObjectElement) removeRenderObjectChild(child render.RenderObject) {
	if child == nil {
		return
	}
	child.SetParent(nil)
	if single, ok := e.renderObject.(interface{ SetChild(render.RenderObject) }); ok {
		single.SetChild(nil)
		return
	}
	e.rebuildChildrenRenderList()
}

// rebuildChildrenRenderList mirrors the element child order into the render
// object's child list.
func (e *RenderObjectElement) rebuildChildrenRenderList() {
	multi, ok := e.renderObject.(interface{ SetChildren([]render.RenderObject) })
	if !ok {
		return
	}
	objects := make([]render.RenderObject, 0, len(e.children))
	for _, child := range e.children {
		if provider, ok := child.(interface{ RenderObject() render.RenderObject }); ok {
			if ro := provider.RenderObject(); ro != nil {
				objects = append(objects, ro)
			}
		}
	}
	multi.SetChildren(objects)
}
