package core

import (
	"reflect"
	"time"

	"github.com/loom-ui/loom/pkg/errors"
	"github.com/loom-ui/loom/pkg/render"
)

// IndexedSlot identifies a child's position within a multi-child parent.
// PreviousSibling lets render parents insert after the right neighbor.
type IndexedSlot struct {
	Index           int
	PreviousSibling Element
}

type elementBase struct {
	widget       Widget
	parent       Element
	depth        int
	slot         any
	buildOwner   *BuildOwner
	dirty        bool
	self         Element
	mounted      bool
	renderParent *RenderObjectElement // nearest ancestor that owns a render object
	dependencies map[*InheritedElement]struct{}
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) Slot() any {
	return e.slot
}

func (e *elementBase) UpdateSlot(slot any) {
	e.slot = slot
}

func (e *elementBase) Mounted() bool {
	return e.mounted
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

// mountBase wires the shared element fields during Mount.
func (e *elementBase) mountBase(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.renderParent = e.findRenderParent()
	e.mounted = true
}

// findRenderParent walks up the element tree to find the nearest
// RenderObjectElement.
func (e *elementBase) findRenderParent() *RenderObjectElement {
	current := e.parent
	for current != nil {
		if roElement, ok := current.(*RenderObjectElement); ok {
			return roElement
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

func (e *elementBase) DependOnInherited(key any) any {
	return dependOnInherited(e.self, key)
}

// recordDependency remembers a registration so unmount can undo it.
func (e *elementBase) recordDependency(publisher *InheritedElement) {
	if e.dependencies == nil {
		e.dependencies = make(map[*InheritedElement]struct{})
	}
	e.dependencies[publisher] = struct{}{}
}

// unregisterDependencies removes this element from every publisher it
// registered with. Part of deep removal: a destroyed element can never be
// scheduled by a later publication.
func (e *elementBase) unregisterDependencies() {
	for publisher := range e.dependencies {
		publisher.removeDependent(e.self)
	}
	e.dependencies = nil
}

// safeBuild executes a build function with panic recovery. On a fault it
// reports the error, offers it to the nearest error boundary, and returns
// ok=false so the caller keeps the previous (last-good) child subtree in
// place. Faults never propagate past the offending element.
func (e *elementBase) safeBuild(buildFn func() Widget) (built Widget, ok bool) {
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		errors.ReportBuildError(buildErr)
		e.offerToBoundaries(buildErr)
		return nil, false
	}
	return built, true
}

// reportChildFault reports a malformed child list (duplicate sibling keys)
// as a build fault attributed to this element.
func (e *elementBase) reportChildFault(err error) {
	buildErr := &errors.BuildError{
		Widget:     reflect.TypeOf(e.widget).String(),
		Element:    reflect.TypeOf(e.self).String(),
		Err:        err,
		StackTrace: errors.CaptureStack(),
		Timestamp:  time.Now(),
	}
	errors.ReportBuildError(buildErr)
	e.offerToBoundaries(buildErr)
}

// offerToBoundaries walks ancestors offering the fault to each error
// boundary, nearest first, until one reports it handled.
func (e *elementBase) offerToBoundaries(buildErr *errors.BuildError) {
	current := e.parent
	for current != nil {
		if capture, ok := current.(ErrorBoundaryCapture); ok {
			if capture.CaptureError(buildErr) {
				return
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

func NewStatelessElement(widget StatelessWidget, owner *BuildOwner) *StatelessElement {
	element := &StatelessElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.unregisterDependencies()
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	built, ok := e.safeBuild(func() Widget {
		return widget.Build(e)
	})
	if !ok {
		return
	}
	// Parent must be e.self so embedding element types stay visible to
	// ancestor walks from the child.
	e.child = updateChild(e.child, built, e.self, e.buildOwner, e.slot)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatelessElement) RenderObject() render.RenderObject {
	return childRenderObject(e.child)
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

func NewStatefulElement(widget StatefulWidget, owner *BuildOwner) *StatefulElement {
	element := &StatefulElement{}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

// State exposes the persistent state object. Test harnesses use it to
// assert state identity across rebuilds.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
	e.unregisterDependencies()
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	built, ok := e.safeBuild(func() Widget {
		return e.state.Build(e)
	})
	if !ok {
		return
	}
	e.child = updateChild(e.child, built, e.self, e.buildOwner, e.slot)
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the first render-object child.
func (e *StatefulElement) RenderObject() render.RenderObject {
	return childRenderObject(e.child)
}

// childRenderObject resolves the render object below a composite element.
func childRenderObject(child Element) render.RenderObject {
	if child == nil {
		return nil
	}
	if provider, ok := child.(interface{ RenderObject() render.RenderObject }); ok {
		return provider.RenderObject()
	}
	return nil
}

// updateChild reconciles one tree position: nil widget removes the existing
// element, a matching description updates it in place, and a mismatch
// replaces it (old subtree destroyed first, state discarded). Total over any
// well-formed description: every position is matched, created, or removed.
//
// An equal description short-circuits entirely: the element keeps its
// current configuration and is not rebuilt. This is what stops a rebuilding
// ancestor from cascading through descendants whose descriptions did not
// change; descendants that depend on a changed inherited value are dirtied
// through the registry instead.
func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner, slot any) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && sameDescription(existing.Widget(), widget) {
		if existing.Slot() != slot {
			existing.UpdateSlot(slot)
		}
		return existing
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		if existing.Slot() != slot {
			existing.UpdateSlot(slot)
		}
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	element.Mount(parent, slot)
	return element
}

// sameDescription reports whether two descriptions are interchangeable:
// same comparable concrete type and equal value. Descriptions carrying
// closures or slices are never comparable and always take the update path.
func sameDescription(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	// Value-level comparability: an interface field may hold a closure or
	// slice even when the struct type is statically comparable.
	a, b := reflect.ValueOf(existing), reflect.ValueOf(next)
	if !a.Comparable() || !b.Comparable() {
		return false
	}
	return a.Equal(b)
}

// canUpdateWidget reports whether next describes the same logical node as
// existing: shape discriminants match and keys are both absent or equal.
// The shape discriminant is the widget's declared ShapeTag when present,
// so generic widgets can keep one identity across type parameters.
func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if shapeOf(existing) != shapeOf(next) {
		return false
	}
	existingKey := widgetKey(existing)
	nextKey := widgetKey(next)
	return existingKey == nextKey
}

// widgetKey returns the widget's local key, or nil for unkeyed widgets.
// Non-comparable keys cannot participate in matching and are treated as
// absent rather than panicking inside map operations.
func widgetKey(w Widget) any {
	if w == nil {
		return nil
	}
	key := w.Key()
	if key == nil || !isComparable(key) {
		return nil
	}
	return key
}

func isComparable(value any) bool {
	if value == nil {
		return true
	}
	return reflect.TypeOf(value).Comparable()
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}

// InflateRoot creates and mounts the root element for a widget tree.
// The runtime calls this once per root; a nil widget is a configuration
// error handled by the caller.
func InflateRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
