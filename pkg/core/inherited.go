package core

import (
	"reflect"

	"github.com/loom-ui/loom/pkg/render"
)

// InheritedElement hosts an [InheritedWidget] and tracks which descendant
// elements depend on its published value.
//
// When a descendant calls [BuildContext.DependOnInherited], it registers as
// a dependent of this element. When a rebuild publishes a different value,
// as judged by [InheritedWidget.UpdateShouldNotify], every registered
// dependent is marked dirty through the scheduler and the dependent set is
// cleared; dependents that still read the value re-register on their next
// build. Publishing an equal value notifies nobody, which is what lets an
// inherited publication sit above a large subtree without rebuilding it
// every frame.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

func NewInheritedElement(widget InheritedWidget, owner *BuildOwner) *InheritedElement {
	element := &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
	element.widget = widget
	element.buildOwner = owner
	element.setSelf(element)
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	newInherited := newWidget.(InheritedWidget)

	// Equal publication: nobody rebuilds except this element's own child
	// chain, which must still receive the new child description.
	if !newInherited.UpdateShouldNotify(oldWidget) {
		e.MarkNeedsBuild()
		return
	}

	// Changed publication: dirty exactly the registered dependents, then
	// drop the registrations. Dependents re-register when they next read us.
	for dependent := range e.dependents {
		notifyDependent(dependent)
	}
	clear(e.dependents)

	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
	e.unregisterDependencies()
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	inherited := e.widget.(InheritedWidget)
	e.child = updateChild(e.child, inherited.ChildWidget(), e, e.buildOwner, e.slot)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object from the child element.
func (e *InheritedElement) RenderObject() render.RenderObject {
	return childRenderObject(e.child)
}

// addDependent registers an element as depending on this publication.
func (e *InheritedElement) addDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// removeDependent unregisters a dependent; unmounting descendants call this
// so a dead element can never be scheduled by a later publication.
func (e *InheritedElement) removeDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// DependentCount reports the number of registered dependents.
func (e *InheritedElement) DependentCount() int {
	return len(e.dependents)
}

// notifyDependent marks a dependent dirty; stateful dependents also get
// their DidChangeDependencies hook.
func notifyDependent(element Element) {
	if stateful, ok := element.(*StatefulElement); ok {
		if stateful.state != nil {
			stateful.state.DidChangeDependencies()
		}
		stateful.MarkNeedsBuild()
		return
	}
	element.MarkNeedsBuild()
}

// dependOnInherited walks toward the root for the nearest InheritedElement
// whose widget matches the requested shape key, registers the caller as a
// dependent, and returns the published widget. The key is either a shape
// tag string or a reflect.Type; a nearer publication of the same key
// shadows a farther one. Returns nil when nothing publishes the key.
func dependOnInherited(element Element, key any) any {
	if element == nil {
		return nil
	}
	var current Element
	if base, ok := element.(interface{ parentElement() Element }); ok {
		current = base.parentElement()
	}

	for current != nil {
		if inherited, ok := current.(*InheritedElement); ok {
			if inheritedMatches(inherited.widget, key) {
				inherited.addDependent(element)
				if recorder, ok := element.(interface{ recordDependency(*InheritedElement) }); ok {
					recorder.recordDependency(inherited)
				}
				return inherited.widget
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// inheritedMatches compares a published widget against a lookup key.
func inheritedMatches(widget Widget, key any) bool {
	switch k := key.(type) {
	case string:
		tagger, ok := widget.(ShapeTagger)
		return ok && tagger.ShapeTag() == k
	case reflect.Type:
		widgetType := reflect.TypeOf(widget)
		if widgetType == k {
			return true
		}
		return widgetType.Kind() == reflect.Pointer && widgetType.Elem() == k
	default:
		return shapeOf(widget) == key
	}
}

// InheritedOf resolves the nearest ancestor publication of the concrete
// inherited widget type T, registering ctx as a dependent. The second
// return is false when no ancestor publishes T; an absent publisher is not
// an error and the caller decides how to react.
func InheritedOf[T InheritedWidget](ctx BuildContext) (T, bool) {
	var zero T
	var key any
	if tagger, ok := any(zero).(ShapeTagger); ok {
		key = tagger.ShapeTag()
	} else {
		key = reflect.TypeOf(zero)
	}
	value := ctx.DependOnInherited(key)
	if value == nil {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
