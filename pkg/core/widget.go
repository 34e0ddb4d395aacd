package core

import "reflect"

// Widget is an immutable description of part of the UI for one tree
// position. Widgets are lightweight configuration values produced fresh on
// every build; all long-lived data belongs in State.
type Widget interface {
	// CreateElement instantiates the element that will host this widget.
	CreateElement() Element
	// Key returns the optional local key used to disambiguate siblings of
	// the same logical kind across rebuilds. Nil means unkeyed.
	Key() any
}

// StatelessWidget describes UI purely as a function of its own fields and
// inherited reads.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns mutable state that must survive rebuilds. The state
// object is created once per element and lives until the element unmounts.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// InheritedWidget publishes a value visible to all descendants until
// shadowed by a nearer publication of the same logical kind.
type InheritedWidget interface {
	Widget
	// ChildWidget returns the subtree below the publication.
	ChildWidget() Widget
	// UpdateShouldNotify reports whether the published value changed, by the
	// widget's own equality. When false, no dependent is rebuilt.
	UpdateShouldNotify(old InheritedWidget) bool
}

// State is the persistent mutable companion of a StatefulWidget.
// It is created by CreateState, mutated through SetState, and disposed
// exactly once when its element unmounts.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	DidChangeDependencies()
	DidUpdateWidget(oldWidget StatefulWidget)
	Dispose()
}

// BuildContext is the capability handle passed to Build. It is bound to one
// element and, by contract, valid only for the duration of the build call
// that received it; MarkNeedsBuild is the one exception and may be invoked
// later through a retained State.
type BuildContext interface {
	// Widget returns the description currently occupying this position.
	Widget() Widget
	// MarkNeedsBuild schedules this element for rebuild. Idempotent, and the
	// sole re-entry point for external stimuli (events, completed async work).
	MarkNeedsBuild()
	// DependOnInherited resolves the nearest ancestor publication under the
	// given shape key and registers this element as a dependent. Returns nil
	// when no ancestor publishes the key; an absent publisher is not an error.
	DependOnInherited(key any) any
	// FindAncestor walks toward the root and returns the first element
	// matching the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is a persistent mutable node pairing a widget description with
// its long-lived state and tree position. One element per stable position;
// the parent owns its children.
type Element interface {
	BuildContext

	// Mount attaches the element below parent at the given slot and runs the
	// initial build.
	Mount(parent Element, slot any)
	// Update swaps in a matching new description; state is untouched.
	Update(newWidget Widget)
	// Unmount tears the element down: children first, then its own state.
	// Idempotent.
	Unmount()
	// RebuildIfNeeded rebuilds the element if it is dirty and mounted.
	RebuildIfNeeded()
	// VisitChildren calls visitor for each child in order until it returns
	// false. This is the read-only traversal consumed by external backends.
	VisitChildren(visitor func(Element) bool)
	// Depth is the distance from the root; the scheduler drains in depth
	// order so ancestors rebuild before descendants.
	Depth() int
	// Slot identifies the element's position within its parent.
	Slot() any
	// UpdateSlot moves the element to a new position within its parent.
	UpdateSlot(slot any)
	// Mounted reports whether the element is live in the tree.
	Mounted() bool
}

// ShapeTagger lets a widget report a stable logical-kind discriminant
// independent of its generic type parameters. Without it, the widget's
// reflect.Type is the discriminant, which splits a generic widget into one
// kind per instantiation. Generic containers whose persistent state does not
// depend on the type parameter should implement ShapeTagger so state
// survives a change of that parameter.
type ShapeTagger interface {
	ShapeTag() string
}

// shapeOf returns the matching discriminant for a widget: the declared
// shape tag when present, the concrete type otherwise.
func shapeOf(w Widget) any {
	if tagger, ok := w.(ShapeTagger); ok {
		return tagger.ShapeTag()
	}
	return reflect.TypeOf(w)
}

// Disposable is anything owning resources that must be released exactly once.
type Disposable interface {
	Dispose()
}

// Listenable broadcasts change notifications to registered listeners.
// AddListener returns an unsubscribe function.
type Listenable interface {
	AddListener(listener func()) func()
}
