package widgets

import (
	"fmt"
	"reflect"

	"github.com/loom-ui/loom/pkg/core"
)

// Provider publishes a value of type T to all descendants. Descendants read
// it with ProviderOf, which registers them for targeted rebuilds: only a
// publication whose value differs (per Equals, or reflect.DeepEqual by
// default) dirties the registered readers.
//
// The shape tag is derived from T (or the explicit Tag), never from the
// child's type, so the publication keeps its element when the subtree below
// it changes shape.
type Provider[T any] struct {
	core.InheritedBase
	// Value is the published value.
	Value T
	// Tag distinguishes multiple publications of the same value type.
	// Empty means "the one publication of T".
	Tag string
	// Equals overrides the change test. Nil falls back to reflect.DeepEqual.
	Equals func(a, b T) bool
	// Child is the subtree that can see the publication.
	Child core.Widget
}

// ShapeTag identifies the publication by value type and tag.
func (p Provider[T]) ShapeTag() string {
	return providerTag[T](p.Tag)
}

// ChildWidget satisfies core.InheritedWidget.
func (p Provider[T]) ChildWidget() core.Widget {
	return p.Child
}

// UpdateShouldNotify reports whether the published value changed.
func (p Provider[T]) UpdateShouldNotify(old core.InheritedWidget) bool {
	previous, ok := old.(Provider[T])
	if !ok {
		return true
	}
	if p.Equals != nil {
		return !p.Equals(previous.Value, p.Value)
	}
	return !reflect.DeepEqual(previous.Value, p.Value)
}

// ProviderOf resolves the nearest ancestor Provider[T] publication under
// the default tag and registers ctx as a dependent. ok is false when no
// ancestor publishes T; the caller decides how to react, it is not an
// error.
func ProviderOf[T any](ctx core.BuildContext) (value T, ok bool) {
	return ProviderWithTag[T](ctx, "")
}

// ProviderWithTag is ProviderOf for an explicitly tagged publication.
func ProviderWithTag[T any](ctx core.BuildContext, tag string) (value T, ok bool) {
	published := ctx.DependOnInherited(providerTag[T](tag))
	if published == nil {
		return value, false
	}
	provider, ok := published.(Provider[T])
	if !ok {
		return value, false
	}
	return provider.Value, true
}

func providerTag[T any](tag string) string {
	if tag != "" {
		return fmt.Sprintf("loom.widgets.Provider[%T]#%s", *new(T), tag)
	}
	return fmt.Sprintf("loom.widgets.Provider[%T]", *new(T))
}
