package uitest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/render"
	"github.com/loom-ui/loom/pkg/widgets"
)

// Finder locates elements in a mounted tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root core.Element) []core.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no elements: %s", desc))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

// Widget returns the widget of the first matched element. Panics if no matches.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// RenderObject returns the render object of the first matched element, or
// nil if the element has none.
func (r FinderResult) RenderObject() render.RenderObject {
	if provider, ok := r.First().(interface{ RenderObject() render.RenderObject }); ok {
		return provider.RenderObject()
	}
	return nil
}

// typeFinder matches elements whose widget is of the specified type.
type typeFinder struct {
	widgetType reflect.Type
	typeName   string
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches elements whose widget is type T.
func ByType[T core.Widget]() Finder {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return &typeFinder{widgetType: t, typeName: t.String()}
}

// keyFinder matches elements whose widget key equals the given key.
type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		k := e.Widget().Key()
		if k == nil && f.key == nil {
			return true
		}
		if k == nil || f.key == nil {
			return false
		}
		// Guard against non-comparable types (slices, maps, funcs).
		if !reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey returns a finder that matches elements whose widget key equals key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

// textFinder matches widgets.Text elements by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		if t, ok := e.Widget().(widgets.Text); ok {
			return t.Content == f.text
		}
		return false
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches [widgets.Text] with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches widgets.Text elements containing substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		if t, ok := e.Widget().(widgets.Text); ok {
			return strings.Contains(t.Content, f.substring)
		}
		return false
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches [widgets.Text] containing
// the given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches elements satisfying a predicate.
type predicateFinder struct {
	fn   func(core.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// collectMatches walks the tree depth-first pre-order and returns the
// elements satisfying match.
func collectMatches(root core.Element, match func(core.Element) bool) []core.Element {
	var results []core.Element
	var walk func(core.Element)
	walk = func(e core.Element) {
		if match(e) {
			results = append(results, e)
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	if root != nil {
		walk(root)
	}
	return results
}
