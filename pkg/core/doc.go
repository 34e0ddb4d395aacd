// Package core provides the widget and element framework interfaces and
// lifecycle.
//
// This package defines the foundational types for building reactive user
// interfaces: Widget, Element, State, and BuildContext. It follows a
// declarative model where widgets describe what the UI should look like and
// the framework incrementally updates a persistent element tree to match.
//
// # Core Types
//
// Widget is an immutable description of part of the UI. Widgets are
// lightweight configuration values created fresh on every build.
//
// Element is the instantiation of a Widget at a particular tree position.
// Elements own identity, per-position State, and the child list; they are
// created, updated in place, or destroyed by reconciliation.
//
// # Matching
//
// Across a rebuild, a new description matches an existing element when
// their logical kinds agree and their keys are both absent or equal. The
// logical kind is the widget's concrete type unless the widget implements
// ShapeTagger, which generic widgets use to keep one identity across type
// parameters so their State survives a parameter change.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in the state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Pressed %d times.", s.count)}
//	}
//
// SetState mutates state and schedules a rebuild; it must run on the
// tree-owner timeline. Background goroutines marshal through
// runtime.Dispatch. A disposed state's SetState is a no-op, so late
// completions against destroyed elements are harmless.
//
// # Inherited Data
//
// An InheritedWidget publishes a value to its descendants. Reading it
// through BuildContext.DependOnInherited (or the typed InheritedOf helper)
// registers the reader for targeted rebuilds: only a publication that
// UpdateShouldNotify judges different dirties the registered readers.
package core
