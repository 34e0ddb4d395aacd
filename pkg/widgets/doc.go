// Package widgets provides the built-in widget set: leaf render widgets
// (Text), containers (Box, Column), composition helpers (Builder,
// KeyedSubtree), a generic collapsible container (Panel), a generic
// inherited publication (Provider), and a build fault observer
// (ErrorBoundary).
//
// Widgets here are immutable struct values configured by their fields:
//
//	widgets.Column{ChildWidgets: []core.Widget{
//	    widgets.Text{Content: "Hello"},
//	    widgets.Text{Content: "World"},
//	}}
package widgets
