package widgets

import "github.com/loom-ui/loom/pkg/core"

// Panel is a collapsible single-child container generically parameterized
// over its child widget type. Its shape tag is independent of that
// parameter: rebuilding a position with Panel[Text] and then Panel[Column]
// updates the same element in place, and the collapsed state survives.
type Panel[C core.Widget] struct {
	core.StatefulBase
	Child C
	// Collapsed is the initial state; later toggles live in the element.
	Collapsed bool
}

// ShapeTag reports one logical kind for every instantiation of Panel.
func (Panel[C]) ShapeTag() string {
	return "loom.widgets.Panel"
}

// ChildWidget exposes the child without the type parameter so the state,
// which is not parameterized, can reach it.
func (p Panel[C]) ChildWidget() core.Widget {
	return p.Child
}

func (p Panel[C]) CreateState() core.State {
	return &panelState{collapsed: p.Collapsed}
}

// panelChild is the parameter-free view of a Panel the state builds from.
type panelChild interface {
	ChildWidget() core.Widget
}

type panelState struct {
	core.StateBase
	collapsed bool
}

// Toggle flips the collapsed state and schedules a rebuild.
func (s *panelState) Toggle() {
	s.SetState(func() {
		s.collapsed = !s.collapsed
	})
}

// IsCollapsed reports the current collapsed state.
func (s *panelState) IsCollapsed() bool {
	return s.collapsed
}

func (s *panelState) Build(ctx core.BuildContext) core.Widget {
	if s.collapsed {
		return Box{}
	}
	return Box{ChildWidget: ctx.Widget().(panelChild).ChildWidget()}
}
