package core

// StatelessBase provides default CreateElement and Key implementations for
// stateless widgets. Embed it in your widget struct to satisfy the Widget
// interface without boilerplate:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
//
//	func (g Greeting) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: "Hello, " + g.Name}
//	}
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return NewStatelessElement(nil, nil) }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// StatefulBase provides default CreateElement and Key implementations for
// stateful widgets:
//
//	type Counter struct {
//	    core.StatefulBase
//	}
//
//	func (Counter) CreateState() core.State { return &counterState{} }
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return NewStatefulElement(nil, nil) }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }

// InheritedBase provides default CreateElement and Key implementations for
// inherited widgets. Embed it alongside a Child field and implement
// [InheritedWidget.UpdateShouldNotify] and [InheritedWidget.ChildWidget].
type InheritedBase struct{}

// CreateElement returns a new InheritedElement.
func (InheritedBase) CreateElement() Element { return NewInheritedElement(nil, nil) }

// Key returns nil (no key).
func (InheritedBase) Key() any { return nil }

// RenderBase provides default CreateElement and Key implementations for
// render object widgets.
type RenderBase struct{}

// CreateElement returns a new RenderObjectElement.
func (RenderBase) CreateElement() Element { return NewRenderObjectElement(nil, nil) }

// Key returns nil (no key).
func (RenderBase) Key() any { return nil }

// Stateful creates an inline stateful widget using closures. Use it for
// quick, self-contained fragments that don't need lifecycle hooks:
//
//	widget := core.Stateful(
//	    func() int { return 0 },
//	    func(count int, ctx core.BuildContext, setState func(func(int) int)) core.Widget {
//	        return widgets.Text{Content: fmt.Sprintf("Count: %d", count)}
//	    },
//	)
//
// The state type is the generic parameter, so two instantiations with
// different S are different logical kinds: the persistent state is itself
// parameterized and cannot survive a change of S. Generic widgets whose
// state does not depend on the parameter should implement ShapeTagger
// instead (see widgets.Panel).
func Stateful[S any](
	init func() S,
	build func(state S, ctx BuildContext, setState func(func(S) S)) Widget,
) Widget {
	return &inlineStatefulWidget[S]{
		initFn:  init,
		buildFn: build,
	}
}

type inlineStatefulWidget[S any] struct {
	initFn  func() S
	buildFn func(state S, ctx BuildContext, setState func(func(S) S)) Widget
}

func (w *inlineStatefulWidget[S]) CreateElement() Element {
	return NewStatefulElement(w, nil)
}

func (w *inlineStatefulWidget[S]) Key() any { return nil }

func (w *inlineStatefulWidget[S]) CreateState() State {
	return &inlineStatefulState[S]{initFn: w.initFn}
}

type inlineStatefulState[S any] struct {
	StateBase
	value  S
	initFn func() S
}

func (s *inlineStatefulState[S]) InitState() {
	s.value = s.initFn()
}

func (s *inlineStatefulState[S]) Build(ctx BuildContext) Widget {
	// Read the build closure from the current description so a swapped-in
	// widget's closure is used, not the one captured at creation.
	widget := ctx.Widget().(*inlineStatefulWidget[S])
	return widget.buildFn(s.value, ctx, func(update func(S) S) {
		s.SetState(func() {
			s.value = update(s.value)
		})
	})
}
