package core

import (
	"reflect"
	"testing"
)

// testInheritedWidget publishes an int to its subtree.
type testInheritedWidget struct {
	value int
	child Widget
}

func (w testInheritedWidget) CreateElement() Element {
	return NewInheritedElement(w, nil)
}

func (w testInheritedWidget) Key() any { return nil }

func (w testInheritedWidget) ChildWidget() Widget { return w.child }

func (w testInheritedWidget) UpdateShouldNotify(old InheritedWidget) bool {
	previous, ok := old.(testInheritedWidget)
	return !ok || previous.value != w.value
}

var inheritedKey = reflect.TypeOf(testInheritedWidget{})

// readValue reads the published int, registering ctx as a dependent.
func readValue(ctx BuildContext) (int, bool) {
	published := ctx.DependOnInherited(inheritedKey)
	if published == nil {
		return 0, false
	}
	return published.(testInheritedWidget).value, true
}

// readerWidget is a comparable stateful widget, so an unchanged description
// takes the equal-description short circuit and the reader only rebuilds
// when the registry dirties it.
type readerWidget struct {
	fixture *inheritedFixture
}

func (w readerWidget) CreateElement() Element { return NewStatefulElement(w, nil) }
func (w readerWidget) Key() any               { return nil }
func (w readerWidget) CreateState() State     { return &readerState{fixture: w.fixture} }

type readerState struct {
	StateBase
	fixture    *inheritedFixture
	silent     bool
	depChanges int
}

func (s *readerState) DidChangeDependencies() { s.depChanges++ }

func (s *readerState) Build(ctx BuildContext) Widget {
	if s.silent {
		return nil
	}
	if v, ok := readValue(ctx); ok {
		s.fixture.seen = append(s.fixture.seen, v)
	}
	return nil
}

// inheritedFixture mounts value-publisher -> stateful reader and exposes
// the pieces tests poke at.
type inheritedFixture struct {
	owner *BuildOwner
	root  *StatelessElement
	value int
	seen  []int
}

func newInheritedFixture(t *testing.T) *inheritedFixture {
	t.Helper()
	f := &inheritedFixture{owner: NewBuildOwner(), value: 1}
	f.root = NewStatelessElement(testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			return testInheritedWidget{value: f.value, child: readerWidget{fixture: f}}
		},
	}, f.owner)
	f.root.Mount(nil, nil)
	return f
}

func (f *inheritedFixture) publisher(t *testing.T) *InheritedElement {
	t.Helper()
	inherited, ok := f.root.child.(*InheritedElement)
	if !ok {
		t.Fatalf("expected InheritedElement below root, got %T", f.root.child)
	}
	return inherited
}

func (f *inheritedFixture) reader(t *testing.T) *StatefulElement {
	t.Helper()
	reader, ok := f.publisher(t).child.(*StatefulElement)
	if !ok {
		t.Fatalf("expected StatefulElement below publisher, got %T", f.publisher(t).child)
	}
	return reader
}

func (f *inheritedFixture) republish(value int) {
	f.value = value
	f.root.MarkNeedsBuild()
	f.owner.FlushBuild()
}

func TestInherited_ReadReturnsNearestValue(t *testing.T) {
	f := newInheritedFixture(t)
	if len(f.seen) != 1 || f.seen[0] != 1 {
		t.Fatalf("expected initial read of 1, got %v", f.seen)
	}
	if f.publisher(t).DependentCount() != 1 {
		t.Errorf("expected 1 registered dependent, got %d", f.publisher(t).DependentCount())
	}
}

func TestInherited_ChangedValueRebuildsDependent(t *testing.T) {
	f := newInheritedFixture(t)

	f.republish(2)

	if len(f.seen) != 2 || f.seen[1] != 2 {
		t.Fatalf("expected dependent to rebuild with 2, got %v", f.seen)
	}
	state := f.reader(t).State().(*readerState)
	if state.depChanges != 1 {
		t.Errorf("expected DidChangeDependencies called once, got %d", state.depChanges)
	}
}

func TestInherited_EqualValueNotifiesNobody(t *testing.T) {
	f := newInheritedFixture(t)

	f.republish(1)

	if len(f.seen) != 1 {
		t.Fatalf("expected no dependent rebuild for an equal value, got %v", f.seen)
	}
	if state := f.reader(t).State().(*readerState); state.depChanges != 0 {
		t.Errorf("expected no dependency change callback, got %d", state.depChanges)
	}
}

func TestInherited_DependentSetClearedAfterNotify(t *testing.T) {
	f := newInheritedFixture(t)
	publisher := f.publisher(t)

	f.republish(2)

	// The dependent re-registered during its rebuild, so the count is back
	// to one, not two: the set was cleared before the rebuild re-added it.
	if publisher.DependentCount() != 1 {
		t.Errorf("expected exactly 1 dependent after republish, got %d", publisher.DependentCount())
	}

	// A reader that stops reading stays unregistered.
	f.reader(t).State().(*readerState).silent = true
	f.republish(3)
	if publisher.DependentCount() != 0 {
		t.Errorf("expected no dependents after the reader stopped reading, got %d", publisher.DependentCount())
	}
}

func TestInherited_UnmountUnregistersDependent(t *testing.T) {
	f := newInheritedFixture(t)
	publisher := f.publisher(t)
	reader := f.reader(t)

	reader.Unmount()

	if publisher.DependentCount() != 0 {
		t.Errorf("expected unmount to unregister the dependent, got %d", publisher.DependentCount())
	}
}

func TestInherited_DanglingReadReturnsNil(t *testing.T) {
	owner := NewBuildOwner()
	var got any = "sentinel"
	root := NewStatelessElement(testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			got = ctx.DependOnInherited(inheritedKey)
			return nil
		},
	}, owner)
	root.Mount(nil, nil)

	if got != nil {
		t.Errorf("expected nil for an absent publication, got %v", got)
	}
}

func TestInherited_NearerPublicationShadows(t *testing.T) {
	owner := NewBuildOwner()
	var seen []int
	reader := testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
		if v, ok := readValue(ctx); ok {
			seen = append(seen, v)
		}
		return nil
	}}
	root := NewStatelessElement(testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			return testInheritedWidget{value: 1, child: testInheritedWidget{value: 2, child: reader}}
		},
	}, owner)
	root.Mount(nil, nil)

	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("expected the nearer publication (2) to win, got %v", seen)
	}
}

// taggedInherited publishes under an explicit shape tag, so two generic
// instantiations would share one publication identity.
type taggedInherited struct {
	label string
	child Widget
}

func (w taggedInherited) CreateElement() Element  { return NewInheritedElement(w, nil) }
func (w taggedInherited) Key() any                { return nil }
func (w taggedInherited) ShapeTag() string        { return "core.test.taggedInherited" }
func (w taggedInherited) ChildWidget() Widget     { return w.child }
func (w taggedInherited) UpdateShouldNotify(old InheritedWidget) bool {
	previous, ok := old.(taggedInherited)
	return !ok || previous.label != w.label
}

func TestInherited_LookupByShapeTag(t *testing.T) {
	owner := NewBuildOwner()
	var got any
	root := NewStatelessElement(testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			return taggedInherited{label: "hello", child: testStatelessWidget{
				buildFn: func(ctx BuildContext) Widget {
					got = ctx.DependOnInherited("core.test.taggedInherited")
					return nil
				},
			}}
		},
	}, owner)
	root.Mount(nil, nil)

	published, ok := got.(taggedInherited)
	if !ok {
		t.Fatalf("expected a taggedInherited publication, got %T", got)
	}
	if published.label != "hello" {
		t.Errorf("expected label 'hello', got %q", published.label)
	}
}
