package widgets_test

import (
	"testing"

	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/uitest"
	"github.com/loom-ui/loom/pkg/widgets"
)

func TestText_MeasuresContent(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Column{ChildWidgets: []core.Widget{
		widgets.Text{Content: "hello"},
	}}); err != nil {
		t.Fatal(err)
	}

	result := tester.Find(uitest.ByText("hello"))
	if !result.Exists() {
		t.Fatal("expected to find the text element")
	}
	size := result.RenderObject().Size()
	if size.Height != 16 {
		t.Errorf("expected line height 16, got %v", size.Height)
	}
	if size.Width != 5*8 {
		t.Errorf("expected 5 glyphs at advance 8, got width %v", size.Width)
	}
}

func TestText_ContentUpdateRelaysOut(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	content := "before"

	// Inside a Column the text gets loose constraints and sizes to content;
	// a root-level text would be clamped to the tight surface size instead.
	if err := tester.PumpWidget(widgets.Column{ChildWidgets: []core.Widget{
		widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
			return widgets.Text{Content: content}
		}},
	}}); err != nil {
		t.Fatal(err)
	}
	textElement := tester.Find(uitest.ByText("before")).First()

	content = "after a change"
	rebuildRoot(t, tester)

	after := tester.Find(uitest.ByText("after a change"))
	if !after.Exists() {
		t.Fatal("expected the updated text to be found")
	}
	if after.First() != textElement {
		t.Error("expected the text element to be updated in place")
	}
	if got := after.RenderObject().Size().Width; got != float64(len("after a change"))*8 {
		t.Errorf("expected re-layout to the new width, got %v", got)
	}
}

func TestColumn_StacksChildrenVertically(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 200, Height: 100})
	if err := tester.PumpWidget(widgets.Column{ChildWidgets: []core.Widget{
		widgets.Text{Content: "one"},
		widgets.Text{Content: "two"},
		widgets.Text{Content: "three"},
	}}); err != nil {
		t.Fatal(err)
	}

	column := tester.Find(uitest.ByType[widgets.Column]()).RenderObject()
	offsets, ok := column.(interface{ ChildOffset(int) graphics.Offset })
	if !ok {
		t.Fatalf("expected a column render object, got %T", column)
	}
	for i, wantY := range []float64{0, 16, 32} {
		if got := offsets.ChildOffset(i).Y; got != wantY {
			t.Errorf("child %d at y=%v, want %v", i, got, wantY)
		}
	}
}

func TestBox_SizesToChild(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Column{ChildWidgets: []core.Widget{
		widgets.Box{ChildWidget: widgets.Text{Content: "abcd"}},
	}}); err != nil {
		t.Fatal(err)
	}

	box := tester.Find(uitest.ByType[widgets.Box]()).RenderObject()
	want := graphics.Size{Width: 32, Height: 16}
	if box.Size() != want {
		t.Errorf("expected box sized to its child %v, got %v", want, box.Size())
	}
}

func TestKeyedSubtree_PreservesStateAcrossReorder(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	order := []string{"a", "b"}

	if err := tester.PumpWidget(widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
		children := make([]core.Widget, len(order))
		for i, k := range order {
			children[i] = widgets.KeyedSubtree{KeyValue: k, Child: widgets.Text{Content: k}}
		}
		return widgets.Column{ChildWidgets: children}
	}}); err != nil {
		t.Fatal(err)
	}
	elementA := tester.Find(uitest.ByKey("a")).First()
	elementB := tester.Find(uitest.ByKey("b")).First()

	order = []string{"b", "a"}
	rebuildRoot(t, tester)

	if tester.Find(uitest.ByKey("a")).First() != elementA {
		t.Error("expected keyed element a to be reused across the reorder")
	}
	if tester.Find(uitest.ByKey("b")).First() != elementB {
		t.Error("expected keyed element b to be reused across the reorder")
	}
	if got := elementB.Slot().(core.IndexedSlot).Index; got != 0 {
		t.Errorf("expected b moved to index 0, got %d", got)
	}
}

// rebuildRoot dirties the root element and pumps one frame.
func rebuildRoot(t *testing.T, tester *uitest.Tester) {
	t.Helper()
	tester.Root().MarkNeedsBuild()
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
}

func TestPanel_StateSurvivesGenericParameterChange(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	useText := true

	if err := tester.PumpWidget(widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
		if useText {
			return widgets.Panel[widgets.Text]{Child: widgets.Text{Content: "inner"}}
		}
		return widgets.Panel[widgets.Column]{Child: widgets.Column{ChildWidgets: []core.Widget{
			widgets.Text{Content: "inner"},
		}}}
	}}); err != nil {
		t.Fatal(err)
	}
	panelFinder := uitest.ByPredicate(func(e core.Element) bool {
		_, ok := e.Widget().(core.ShapeTagger)
		return ok && e.Widget().(core.ShapeTagger).ShapeTag() == "loom.widgets.Panel"
	})
	panelElement := tester.Find(panelFinder).First()
	state := tester.StateOf(panelFinder)

	useText = false
	rebuildRoot(t, tester)

	if tester.Find(panelFinder).First() != panelElement {
		t.Error("expected the panel element to survive the type parameter change")
	}
	if tester.StateOf(panelFinder) != state {
		t.Error("expected the panel state identity to survive the type parameter change")
	}
}

func TestPanel_ToggleCollapses(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Panel[widgets.Text]{
		Child: widgets.Text{Content: "body"},
	}); err != nil {
		t.Fatal(err)
	}
	if !tester.Find(uitest.ByText("body")).Exists() {
		t.Fatal("expected the child to be visible initially")
	}

	toggler := tester.StateOf(uitest.ByPredicate(func(e core.Element) bool {
		_, ok := e.Widget().(widgets.Panel[widgets.Text])
		return ok
	})).(interface{ Toggle() })
	toggler.Toggle()
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if tester.Find(uitest.ByText("body")).Exists() {
		t.Error("expected the child to be hidden while collapsed")
	}
}

func TestProvider_ValueReachesDescendants(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Provider[string]{
		Value: "dark",
		Child: widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
			theme, ok := widgets.ProviderOf[string](ctx)
			if !ok {
				theme = "unset"
			}
			return widgets.Text{Content: "theme: " + theme}
		}},
	}); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(uitest.ByText("theme: dark")).Exists() {
		t.Error("expected the provided value to reach the reader")
	}
}

func TestProvider_AbsentPublisherIsNotAnError(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
		_, ok := widgets.ProviderOf[int](ctx)
		if ok {
			return widgets.Text{Content: "found"}
		}
		return widgets.Text{Content: "absent"}
	}}); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(uitest.ByText("absent")).Exists() {
		t.Error("expected an absent publication to resolve gracefully")
	}
}

func TestProvider_TaggedPublicationsAreDistinct(t *testing.T) {
	tester := uitest.NewTesterWithT(t)
	if err := tester.PumpWidget(widgets.Provider[int]{
		Value: 1,
		Tag:   "width",
		Child: widgets.Provider[int]{
			Value: 2,
			Tag:   "height",
			Child: widgets.Builder{BuildFn: func(ctx core.BuildContext) core.Widget {
				width, _ := widgets.ProviderWithTag[int](ctx, "width")
				height, _ := widgets.ProviderWithTag[int](ctx, "height")
				if width == 1 && height == 2 {
					return widgets.Text{Content: "both"}
				}
				return widgets.Text{Content: "mixed"}
			}},
		},
	}); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(uitest.ByText("both")).Exists() {
		t.Error("expected tagged publications to resolve independently")
	}
}
