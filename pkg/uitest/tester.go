package uitest

import (
	"errors"
	"testing"

	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/render"
	"github.com/loom-ui/loom/pkg/runtime"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// ErrSettleTimeout is returned when Settle exceeds its frame budget.
var ErrSettleTimeout = errors.New("Settle exceeded frame budget: tree did not settle")

// Tester drives a widget tree through build and layout frames without a
// platform surface. It wraps a private runtime loop and pumps it
// synchronously, so tests stay deterministic.
type Tester struct {
	loop *runtime.Loop
	size graphics.Size
}

// NewTester creates a tester with the default surface size.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	return &Tester{
		loop: runtime.NewLoop(),
		size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup.
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree, running every disposer in it.
func (t *Tester) Cleanup() {
	t.loop.SetRoot(nil)
	// Drain the unmount through one frame; a nil root is not an error here.
	_ = t.loop.StepFrame(t.size)
}

// SetSize sets the logical surface size used by subsequent pumps.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
}

// Loop exposes the underlying runtime loop, mainly for completion tests.
func (t *Tester) Loop() *runtime.Loop {
	return t.loop
}

// PumpWidget mounts (or remounts) a widget and runs one full frame.
func (t *Tester) PumpWidget(widget core.Widget) error {
	t.loop.SetRoot(widget)
	return t.loop.StepFrame(t.size)
}

// Pump runs a single frame: dispatched callbacks, rebuilds, layout.
func (t *Tester) Pump() error {
	return t.loop.StepFrame(t.size)
}

// Settle pumps frames until no work remains, up to maxFrames. A tree whose
// builds keep dirtying each other will hit the budget instead of hanging.
func (t *Tester) Settle(maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.loop.NeedsFrame() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// Dispatch queues a callback for the next frame, mirroring the runtime's
// cross-goroutine entry point.
func (t *Tester) Dispatch(fn func()) {
	t.loop.Dispatch(fn)
}

// Root returns the root element of the mounted tree, or nil before the
// first PumpWidget.
func (t *Tester) Root() core.Element {
	return t.loop.Root()
}

// RootRender returns the root of the laid-out render tree.
func (t *Tester) RootRender() render.RenderObject {
	return t.loop.RootRender()
}

// Find evaluates a finder against the mounted tree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{elements: finder.Evaluate(t.loop.Root()), finder: finder}
}

// StateOf returns the state object of the first element matched by finder.
// Panics if the element is not backed by a stateful widget.
func (t *Tester) StateOf(finder Finder) core.State {
	element := t.Find(finder).First()
	stateful, ok := element.(*core.StatefulElement)
	if !ok {
		panic("StateOf: matched element is not stateful")
	}
	return stateful.State()
}
