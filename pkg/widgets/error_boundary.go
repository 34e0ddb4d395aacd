package widgets

import (
	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/errors"
)

// ErrorBoundary observes build faults from its descendant widgets. The
// faulted element keeps its last-good subtree either way; the boundary is
// how an application surfaces the fault (banner, telemetry) without the
// framework tearing anything down.
type ErrorBoundary struct {
	// Child is the observed subtree.
	Child core.Widget
	// OnError receives each descendant build fault. Return true to mark the
	// fault handled. A nil callback leaves faults unhandled.
	OnError func(err *errors.BuildError) bool
}

func (b ErrorBoundary) CreateElement() core.Element {
	return &errorBoundaryElement{}
}

func (b ErrorBoundary) Key() any {
	return nil
}

func (b ErrorBoundary) Build(ctx core.BuildContext) core.Widget {
	return b.Child
}

type errorBoundaryElement struct {
	core.StatelessElement
}

// CaptureError satisfies core.ErrorBoundaryCapture.
func (e *errorBoundaryElement) CaptureError(err *errors.BuildError) bool {
	boundary, ok := e.Widget().(ErrorBoundary)
	if !ok || boundary.OnError == nil {
		return false
	}
	return boundary.OnError(err)
}
