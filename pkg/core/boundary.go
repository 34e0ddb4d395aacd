package core

import "github.com/loom-ui/loom/pkg/errors"

// ErrorBoundaryCapture is implemented by elements that want to observe
// build faults from descendant widgets. The faulted element keeps its
// last-good subtree either way; a boundary exists so an application can
// surface the fault (banner, telemetry) without tearing anything down.
type ErrorBoundaryCapture interface {
	// CaptureError receives a build fault from a descendant widget.
	// Returning true stops the fault from being offered to boundaries
	// further up the tree.
	CaptureError(err *errors.BuildError) bool
}
