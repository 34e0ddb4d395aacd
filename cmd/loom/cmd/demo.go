package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/core"
	"github.com/loom-ui/loom/pkg/graphics"
	"github.com/loom-ui/loom/pkg/runtime"
	"github.com/loom-ui/loom/pkg/widgets"
)

var demoFrames int

// demoCmd pumps a small counter app through headless frames and prints the
// element tree after each one. Useful for eyeballing reconciliation without
// an embedder.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a headless counter app and print its tree per frame",
	RunE: func(cmd *cobra.Command, args []string) error {
		loop := runtime.NewLoop()
		loop.SetRoot(counterApp())
		size := graphics.Size{Width: 400, Height: 300}

		for frame := 0; frame < demoFrames; frame++ {
			if err := loop.StepFrame(size); err != nil {
				return err
			}
			fmt.Printf("frame %d:\n%s", frame, dumpTree(loop.Root()))
			if state, ok := findCounter(loop.Root()); ok {
				state.increment()
			}
		}
		return nil
	},
}

func counterApp() core.Widget {
	return &counterWidget{}
}

type counterWidget struct {
	core.StatefulBase
}

func (w *counterWidget) CreateState() core.State { return &counterState{} }

type counterState struct {
	core.StateBase
	count int
}

func (s *counterState) increment() {
	s.SetState(func() { s.count++ })
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Column{ChildWidgets: []core.Widget{
		widgets.Text{Content: "Counter"},
		widgets.Text{Content: fmt.Sprintf("Pressed %d times.", s.count)},
	}}
}

func findCounter(root core.Element) (*counterState, bool) {
	var found *counterState
	var walk func(core.Element)
	walk = func(e core.Element) {
		if found != nil {
			return
		}
		if stateful, ok := e.(*core.StatefulElement); ok {
			if state, ok := stateful.State().(*counterState); ok {
				found = state
				return
			}
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return found == nil
		})
	}
	if root != nil {
		walk(root)
	}
	return found, found != nil
}

func dumpTree(root core.Element) string {
	var b strings.Builder
	var walk func(e core.Element, depth int)
	walk = func(e core.Element, depth int) {
		b.WriteString(strings.Repeat("  ", depth+1))
		fmt.Fprintf(&b, "%T", e.Widget())
		if text, ok := e.Widget().(widgets.Text); ok {
			fmt.Fprintf(&b, " %q", text.Content)
		}
		b.WriteByte('\n')
		e.VisitChildren(func(child core.Element) bool {
			walk(child, depth+1)
			return true
		})
	}
	if root != nil {
		walk(root, 0)
	}
	return b.String()
}

func init() {
	demoCmd.Flags().IntVar(&demoFrames, "frames", 3, "number of frames to pump")
	RootCmd.AddCommand(demoCmd)
}
