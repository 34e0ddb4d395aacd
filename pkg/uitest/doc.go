// Package uitest provides a widget testing harness for Loom.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := uitest.NewTesterWithT(t)
//	    tester.PumpWidget(MyWidget{})
//
//	    // Find elements
//	    label := tester.Find(uitest.ByText("Hello")).First()
//
//	    // Mutate state on the tree-owner timeline
//	    tester.Dispatch(func() { /* ... */ })
//	    tester.Pump()
//
//	    // Assert the result
//	    if !tester.Find(uitest.ByText("Updated")).Exists() {
//	        t.Error("expected 'Updated' text")
//	    }
//	}
//
// The tester drives the same build and layout phases as the runtime loop
// but pumps frames synchronously, so tests are deterministic and need no
// platform surface.
package uitest
