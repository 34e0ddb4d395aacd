package errors

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

type recordingHandler struct {
	errs        []*FrameworkError
	panics      []*PanicError
	buildErrors []*BuildError
}

func (h *recordingHandler) HandleError(err *FrameworkError)  { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *PanicError)      { h.panics = append(h.panics, err) }
func (h *recordingHandler) HandleBuildError(err *BuildError) { h.buildErrors = append(h.buildErrors, err) }

func TestFrameworkError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := &FrameworkError{Op: "core.Mount", Kind: KindBuild, Err: cause}

	if !strings.Contains(err.Error(), "core.Mount") {
		t.Errorf("expected Op in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestErrorKind_String(t *testing.T) {
	cases := map[ErrorKind]string{
		KindUnknown: "unknown",
		KindConfig:  "config",
		KindBuild:   "build",
		KindRender:  "render",
		KindPanic:   "panic",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind %d String() = %q, want %q", kind, got, want)
		}
	}
}

func TestReport_FillsTimestampAndDispatches(t *testing.T) {
	handler := &recordingHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	Report(&FrameworkError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("x")})

	if len(handler.errs) != 1 {
		t.Fatalf("expected 1 handled error, got %d", len(handler.errs))
	}
	if handler.errs[0].Timestamp.IsZero() {
		t.Error("expected a zero timestamp to be filled")
	}
}

func TestReport_PreservesExplicitTimestamp(t *testing.T) {
	handler := &recordingHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	Report(&FrameworkError{Op: "test.op", Timestamp: at})

	if !handler.errs[0].Timestamp.Equal(at) {
		t.Errorf("expected timestamp %v preserved, got %v", at, handler.errs[0].Timestamp)
	}
}

func TestReport_NilIsIgnored(t *testing.T) {
	handler := &recordingHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	Report(nil)
	ReportPanic(nil)
	ReportBuildError(nil)

	if len(handler.errs)+len(handler.panics)+len(handler.buildErrors) != 0 {
		t.Error("expected nil reports to be dropped")
	}
}

func TestRecover_CapturesPanic(t *testing.T) {
	handler := &recordingHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	func() {
		defer Recover("test.operation")
		panic("recovered value")
	}()

	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 recovered panic, got %d", len(handler.panics))
	}
	got := handler.panics[0]
	if got.Op != "test.operation" {
		t.Errorf("expected op 'test.operation', got %q", got.Op)
	}
	if got.Value != "recovered value" {
		t.Errorf("expected value 'recovered value', got %v", got.Value)
	}
	if got.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecover_NoPanicNoReport(t *testing.T) {
	handler := &recordingHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	func() {
		defer Recover("test.operation")
	}()

	if len(handler.panics) != 0 {
		t.Errorf("expected no report without a panic, got %d", len(handler.panics))
	}
}

func TestSetHandler_NilRestoresDefault(t *testing.T) {
	SetHandler(&recordingHandler{})
	SetHandler(nil)

	if _, ok := getHandler().(*LogHandler); !ok {
		t.Errorf("expected the default LogHandler, got %T", getHandler())
	}
}

func TestBuildError_Message(t *testing.T) {
	err := &BuildError{Widget: "app.Header", Recovered: "nil deref"}
	msg := err.Error()
	if !strings.Contains(msg, "app.Header") || !strings.Contains(msg, "nil deref") {
		t.Errorf("expected widget and recovered value in message, got %q", msg)
	}
}

// captureForTest adds the reporting-helper frame CaptureStack expects to skip.
func captureForTest() string {
	return CaptureStack()
}

func TestCaptureStack_NamesCaller(t *testing.T) {
	stack := captureForTest()
	if !strings.Contains(stack, "TestCaptureStack_NamesCaller") {
		t.Errorf("expected the caller in the stack, got:\n%s", stack)
	}
}
