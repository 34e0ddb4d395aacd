package errors

import (
	"go.uber.org/zap"
)

// ZapHandler is an ErrorHandler that emits structured logs through a
// zap.Logger. Use it when the embedding application already routes its
// logs through zap:
//
//	logger, _ := zap.NewProduction()
//	errors.SetHandler(errors.NewZapHandler(logger))
type ZapHandler struct {
	logger *zap.Logger
}

// NewZapHandler creates a handler backed by the given logger.
// A nil logger falls back to zap.NewNop().
func NewZapHandler(logger *zap.Logger) *ZapHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHandler{logger: logger}
}

// HandleError logs a FrameworkError.
func (h *ZapHandler) HandleError(err *FrameworkError) {
	if err == nil {
		return
	}
	h.logger.Error("framework error",
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
		zap.Time("at", err.Timestamp),
	)
}

// HandlePanic logs a recovered panic.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.logger.Error("recovered panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
		zap.Time("at", err.Timestamp),
	)
}

// HandleBuildError logs a widget build fault.
func (h *ZapHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	h.logger.Error("widget build fault",
		zap.String("widget", err.Widget),
		zap.String("element", err.Element),
		zap.Any("recovered", err.Recovered),
		zap.Error(err.Err),
		zap.Time("at", err.Timestamp),
	)
}
