package errors

import (
	"github.com/go-drift/semkit/pkg/logger"
)

// LogHandler is an ErrorHandler that logs errors through a structured logger.
type LogHandler struct {
	// Logger receives the entries. Nil means logger.Default().
	Logger *logger.Logger
	// Verbose adds stack traces to the entries.
	Verbose bool
}

func (h *LogHandler) log() *logger.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logger.Default()
}

// HandleError logs a ModelError.
func (h *LogHandler) HandleError(err *ModelError) {
	if err == nil {
		return
	}
	fields := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Entity != "" {
		fields = append(fields, "entity", err.Entity)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	h.log().Errorw(errorText(err.Err), fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []any{"value", err.Value}
	if err.Op != "" {
		fields = append(fields, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	h.log().Errorw("panic recovered", fields...)
}

func errorText(err error) string {
	if err == nil {
		return "error"
	}
	return err.Error()
}
