package futures

import (
	"log/slog"
)

// NoopErrorHandler repanics, killing the worker that hit the error.
type NoopErrorHandler struct {
}

func (d NoopErrorHandler) CatchError(task Task, e error) {
	panic(e)
}

type LogErrorHandler struct {
}

func (d LogErrorHandler) CatchError(task Task, e error) {
	slog.Error("catch error", slog.Any("cause", e))
}

type DiscardErrorHandler struct {
}

func (d DiscardErrorHandler) CatchError(task Task, e error) {
}
