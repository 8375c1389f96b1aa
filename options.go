package futures

import (
	"log/slog"
)

type ErrorHandler interface {
	CatchError(task Task, e error)
}

type ErrorHandlerFunc func(task Task, e error)

func (f ErrorHandlerFunc) CatchError(task Task, e error) {
	f(task, e)
}

type _QueueOption func(opts *queueOptions)

type queueOptions struct {
	MaxConcurrent int
	ErrorHandler  ErrorHandler
	Logger        *slog.Logger
}

var _DefaultQueueOptions = queueOptions{
	MaxConcurrent: 10,
	ErrorHandler:  LogErrorHandler{},
	Logger:        slog.Default(),
}

func WithMaxConcurrent(concurrent int) _QueueOption {
	return func(opts *queueOptions) {
		opts.MaxConcurrent = concurrent
	}
}

func WithErrorHandler(handler ErrorHandler) _QueueOption {
	return func(opts *queueOptions) {
		opts.ErrorHandler = handler
	}
}

func WithLogger(logger *slog.Logger) _QueueOption {
	return func(opts *queueOptions) {
		opts.Logger = logger
	}
}
