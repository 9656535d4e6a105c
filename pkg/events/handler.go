package events

import (
	"fmt"
	"os"

	"github.com/shuldan/clikit/pkg/contracts"
)

type PanicHandler interface {
	Handle(event any, listener any, panicValue any, stack []byte)
}

type ErrorHandler interface {
	Handle(event any, listener any, err error)
}

func NewDefaultPanicHandler(logger contracts.Logger) PanicHandler {
	return &logHandler{logger: logger}
}

func NewDefaultErrorHandler(logger contracts.Logger) ErrorHandler {
	return errorLogHandler{logHandler{logger: logger}}
}

type logHandler struct {
	logger contracts.Logger
}

func (h *logHandler) Handle(event any, listener any, panicValue any, stack []byte) {
	if h.logger == nil {
		_, _ = fmt.Fprintf(os.Stderr, "event listener panic: event=%T listener=%v panic=%v\n%s", event, listener, panicValue, stack)
		return
	}
	h.logger.Critical("event listener panic",
		"event", fmt.Sprintf("%T", event),
		"listener", listener,
		"panic", panicValue,
		"stack", string(stack),
	)
}

type errorLogHandler struct {
	logHandler
}

func (h errorLogHandler) Handle(event any, listener any, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Error("event listener failed", "event", fmt.Sprintf("%T", event), "listener", listener, "error", err)
}
