package errors

import (
	"context"
	"fmt"
	"io"

	"github.com/shuldan/clikit/pkg/contracts"
)

const (
	ExitFailure       = 1
	ExitUsage         = 2
	ExitConfiguration = 78
)

type ConsoleErrorHandler struct {
	output    io.Writer
	logger    contracts.Logger
	showStack bool
}

func NewConsoleErrorHandler(output io.Writer, logger contracts.Logger) *ConsoleErrorHandler {
	return &ConsoleErrorHandler{
		output: output,
		logger: logger,
	}
}

func (h *ConsoleErrorHandler) WithShowStackTrace(show bool) *ConsoleErrorHandler {
	h.showStack = show
	return h
}

func (h *ConsoleErrorHandler) Handle(_ context.Context, err error) error {
	if err == nil {
		return nil
	}

	h.log(err)

	if h.output == nil {
		return err
	}

	if _, writeErr := fmt.Fprintf(h.output, "\n  %s\n\n", Message(err)); writeErr != nil {
		return err
	}

	if h.showStack {
		var e *Error
		if As(err, &e) && e.Stack != "" {
			_, _ = fmt.Fprintln(h.output, e.Stack)
		}
	}

	return nil
}

func (h *ConsoleErrorHandler) log(err error) {
	if h.logger == nil {
		return
	}

	args := []any{"error", err.Error()}
	if code := GetErrorCode(err); code != "" {
		args = append(args, "code", string(code))
	}

	switch CategoryOf(err) {
	case ErrValidation, ErrAborted:
		h.logger.Warn("command input rejected", args...)
	case ErrConfiguration:
		h.logger.Critical("invalid console configuration", args...)
	default:
		h.logger.Error("command failed", args...)
	}
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CategoryOf(err) {
	case ErrValidation:
		return ExitUsage
	case ErrConfiguration:
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
