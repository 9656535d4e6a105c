package errors

import (
	"context"

	"github.com/shuldan/clikit/pkg/contracts"
)

type ChainErrorHandler struct {
	handlers []contracts.ErrorHandler
}

func NewChainErrorHandler(handlers ...contracts.ErrorHandler) *ChainErrorHandler {
	c := &ChainErrorHandler{}
	for _, handler := range handlers {
		c.Add(handler)
	}
	return c
}

func (c *ChainErrorHandler) Add(handler contracts.ErrorHandler) *ChainErrorHandler {
	if handler != nil {
		c.handlers = append(c.handlers, handler)
	}
	return c
}

func (c *ChainErrorHandler) Handle(ctx context.Context, err error) error {
	for _, handler := range c.handlers {
		if err == nil {
			break
		}
		err = handler.Handle(ctx, err)
	}
	return err
}

type IgnoreHandler struct {
	targets []error
}

func NewIgnoreHandler(targets ...error) *IgnoreHandler {
	return &IgnoreHandler{targets: targets}
}

func (h *IgnoreHandler) Handle(_ context.Context, err error) error {
	for _, target := range h.targets {
		if Is(err, target) {
			return nil
		}
	}
	return err
}
