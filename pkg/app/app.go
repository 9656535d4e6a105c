package app

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/shuldan/clikit/pkg/contracts"
)

type app struct {
	container       contracts.DIContainer
	registry        contracts.AppRegistry
	info            Info
	started         atomic.Bool
	shutdownTimeout time.Duration
	signals         []os.Signal
}

func WithGracefulTimeout(timeout time.Duration) func(*app) {
	return func(a *app) {
		a.shutdownTimeout = timeout
	}
}

func WithSignals(sig ...os.Signal) func(*app) {
	return func(a *app) {
		a.signals = sig
	}
}

var defaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

func (a *app) Register(module contracts.AppModule) error {
	return a.registry.Register(module)
}

func (a *app) Run() error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAppRun.WithDetail("reason", "Run may only be called once")
	}

	parent := context.Background()
	if len(a.signals) > 0 {
		var stop context.CancelFunc
		parent, stop = signal.NotifyContext(parent, a.signals...)
		defer stop()
	}

	ctx := newAppContext(parent, a.info, a.container)
	defer ctx.Stop()

	modules := a.registry.All()
	for _, module := range modules {
		if err := module.Register(a.container); err != nil {
			return ErrModuleRegister.WithDetail("module", module.Name()).WithCause(err)
		}
	}

	for i, module := range modules {
		if err := module.Start(ctx); err != nil {
			ctx.Stop()
			_ = stopReverse(ctx, modules[:i])
			return ErrModuleStart.WithDetail("module", module.Name()).WithCause(err)
		}
	}

	<-ctx.Ctx().Done()
	ctx.Stop()
	return a.shutdown(ctx)
}

func (a *app) shutdown(ctx contracts.AppContext) error {
	if a.shutdownTimeout <= 0 {
		return a.registry.Shutdown(ctx)
	}

	done := make(chan error, 1)
	go func() { done <- a.registry.Shutdown(ctx) }()

	timer := time.NewTimer(a.shutdownTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrAppStop.WithDetail("reason", "graceful shutdown timed out after "+a.shutdownTimeout.String())
	}
}
