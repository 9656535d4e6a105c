package app

import (
	"errors"
	"sync"

	"github.com/shuldan/clikit/pkg/contracts"
)

type registry struct {
	mu      sync.RWMutex
	modules []contracts.AppModule
	names   map[string]bool
}

func (r *registry) Register(module contracts.AppModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names[module.Name()] {
		return ErrDuplicateModule.WithDetail("module", module.Name())
	}
	r.names[module.Name()] = true
	r.modules = append(r.modules, module)
	return nil
}

func (r *registry) All() []contracts.AppModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]contracts.AppModule(nil), r.modules...)
}

func (r *registry) Shutdown(ctx contracts.AppContext) error {
	return stopReverse(ctx, r.All())
}

func stopReverse(ctx contracts.AppContext, modules []contracts.AppModule) error {
	var errs []error
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Stop(ctx); err != nil {
			errs = append(errs, ErrModuleStop.WithDetail("module", modules[i].Name()).WithCause(err))
		}
	}
	return errors.Join(errs...)
}
