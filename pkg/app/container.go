package app

import (
	"sync"

	"github.com/shuldan/clikit/pkg/contracts"
)

type container struct {
	mu        sync.RWMutex
	factories map[string]func(c contracts.DIContainer) (any, error)
	instances map[string]any
}

func (c *container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, hasFactory := c.factories[id]
	_, hasInstance := c.instances[id]
	return hasFactory || hasInstance
}

func (c *container) Instance(id string, concrete any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.instances[id]; exists {
		return ErrDuplicateInstance.WithDetail("id", id)
	}
	c.instances[id] = concrete
	return nil
}

func (c *container) Factory(id string, factory func(c contracts.DIContainer) (any, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.factories[id]; exists {
		return ErrDuplicateFactory.WithDetail("id", id)
	}
	c.factories[id] = factory
	return nil
}

func (c *container) Resolve(id string) (any, error) {
	return c.resolveWithStack(id, make(map[string]bool))
}

func (c *container) resolveWithStack(id string, resolving map[string]bool) (any, error) {
	c.mu.RLock()
	if instance, exists := c.instances[id]; exists {
		c.mu.RUnlock()
		return instance, nil
	}
	factory, exists := c.factories[id]
	c.mu.RUnlock()

	if resolving[id] {
		return nil, ErrCircularDep.WithDetail("id", id)
	}

	if !exists {
		return nil, ErrValueNotFound.WithDetail("id", id)
	}

	resolving[id] = true
	defer delete(resolving, id)

	instance, err := factory(&containerProxy{container: c, resolving: resolving})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.instances[id]; exists {
		return existing, nil
	}

	c.instances[id] = instance
	return instance, nil
}

type containerProxy struct {
	container *container
	resolving map[string]bool
}

func (cp *containerProxy) Has(id string) bool {
	return cp.container.Has(id)
}

func (cp *containerProxy) Instance(id string, concrete any) error {
	return cp.container.Instance(id, concrete)
}

func (cp *containerProxy) Factory(id string, factory func(c contracts.DIContainer) (any, error)) error {
	return cp.container.Factory(id, factory)
}

func (cp *containerProxy) Resolve(id string) (any, error) {
	return cp.container.resolveWithStack(id, cp.resolving)
}
