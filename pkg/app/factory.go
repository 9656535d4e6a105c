package app

import (
	"time"

	"github.com/shuldan/clikit/pkg/contracts"
)

func NewContainer() contracts.DIContainer {
	return &container{
		factories: make(map[string]func(c contracts.DIContainer) (any, error)),
		instances: make(map[string]any),
	}
}

func NewRegistry() contracts.AppRegistry {
	return &registry{names: make(map[string]bool)}
}

func New(info Info, container contracts.DIContainer, registry contracts.AppRegistry, opts ...func(*app)) contracts.App {
	if container == nil {
		container = NewContainer()
	}
	if registry == nil {
		registry = NewRegistry()
	}

	a := &app{
		container:       container,
		registry:        registry,
		info:            info,
		shutdownTimeout: 10 * time.Second,
		signals:         defaultSignals,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
