package chain

import (
	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/events"
	"github.com/shuldan/clikit/pkg/loader"
)

const ManifestConfigKey = "console.manifest"

type module struct {
	config    Config
	opts      []Option
	trustOpts []TrustOption
}

type ModuleOption func(*module)

func WithConfig(cfg Config) ModuleOption {
	return func(m *module) {
		m.config = m.config.Merge(cfg)
	}
}

func WithOrchestratorOptions(opts ...Option) ModuleOption {
	return func(m *module) {
		m.opts = append(m.opts, opts...)
	}
}

func WithTrustOptions(opts ...TrustOption) ModuleOption {
	return func(m *module) {
		m.trustOpts = append(m.trustOpts, opts...)
	}
}

// NewModule subscribes an Orchestrator to console termination. Register it
// before the console module so the listener is in place when the command
// runs.
func NewModule(opts ...ModuleOption) contracts.AppModule {
	m := &module{config: Config{}.clone()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *module) Name() string {
	return contracts.ChainModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.ChainModuleName, func(c contracts.DIContainer) (interface{}, error) {
		application, ok := resolve[*console.Application](c, contracts.ConsoleModuleName)
		if !ok {
			return nil, ErrMissingService.WithDetail("id", contracts.ConsoleModuleName)
		}
		logger, _ := resolve[contracts.Logger](c, contracts.LoggerModuleName)

		cfg := Config{}.clone()
		var manifest string
		if appConfig, ok := resolve[contracts.Config](c, contracts.ConfigModuleName); ok {
			fromConfig, err := FromConfig(appConfig, logger)
			if err != nil {
				return nil, err
			}
			cfg = fromConfig
			manifest = appConfig.GetString(ManifestConfigKey)
		}
		cfg = cfg.Merge(m.config)

		opts := []Option{WithPrompter(application.Prompter())}
		if logger != nil {
			opts = append(opts, WithLogger(logger))
		}
		if resolver, ok := resolve[interface{ Catalog() *loader.Catalog }](c, contracts.LoaderModuleName); ok {
			opts = append(opts, WithSources(resolver.Catalog()))
		}

		trustOpts := m.trustOpts
		if manifest != "" {
			trustOpts = append([]TrustOption{WithManifest(manifest)}, trustOpts...)
		}
		if trust, err := NewTrust(trustOpts...); err != nil {
			warn(logger, "third-party detection disabled", "error", err)
		} else {
			opts = append(opts, WithTrust(trust))
		}

		return NewOrchestrator(cfg, application, application, append(opts, m.opts...)...)
	})
}

func (m *module) Start(ctx contracts.AppContext) error {
	inst, err := ctx.Container().Resolve(contracts.ChainModuleName)
	if err != nil {
		return err
	}
	orchestrator, ok := inst.(*Orchestrator)
	if !ok {
		return ErrMissingService.WithDetail("id", contracts.ChainModuleName)
	}

	bus, ok := resolve[contracts.Bus](ctx.Container(), contracts.EventBusModuleName)
	if !ok {
		return ErrMissingService.WithDetail("id", contracts.EventBusModuleName)
	}
	return events.Listen(bus, orchestrator.Handle)
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func resolve[T any](c contracts.DIContainer, id string) (T, bool) {
	var zero T
	if !c.Has(id) {
		return zero, false
	}
	inst, err := c.Resolve(id)
	if err != nil {
		return zero, false
	}
	value, ok := inst.(T)
	return value, ok
}
