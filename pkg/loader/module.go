package loader

import (
	"fmt"

	"github.com/shuldan/clikit/pkg/contracts"
)

const CommandsConfigKey = "console.commands"

type module struct {
	catalog  *Catalog
	commands map[string]string
	opts     []Option
}

type ModuleOption func(*module)

func WithCommands(commands map[string]string) ModuleOption {
	return func(m *module) {
		for name, class := range commands {
			m.commands[name] = class
		}
	}
}

func WithResolverOptions(opts ...Option) ModuleOption {
	return func(m *module) {
		m.opts = append(m.opts, opts...)
	}
}

func NewModule(catalog *Catalog, opts ...ModuleOption) contracts.AppModule {
	m := &module{
		catalog:  catalog,
		commands: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *module) Name() string {
	return contracts.LoaderModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.LoaderModuleName, func(c contracts.DIContainer) (interface{}, error) {
		commands := make(map[string]string)
		if c.Has(contracts.ConfigModuleName) {
			inst, err := c.Resolve(contracts.ConfigModuleName)
			if err != nil {
				return nil, err
			}
			if cfg, ok := inst.(contracts.Config); ok {
				if commands, err = CommandMap(cfg); err != nil {
					return nil, err
				}
			}
		}
		for name, class := range m.commands {
			commands[name] = class
		}

		opts := m.opts
		if c.Has(contracts.LoggerModuleName) {
			if inst, err := c.Resolve(contracts.LoggerModuleName); err == nil {
				if logger, ok := inst.(contracts.Logger); ok {
					opts = append([]Option{WithLogger(logger)}, opts...)
				}
			}
		}

		return NewResolver(commands, m.catalog, c, opts...), nil
	})
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

func (m *module) Stop(_ contracts.AppContext) error {
	return nil
}

func CommandMap(cfg contracts.Config) (map[string]string, error) {
	commands := make(map[string]string)
	raw := cfg.Get(CommandsConfigKey)
	if raw == nil {
		return commands, nil
	}

	entries, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrInvalidCommandMap.WithDetail("name", CommandsConfigKey)
	}
	for name, value := range entries {
		class, ok := value.(string)
		if !ok || class == "" {
			return nil, ErrInvalidCommandMap.WithDetail("name", fmt.Sprintf("%s.%s", CommandsConfigKey, name))
		}
		commands[name] = class
	}
	return commands, nil
}
