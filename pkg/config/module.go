package config

import (
	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/errors"
)

type module struct {
	loader Loader
}

func NewModule(envPrefix string, configPaths ...string) contracts.AppModule {
	loaders := []Loader{
		NewYamlConfigLoader(configPaths...),
		NewJSONConfigLoader(configPaths...),
		NewHCLConfigLoader(configPaths...),
		NewEnvConfigLoader(envPrefix),
	}

	return &module{loader: newTemplatedLoader(NewChainLoader(loaders...))}
}

func NewModuleWithLoader(loader Loader) contracts.AppModule {
	return &module{loader: loader}
}

func (m *module) Name() string {
	return contracts.ConfigModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.ConfigModuleName, func(c contracts.DIContainer) (interface{}, error) {
		values, err := m.loader.Load()
		if err != nil {
			if errors.Is(err, ErrNoConfigSource) {
				return NewMapConfig(nil), nil
			}
			return nil, err
		}
		return NewMapConfig(values), nil
	})
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

func (m *module) Stop(_ contracts.AppContext) error {
	return nil
}
