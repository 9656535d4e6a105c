package config

import "github.com/shuldan/clikit/pkg/contracts"

var _ Loader = (*EnvConfigLoader)(nil)
var _ Loader = (*YamlConfigLoader)(nil)
var _ Loader = (*JSONConfigLoader)(nil)
var _ Loader = (*HCLConfigLoader)(nil)
var _ Loader = (*ChainLoader)(nil)

func NewEnvConfigLoader(prefix string) Loader {
	return &EnvConfigLoader{prefix: prefix}
}

func NewYamlConfigLoader(paths ...string) *YamlConfigLoader {
	return &YamlConfigLoader{paths: paths}
}

func NewJSONConfigLoader(paths ...string) *JSONConfigLoader {
	return &JSONConfigLoader{paths: paths}
}

func NewHCLConfigLoader(paths ...string) *HCLConfigLoader {
	return &HCLConfigLoader{paths: paths}
}

func NewChainLoader(loaders ...Loader) Loader {
	return &ChainLoader{loaders: loaders}
}

func NewMapConfig(values map[string]any) contracts.Config {
	if values == nil {
		values = make(map[string]any)
	}
	return &MapConfig{values: values}
}

func NewFileLoader(paths ...string) Loader {
	return newTemplatedLoader(NewChainLoader(
		NewYamlConfigLoader(paths...),
		NewJSONConfigLoader(paths...),
		NewHCLConfigLoader(paths...),
	))
}
