package chain

import (
	"sort"

	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/loader"
)

const ChainFileConfigKey = "console.chain_file"

// MapPair copies the value read from From into the key To of the next
// command's input. Keys starting with "--" are options, the rest arguments.
type MapPair struct {
	From string
	To   string
}

// Step is one dependent command. Map and Mapper are exclusive; a step with
// neither passes no values on.
type Step struct {
	Class  string
	Map    MapSpec
	Mapper string
}

type Config struct {
	Commands map[string]string
	Chains   map[string][]Step
}

func (c Config) Validate() error {
	parents := make([]string, 0, len(c.Chains))
	for parent := range c.Chains {
		parents = append(parents, parent)
	}
	sort.Strings(parents)

	for _, parent := range parents {
		if _, ok := c.NameOf(parent); !ok {
			return ErrUnregisteredCommand.WithDetail("class", parent)
		}
		for _, step := range c.Chains[parent] {
			if _, ok := c.NameOf(step.Class); !ok {
				return ErrUnregisteredCommand.WithDetail("class", step.Class)
			}
			if step.Mapper != "" && len(step.Map) > 0 {
				return ErrInvalidStep.WithDetail("class", step.Class).WithDetail("reason", "map and mapper cannot both be set")
			}
		}
	}
	return nil
}

// NameOf finds the command name registered for class. When several names
// map to the same class the alphabetically first one wins.
func (c Config) NameOf(class string) (string, bool) {
	var found string
	for name, candidate := range c.Commands {
		if candidate != class {
			continue
		}
		if found == "" || name < found {
			found = name
		}
	}
	return found, found != ""
}

func (c Config) ClassOf(name string) (string, bool) {
	class, ok := c.Commands[name]
	return class, ok
}

func (c Config) StepsFor(class string) []Step {
	return c.Chains[class]
}

func (c Config) Merge(other Config) Config {
	merged := c.clone()
	for name, class := range other.Commands {
		merged.Commands[name] = class
	}
	for parent, steps := range other.Chains {
		merged.Chains[parent] = append([]Step(nil), steps...)
	}
	return merged
}

func (c Config) clone() Config {
	out := Config{
		Commands: make(map[string]string, len(c.Commands)),
		Chains:   make(map[string][]Step, len(c.Chains)),
	}
	for name, class := range c.Commands {
		out.Commands[name] = class
	}
	for parent, steps := range c.Chains {
		out.Chains[parent] = append([]Step(nil), steps...)
	}
	return out
}

func FromConfig(cfg contracts.Config, logger contracts.Logger) (Config, error) {
	commands, err := loader.CommandMap(cfg)
	if err != nil {
		return Config{}, err
	}
	result := Config{Commands: commands, Chains: make(map[string][]Step)}

	if path := cfg.GetString(ChainFileConfigKey); path != "" {
		fromFile, err := Load(path, logger)
		if err != nil {
			return Config{}, err
		}
		result = fromFile.Merge(result)
	}

	if err = result.Validate(); err != nil {
		return Config{}, err
	}
	return result, nil
}
