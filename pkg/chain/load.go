package chain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/errors"
)

func Load(path string, logger contracts.Logger) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path, logger)
	case ".hcl":
		return LoadHCL(path, logger)
	}
	return Config{}, ErrUnsupportedChainFile.WithDetail("path", path)
}

// LoadYAML reads a chain file of the form
//
//	commands:
//	  make:migration: app.make-migration
//	  migrate: app.migrate
//	chains:
//	  app.make-migration:
//	    app.migrate:
//	      map:
//	        --name: --name
//	    app.seed: seed-mapper
//
// A step value is empty, a mapper name, or a mapping with "map" and
// "mapper". Chains whose value is not a mapping are dropped.
func LoadYAML(path string, logger contracts.Logger) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, ErrReadChainFile.WithDetail("path", path).WithCause(err)
	}

	var doc yaml.MapSlice
	if err = yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return Config{}, ErrParseChainFile.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}

	cfg := Config{Commands: make(map[string]string), Chains: make(map[string][]Step)}
	for _, section := range doc {
		switch key(section.Key) {
		case "commands":
			entries, ok := section.Value.(yaml.MapSlice)
			if !ok && section.Value != nil {
				return Config{}, ErrInvalidCommandEntry.WithDetail("name", "commands").WithDetail("path", path)
			}
			for _, entry := range entries {
				class, ok := entry.Value.(string)
				if !ok || class == "" {
					return Config{}, ErrInvalidCommandEntry.WithDetail("name", key(entry.Key)).WithDetail("path", path)
				}
				cfg.Commands[key(entry.Key)] = class
			}
		case "chains":
			chains, ok := section.Value.(yaml.MapSlice)
			if !ok {
				warn(logger, "chains section is not a mapping", "path", path)
				continue
			}
			for _, chain := range chains {
				parent := key(chain.Key)
				steps, ok, err := yamlSteps(chain.Value)
				if err != nil {
					return Config{}, err.WithDetail("path", path)
				}
				if !ok {
					warn(logger, "chain is not a mapping, ignoring it", "path", path, "class", parent)
					continue
				}
				cfg.Chains[parent] = append(cfg.Chains[parent], steps...)
			}
		}
	}
	return cfg, nil
}

func yamlSteps(value any) ([]Step, bool, *errors.Error) {
	entries, ok := value.(yaml.MapSlice)
	if !ok {
		return nil, false, nil
	}

	steps := make([]Step, 0, len(entries))
	for _, entry := range entries {
		step := Step{Class: key(entry.Key)}
		switch v := entry.Value.(type) {
		case nil:
		case string:
			step.Mapper = v
		case yaml.MapSlice:
			for _, field := range v {
				switch key(field.Key) {
				case "mapper":
					step.Mapper = key(field.Value)
				case "map":
					pairs, ok := field.Value.(yaml.MapSlice)
					if !ok {
						return nil, true, invalidStep(step.Class, "map must be a mapping of source to destination")
					}
					for _, pair := range pairs {
						to, ok := pair.Value.(string)
						if !ok || to == "" {
							return nil, true, invalidStep(step.Class, "map destination of "+key(pair.Key)+" must be a name")
						}
						step.Map = append(step.Map, MapPair{From: key(pair.Key), To: to})
					}
				default:
					return nil, true, invalidStep(step.Class, "unknown field "+key(field.Key))
				}
			}
			if step.Mapper != "" && len(step.Map) > 0 {
				return nil, true, invalidStep(step.Class, "map and mapper cannot both be set")
			}
		default:
			return nil, false, nil
		}
		steps = append(steps, step)
	}
	return steps, true, nil
}

func invalidStep(class, reason string) *errors.Error {
	return ErrInvalidStep.WithDetail("class", class).WithDetail("reason", reason)
}

func key(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

type hclFile struct {
	Commands map[string]string `hcl:"commands,optional"`
	Chains   []hclChain        `hcl:"chain,block"`
}

type hclChain struct {
	Class string    `hcl:"class,label"`
	Next  []hclStep `hcl:"next,block"`
}

type hclStep struct {
	Class  string            `hcl:"class,label"`
	Map    map[string]string `hcl:"map,optional"`
	Mapper string            `hcl:"mapper,optional"`
}

// LoadHCL reads a chain file of the form
//
//	commands = { "migrate" = "app.migrate" }
//
//	chain "app.make-migration" {
//	  next "app.migrate" {
//	    map = { "--name" = "--name" }
//	  }
//	}
//
// Keys of one map object are applied in sorted order.
func LoadHCL(path string, _ contracts.Logger) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, ErrReadChainFile.WithDetail("path", path).WithCause(err)
	}

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, ErrParseChainFile.
			WithDetail("path", path).
			WithDetail("reason", diags.Error()).
			WithCause(diags)
	}

	var doc hclFile
	if diags = gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return Config{}, ErrParseChainFile.
			WithDetail("path", path).
			WithDetail("reason", diags.Error()).
			WithCause(diags)
	}

	cfg := Config{Commands: make(map[string]string), Chains: make(map[string][]Step)}
	for name, class := range doc.Commands {
		if class == "" {
			return Config{}, ErrInvalidCommandEntry.WithDetail("name", name).WithDetail("path", path)
		}
		cfg.Commands[name] = class
	}
	for _, chain := range doc.Chains {
		for _, next := range chain.Next {
			if next.Mapper != "" && len(next.Map) > 0 {
				return Config{}, invalidStep(next.Class, "map and mapper cannot both be set").WithDetail("path", path)
			}
			step := Step{Class: next.Class, Mapper: next.Mapper}
			froms := make([]string, 0, len(next.Map))
			for from := range next.Map {
				froms = append(froms, from)
			}
			sort.Strings(froms)
			for _, from := range froms {
				step.Map = append(step.Map, MapPair{From: from, To: next.Map[from]})
			}
			cfg.Chains[chain.Class] = append(cfg.Chains[chain.Class], step)
		}
	}
	return cfg, nil
}

func warn(logger contracts.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
