package console

import (
	"sort"
	"strings"
)

// ArrayInput reads parameters from a map. Keys starting with "--" name
// options, "-x" keys name option shortcuts, and every other key is an
// argument. The "command" key carries the command name.
type ArrayInput struct {
	store
	params map[string]any
}

func NewArrayInput(params map[string]any) *ArrayInput {
	return &ArrayInput{
		store:  newStore(),
		params: cloneValues(params),
	}
}

func (in *ArrayInput) FirstArgument() string {
	if name, ok := in.params["command"].(string); ok {
		return name
	}
	return ""
}

func (in *ArrayInput) Bind(def *Definition) error {
	in.reset(def)

	keys := make([]string, 0, len(in.params))
	for key := range in.params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := in.params[key]

		var opt *Option
		switch {
		case strings.HasPrefix(key, "--"):
			opt = in.definition.Option(key[2:])
		case strings.HasPrefix(key, "-"):
			opt = in.definition.OptionByShortcut(key[1:])
		default:
			if in.definition.Argument(key) == nil {
				return ErrUnknownArgument.WithDetail("name", key)
			}
			in.arguments[key] = value
			continue
		}

		if opt == nil {
			return ErrUnknownOption.WithDetail("name", strings.TrimLeft(key, "-"))
		}
		if value == nil {
			if opt.Mode.Has(ModeRequired) {
				return ErrOptionValueRequired.WithDetail("name", opt.Name)
			}
			if opt.Mode.Has(ModeNone) {
				value = true
			}
		}
		in.options[opt.Name] = value
	}

	return nil
}
