package console

import (
	"io"
	"strings"
)

// Input is the raw command input. Options that were not given read as nil.
type Input interface {
	FirstArgument() string
	Argument(name string) any
	SetArgument(name string, value any)
	Arguments() map[string]any
	Option(name string) any
	SetOption(name string, value any)
	Options() map[string]any
	HasOption(name string) bool
	IsInteractive() bool
	SetInteractive(interactive bool)
	Stream() io.Reader
	SetStream(stream io.Reader)
	Bind(def *Definition) error
	Validate() error
}

type store struct {
	definition  *Definition
	arguments   map[string]any
	options     map[string]any
	interactive bool
	stream      io.Reader
}

func newStore() store {
	return store{
		definition:  NewDefinition(),
		arguments:   make(map[string]any),
		options:     make(map[string]any),
		interactive: true,
	}
}

func (s *store) Argument(name string) any {
	return s.arguments[name]
}

func (s *store) SetArgument(name string, value any) {
	s.arguments[name] = value
}

func (s *store) Arguments() map[string]any {
	return cloneValues(s.arguments)
}

func (s *store) Option(name string) any {
	if value, ok := s.options[name]; ok {
		return value
	}
	if opt := s.definition.Option(name); opt != nil {
		return opt.Default
	}
	return nil
}

func (s *store) SetOption(name string, value any) {
	s.options[name] = value
}

func (s *store) Options() map[string]any {
	values := make(map[string]any, len(s.options))
	for _, opt := range s.definition.Options() {
		if opt.Default != nil {
			values[opt.Name] = opt.Default
		}
	}
	for name, value := range s.options {
		values[name] = value
	}
	return values
}

func (s *store) HasOption(name string) bool {
	if s.definition.Option(name) != nil {
		return true
	}
	_, ok := s.options[name]
	return ok
}

func (s *store) IsInteractive() bool {
	return s.interactive
}

func (s *store) SetInteractive(interactive bool) {
	s.interactive = interactive
}

func (s *store) Stream() io.Reader {
	return s.stream
}

func (s *store) SetStream(stream io.Reader) {
	s.stream = stream
}

func (s *store) Validate() error {
	var missing []string
	for _, arg := range s.definition.Arguments() {
		if !arg.Required {
			continue
		}
		if value, ok := s.arguments[arg.Name]; !ok || value == nil {
			missing = append(missing, `"`+arg.Name+`"`)
		}
	}
	if len(missing) > 0 {
		return ErrMissingArguments.WithDetail("names", strings.Join(missing, ", "))
	}
	return nil
}

func (s *store) reset(def *Definition) {
	if def == nil {
		def = NewDefinition()
	}
	s.definition = def
	s.arguments = make(map[string]any)
	s.options = make(map[string]any)
}

func cloneValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
