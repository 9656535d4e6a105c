package loader

import (
	"sort"

	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
)

var _ console.CommandLoader = (*Resolver)(nil)

// Resolver maps command names to classes and builds the commands. An
// instance the container already holds under the class id wins over
// construction.
type Resolver struct {
	commands  map[string]string
	catalog   *Catalog
	container contracts.DIContainer
	lazy      bool
	logger    contracts.Logger
}

type Option func(*Resolver)

func WithLazy() Option {
	return func(r *Resolver) {
		r.lazy = true
	}
}

func WithLogger(logger contracts.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func NewResolver(commands map[string]string, catalog *Catalog, container contracts.DIContainer, opts ...Option) *Resolver {
	if catalog == nil {
		catalog = NewCatalog()
	}
	r := &Resolver{
		commands:  make(map[string]string, len(commands)),
		catalog:   catalog,
		container: container,
	}
	for name, class := range commands {
		r.commands[name] = class
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

func (r *Resolver) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Resolver) ClassOf(name string) (string, bool) {
	class, ok := r.commands[name]
	return class, ok
}

func (r *Resolver) Resolve(name string) (console.Command, error) {
	return r.Get(name)
}

func (r *Resolver) Get(name string) (console.Command, error) {
	classID, ok := r.commands[name]
	if !ok {
		return nil, ErrCommandNotFound.WithDetail("name", name)
	}

	if r.container != nil && r.container.Has(classID) {
		inst, err := r.container.Resolve(classID)
		if err != nil {
			return nil, ErrConstructFailed.WithDetail("class", classID).WithDetail("name", name).WithCause(err)
		}
		r.debug("command taken from container", "command", name, "class", classID)
		return asCommand(inst, name, classID)
	}

	class, ok := r.catalog.Class(classID)
	if !ok {
		return nil, ErrClassNotFound.WithDetail("class", classID).WithDetail("name", name)
	}

	if r.lazy && class.Describe != nil {
		return newLazyCommand(name, class.Describe(), func() (console.Command, error) {
			return r.construct(name, classID, class)
		}), nil
	}
	return r.construct(name, classID, class)
}

func (r *Resolver) construct(name, classID string, class Class) (console.Command, error) {
	inst, err := class.New(r.container)
	if err != nil {
		return nil, ErrConstructFailed.WithDetail("class", classID).WithDetail("name", name).WithCause(err)
	}
	r.debug("command constructed", "command", name, "class", classID)
	return asCommand(inst, name, classID)
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func asCommand(inst any, name, classID string) (console.Command, error) {
	cmd, ok := inst.(console.Command)
	if !ok || cmd == nil {
		return nil, ErrNotACommand.WithDetail("class", classID).WithDetail("name", name)
	}
	return rename(cmd, name), nil
}

func rename(cmd console.Command, name string) console.Command {
	if cmd.Name() == name {
		return cmd
	}
	if r, ok := cmd.(console.Renamable); ok {
		r.SetName(name)
		return cmd
	}
	return &namedCommand{Command: cmd, name: name}
}

type namedCommand struct {
	console.Command
	name string
}

func (c *namedCommand) Name() string {
	return c.name
}

func (c *namedCommand) Unwrap() console.Command {
	return c.Command
}
