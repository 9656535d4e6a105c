package loader

import (
	"github.com/shuldan/clikit/pkg/console"
)

// LazyCommand answers metadata questions from the class description and
// builds the real command on first Execute.
type LazyCommand struct {
	name    string
	meta    Metadata
	build   func() (console.Command, error)
	command console.Command
}

func newLazyCommand(name string, meta Metadata, build func() (console.Command, error)) *LazyCommand {
	return &LazyCommand{name: name, meta: meta, build: build}
}

func (c *LazyCommand) Name() string        { return c.name }
func (c *LazyCommand) Description() string { return c.meta.Description }
func (c *LazyCommand) Help() string        { return c.meta.Help }

func (c *LazyCommand) Group() string {
	if c.meta.Group == "" {
		return console.DefaultGroup
	}
	return c.meta.Group
}

func (c *LazyCommand) Configure(def *console.Definition) error {
	if c.meta.Configure == nil {
		return nil
	}
	return c.meta.Configure(def)
}

func (c *LazyCommand) Constructed() bool {
	return c.command != nil
}

func (c *LazyCommand) Command() (console.Command, error) {
	if c.command != nil {
		return c.command, nil
	}
	cmd, err := c.build()
	if err != nil {
		return nil, err
	}
	c.command = cmd
	return cmd, nil
}

// Execute builds the real command and runs it. The real command decorates
// its own input here, since it did not exist when the input was bound.
func (c *LazyCommand) Execute(ctx console.Context) (int, error) {
	cmd, err := c.Command()
	if err != nil {
		return 1, err
	}

	if decorator, ok := console.DecoratorOf(cmd); ok {
		in := decorator.Decorate(ctx.Input(), ctx.Prompter(), ctx.Output())
		ctx = console.NewContext(ctx.Ctx(), in, ctx.Output(), ctx.Prompter())
	}
	return cmd.Execute(ctx)
}
