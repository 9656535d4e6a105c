package param

import (
	"io"

	"github.com/shuldan/clikit/pkg/console"
)

// Command is an embeddable base for commands that read their options through
// parameters. It declares one console option per parameter and decorates the
// raw input before Execute runs.
type Command struct {
	console.BaseCommand
	params []*Parameter
}

func NewCommand(name, description string, params ...*Parameter) Command {
	return Command{
		BaseCommand: console.NewBaseCommand(name, description),
		params:      params,
	}
}

func (c *Command) AddParameters(params ...*Parameter) {
	c.params = append(c.params, params...)
}

func (c *Command) Parameters() []*Parameter {
	return append([]*Parameter(nil), c.params...)
}

func (c *Command) Configure(def *console.Definition) error {
	for _, p := range c.params {
		if err := def.AddOption(p.Option()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Command) Decorate(in console.Input, prompter console.Prompter, out io.Writer) console.Input {
	return NewInput(in, prompter, out, c.params...)
}

// From returns the decorated input of the running command. Inputs that were
// never decorated are wrapped without parameters.
func From(ctx console.Context) *Input {
	if in, ok := ctx.Input().(*Input); ok {
		return in
	}
	return NewInput(ctx.Input(), ctx.Prompter(), ctx.Output())
}
