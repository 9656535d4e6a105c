package console

import (
	"context"
	"io"
)

const DefaultGroup = "general"

type Command interface {
	Name() string
	Description() string
	Help() string
	Group() string
	Configure(def *Definition) error
	Execute(ctx Context) (int, error)
}

type Renamable interface {
	SetName(name string)
}

type InputDecorator interface {
	Decorate(in Input, prompter Prompter, out io.Writer) Input
}

type Wrapper interface {
	Unwrap() Command
}

type CommandLoader interface {
	Has(name string) bool
	Get(name string) (Command, error)
	Names() []string
}

type BaseCommand struct {
	name        string
	description string
	help        string
	group       string
}

func NewBaseCommand(name, description string) BaseCommand {
	return BaseCommand{name: name, description: description}
}

func (c *BaseCommand) Name() string        { return c.name }
func (c *BaseCommand) Description() string { return c.description }
func (c *BaseCommand) Help() string        { return c.help }

func (c *BaseCommand) Group() string {
	if c.group == "" {
		return DefaultGroup
	}
	return c.group
}

func (c *BaseCommand) SetName(name string)               { c.name = name }
func (c *BaseCommand) SetDescription(description string) { c.description = description }
func (c *BaseCommand) SetHelp(help string)               { c.help = help }
func (c *BaseCommand) SetGroup(group string)             { c.group = group }

func (c *BaseCommand) Configure(*Definition) error {
	return nil
}

type Context interface {
	Ctx() context.Context
	Input() Input
	Output() io.Writer
	Prompter() Prompter
}

type cmdContext struct {
	ctx      context.Context
	input    Input
	output   io.Writer
	prompter Prompter
}

func NewContext(ctx context.Context, in Input, out io.Writer, prompter Prompter) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &cmdContext{
		ctx:      ctx,
		input:    in,
		output:   out,
		prompter: prompter,
	}
}

func (c *cmdContext) Ctx() context.Context { return c.ctx }
func (c *cmdContext) Input() Input         { return c.input }
func (c *cmdContext) Output() io.Writer    { return c.output }
func (c *cmdContext) Prompter() Prompter   { return c.prompter }

func DecoratorOf(cmd Command) (InputDecorator, bool) {
	for cmd != nil {
		if d, ok := cmd.(InputDecorator); ok {
			return d, true
		}
		w, ok := cmd.(Wrapper)
		if !ok {
			return nil, false
		}
		cmd = w.Unwrap()
	}
	return nil, false
}
