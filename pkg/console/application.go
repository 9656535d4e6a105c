package console

import (
	"context"
	"io"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/errors"
)

const (
	helpOption          = "help"
	noInteractionOption = "no-interaction"
)

type Application struct {
	name           string
	version        string
	registry       *Registry
	loader         CommandLoader
	bus            contracts.Bus
	prompter       Prompter
	logger         contracts.Logger
	defaultCommand string
}

type AppOption func(*Application)

func WithBus(bus contracts.Bus) AppOption {
	return func(a *Application) {
		a.bus = bus
	}
}

func WithPrompter(prompter Prompter) AppOption {
	return func(a *Application) {
		a.prompter = prompter
	}
}

func WithLogger(logger contracts.Logger) AppOption {
	return func(a *Application) {
		a.logger = logger
	}
}

func WithVersion(name, version string) AppOption {
	return func(a *Application) {
		a.name = name
		a.version = version
	}
}

func WithDefaultCommand(name string) AppOption {
	return func(a *Application) {
		a.defaultCommand = name
	}
}

func NewApplication(opts ...AppOption) *Application {
	a := &Application{
		registry:       NewRegistry(),
		defaultCommand: "help",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.prompter == nil {
		a.prompter = DefaultPrompter()
	}
	_ = a.registry.Register(NewHelpCommand(a))
	return a
}

func (a *Application) Register(commands ...Command) error {
	for _, cmd := range commands {
		if err := a.registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) SetLoader(loader CommandLoader) {
	a.loader = loader
}

func (a *Application) Prompter() Prompter {
	return a.prompter
}

func (a *Application) Has(name string) bool {
	if _, ok := a.registry.Get(name); ok {
		return true
	}
	return a.loader != nil && a.loader.Has(name)
}

func (a *Application) Get(name string) (Command, error) {
	return a.Find(name)
}

func (a *Application) Find(name string) (Command, error) {
	if cmd, ok := a.registry.Get(name); ok {
		return cmd, nil
	}
	if a.loader != nil && a.loader.Has(name) {
		return a.loader.Get(name)
	}

	err := ErrCommandNotFound.WithDetail("command", name)
	if suggestion := suggest(name, a.Names()); suggestion != "" {
		err = err.WithDetail("suggestion", suggestion)
	}
	return nil, err
}

func (a *Application) Names() []string {
	seen := make(map[string]bool)
	names := a.registry.Names()
	for _, name := range names {
		seen[name] = true
	}
	if a.loader != nil {
		for _, name := range a.loader.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (a *Application) Groups() map[string][]Command {
	groups := a.registry.Groups()
	if a.loader == nil {
		return groups
	}

	for _, name := range a.loader.Names() {
		if _, ok := a.registry.Get(name); ok {
			continue
		}
		cmd, err := a.loader.Get(name)
		if err != nil {
			a.debug("skipping command in listing", "command", name, "error", err)
			continue
		}
		group := cmd.Group()
		if group == "" {
			group = DefaultGroup
		}
		groups[group] = append(groups[group], cmd)
	}

	for _, commands := range groups {
		sortCommands(commands)
	}
	return groups
}

func (a *Application) Definition(cmd Command) (*Definition, error) {
	def := NewDefinition()
	_ = def.AddArgument(&Argument{Name: "command", Required: true, Description: "The command to execute"})

	for _, global := range []struct{ name, shortcut, description string }{
		{helpOption, "h", "Display help for the given command"},
		{noInteractionOption, "n", "Do not ask any interactive question"},
	} {
		opt, _ := NewOption(global.name, global.shortcut, ModeNone, global.description, nil)
		_ = def.AddOption(opt)
	}

	if err := cmd.Configure(def); err != nil {
		return nil, ErrCommandConfigure.WithDetail("command", cmd.Name()).WithCause(err)
	}
	return def, nil
}

// Run resolves, binds and executes one command, then publishes its
// TerminateEvent. The returned exit code is the one left on the event after
// all listeners ran.
func (a *Application) Run(ctx context.Context, in Input, out io.Writer) (int, error) {
	name := in.FirstArgument()
	defaulted := name == ""
	if defaulted {
		name = a.defaultCommand
	}

	cmd, err := a.Find(name)
	if err != nil {
		return errors.ExitCode(err), err
	}

	def, err := a.Definition(cmd)
	if err != nil {
		return errors.ExitCode(err), err
	}

	if err = in.Bind(def); err != nil {
		return errors.ExitCode(err), err
	}
	if defaulted {
		in.SetArgument("command", name)
	}

	if in.Option(helpOption) == true {
		if err = describeCommand(out, cmd, def); err != nil {
			return errors.ExitFailure, err
		}
		return 0, nil
	}

	if in.Option(noInteractionOption) == true {
		in.SetInteractive(false)
	}

	if err = in.Validate(); err != nil {
		return errors.ExitCode(err), err
	}

	execInput := in
	if decorator, ok := DecoratorOf(cmd); ok {
		execInput = decorator.Decorate(in, a.prompter, out)
	}

	a.debug("running command", "command", cmd.Name(), "interactive", in.IsInteractive())

	code, err := cmd.Execute(NewContext(ctx, execInput, out, a.prompter))
	if err != nil {
		code = errors.ExitFailure
	}

	return a.terminate(ctx, cmd, in, out, code, err)
}

func (a *Application) terminate(ctx context.Context, cmd Command, in Input, out io.Writer, code int, err error) (int, error) {
	if a.bus == nil {
		return code, err
	}

	event := NewTerminateEvent(cmd, in, out, code)
	if pubErr := a.bus.Publish(ctx, event); pubErr != nil {
		if event.ExitCode() == 0 {
			event.SetExitCode(errors.ExitCode(pubErr))
		}
		if err == nil {
			err = pubErr
		}
	}

	return event.ExitCode(), err
}

func (a *Application) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func suggest(name string, candidates []string) string {
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(name)/2+1
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
