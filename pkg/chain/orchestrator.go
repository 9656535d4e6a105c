package chain

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
)

type Runner interface {
	Run(ctx context.Context, in console.Input, out io.Writer) (int, error)
}

type SourceLocator interface {
	SourceFile(class string) string
}

type decision int

const (
	proceed decision = iota
	skip
	abort
)

// Orchestrator runs the configured dependent commands after a command
// finished successfully in an interactive session. It is meant to be
// subscribed to console.TerminateEvent.
type Orchestrator struct {
	config   Config
	runner   Runner
	commands console.CommandLoader
	mappers  map[string]Mapper
	trust    *Trust
	sources  SourceLocator
	logger   contracts.Logger
	prompter console.Prompter

	depth  int
	runID  string
	broken bool
}

type Option func(*Orchestrator)

func WithMapper(name string, mapper Mapper) Option {
	return func(o *Orchestrator) {
		o.mappers[name] = mapper
	}
}

func WithTrust(trust *Trust) Option {
	return func(o *Orchestrator) {
		o.trust = trust
	}
}

func WithSources(sources SourceLocator) Option {
	return func(o *Orchestrator) {
		o.sources = sources
	}
}

func WithLogger(logger contracts.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithPrompter(prompter console.Prompter) Option {
	return func(o *Orchestrator) {
		o.prompter = prompter
	}
}

func NewOrchestrator(cfg Config, runner Runner, commands console.CommandLoader, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		config:   cfg.clone(),
		runner:   runner,
		commands: commands,
		mappers:  make(map[string]Mapper),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.prompter == nil {
		o.prompter = console.DefaultPrompter()
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	for _, steps := range o.config.Chains {
		for _, step := range steps {
			if step.Mapper == "" {
				continue
			}
			if _, ok := o.mappers[step.Mapper]; !ok {
				return nil, ErrUnknownMapper.WithDetail("class", step.Class).WithDetail("mapper", step.Mapper)
			}
		}
	}
	return o, nil
}

// Handle runs the chain of the finished command. A dependent exiting with a
// non-zero code becomes the final exit code and stops the chain. Answering
// "n" stops the chain and every chain around it.
func (o *Orchestrator) Handle(ctx context.Context, event console.TerminateEvent) error {
	if event.ExitCode() != 0 || event.Command == nil || event.Input == nil || !event.Input.IsInteractive() {
		return nil
	}
	parent, ok := o.config.ClassOf(event.Command.Name())
	if !ok {
		return nil
	}
	steps := o.config.StepsFor(parent)
	if len(steps) == 0 {
		return nil
	}

	if o.depth == 0 {
		o.runID = uuid.NewString()
		o.broken = false
	}
	o.depth++
	defer func() { o.depth-- }()

	out := event.Output
	if out == nil {
		out = io.Discard
	}
	log := o.log("run", o.runID, "parent", event.Command.Name())

	for _, step := range steps {
		if o.broken {
			return nil
		}

		name, ok := o.config.NameOf(step.Class)
		if !ok {
			return ErrUnregisteredCommand.WithDetail("class", step.Class)
		}

		choice, err := o.confirm(event.Input, out, name, step.Class)
		if err != nil {
			return err
		}
		switch choice {
		case abort:
			_, _ = fmt.Fprintf(out, "Command chain broken at %q.\n", name)
			o.broken = true
			log.Info("chain aborted", "command", name)
			return nil
		case skip:
			log.Debug("chain step skipped", "command", name)
			continue
		}

		params, err := o.mapperFor(step).Map(event.Input)
		if err != nil {
			return ErrMapFailed.WithDetail("class", step.Class).WithDetail("mapper", step.Mapper).WithCause(err)
		}
		if params == nil {
			params = make(map[string]any)
		}
		params["command"] = name

		in := console.NewArrayInput(params)
		in.SetInteractive(event.Input.IsInteractive())
		in.SetStream(event.Input.Stream())

		log.Debug("running chain step", "command", name)
		code, err := o.runner.Run(ctx, in, out)
		if err != nil {
			return err
		}
		if code != 0 {
			log.Info("chain step failed", "command", name, "code", code)
			event.SetExitCode(code)
			return nil
		}
	}
	return nil
}

func (o *Orchestrator) confirm(in console.Input, out io.Writer, name, class string) (decision, error) {
	cmd, err := o.commands.Get(name)
	if err != nil {
		return abort, err
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Run %q", name)
	if desc := cmd.Description(); desc != "" {
		fmt.Fprintf(&text, " (%s)", desc)
	}
	text.WriteString("?")
	if !o.trusted(class) {
		text.WriteString(" (third-party command)")
	}
	text.WriteString(" [Y/s/n]: ")

	answer, err := o.prompter.Ask(in, out, &console.Question{
		Text:      text.String(),
		Default:   "y",
		Validator: console.ValidatorFunc(parseDecision),
	})
	if err != nil {
		return abort, err
	}
	if d, ok := answer.(decision); ok {
		return d, nil
	}
	parsed, err := parseDecision(answer)
	if err != nil {
		return abort, err
	}
	return parsed.(decision), nil
}

func parseDecision(value any) (any, error) {
	s, _ := value.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "y", "yes":
		return proceed, nil
	case "s", "skip":
		return skip, nil
	case "n", "no":
		return abort, nil
	}
	return nil, ErrInvalidAnswer
}

func (o *Orchestrator) trusted(class string) bool {
	if o.trust == nil || o.sources == nil {
		return true
	}
	return o.trust.IsTrusted(o.sources.SourceFile(class))
}

func (o *Orchestrator) mapperFor(step Step) Mapper {
	if step.Mapper != "" {
		return o.mappers[step.Mapper]
	}
	return step.Map
}

func (o *Orchestrator) log(args ...any) contracts.Logger {
	if o.logger == nil {
		return nopLogger{}
	}
	return o.logger.With(args...)
}

type nopLogger struct{}

func (nopLogger) Trace(string, ...any)           {}
func (nopLogger) Debug(string, ...any)           {}
func (nopLogger) Info(string, ...any)            {}
func (nopLogger) Warn(string, ...any)            {}
func (nopLogger) Error(string, ...any)           {}
func (nopLogger) Critical(string, ...any)        {}
func (n nopLogger) With(...any) contracts.Logger { return n }
