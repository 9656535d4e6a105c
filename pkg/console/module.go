package console

import (
	"context"
	"io"
	"os"

	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/errors"
)

type Module struct {
	commands  []Command
	appOpts   []AppOption
	args      []string
	output    io.Writer
	errOutput io.Writer
	handlers  []contracts.ErrorHandler
	exitCode  int
}

type ModuleOption func(*Module)

func WithCommands(commands ...Command) ModuleOption {
	return func(m *Module) {
		m.commands = append(m.commands, commands...)
	}
}

func WithApplicationOptions(opts ...AppOption) ModuleOption {
	return func(m *Module) {
		m.appOpts = append(m.appOpts, opts...)
	}
}

func WithArgs(args []string) ModuleOption {
	return func(m *Module) {
		m.args = args
	}
}

func WithOutput(out, errOut io.Writer) ModuleOption {
	return func(m *Module) {
		m.output = out
		m.errOutput = errOut
	}
}

func WithErrorHandlers(handlers ...contracts.ErrorHandler) ModuleOption {
	return func(m *Module) {
		m.handlers = append(m.handlers, handlers...)
	}
}

// NewModule runs one command from the process arguments when the app
// starts, then stops the app. Read the result with ExitCode.
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{
		args:      os.Args[1:],
		output:    os.Stdout,
		errOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) Name() string {
	return contracts.ConsoleModuleName
}

func (m *Module) ExitCode() int {
	return m.exitCode
}

func (m *Module) Register(container contracts.DIContainer) error {
	return container.Factory(
		contracts.ConsoleModuleName,
		func(c contracts.DIContainer) (interface{}, error) {
			var opts []AppOption
			if bus, ok := resolve[contracts.Bus](c, contracts.EventBusModuleName); ok {
				opts = append(opts, WithBus(bus))
			}
			if logger, ok := resolve[contracts.Logger](c, contracts.LoggerModuleName); ok {
				opts = append(opts, WithLogger(logger))
			}

			application := NewApplication(append(opts, m.appOpts...)...)
			if err := application.Register(m.commands...); err != nil {
				return nil, err
			}
			if loader, ok := resolve[CommandLoader](c, contracts.LoaderModuleName); ok {
				application.SetLoader(loader)
			}
			return application, nil
		},
	)
}

func (m *Module) Start(ctx contracts.AppContext) error {
	inst, err := ctx.Container().Resolve(contracts.ConsoleModuleName)
	if err != nil {
		return err
	}
	application, ok := inst.(*Application)
	if !ok {
		return ErrInvalidConsoleInstance
	}

	logger, _ := resolve[contracts.Logger](ctx.Container(), contracts.LoggerModuleName)
	handler := errors.NewChainErrorHandler(errors.NewIgnoreHandler(context.Canceled))
	for _, h := range m.handlers {
		handler.Add(h)
	}
	handler.Add(errors.NewConsoleErrorHandler(m.errOutput, logger))

	in := NewArgvInput(m.args)
	in.SetInteractive(DetectInteractive())

	code, err := application.Run(ctx.Ctx(), in, m.output)
	if err != nil {
		_ = handler.Handle(ctx.Ctx(), err)
	}
	m.exitCode = code

	ctx.Stop()
	return nil
}

func (m *Module) Stop(contracts.AppContext) error {
	return nil
}

func resolve[T any](c contracts.DIContainer, id string) (T, bool) {
	var zero T
	if !c.Has(id) {
		return zero, false
	}
	inst, err := c.Resolve(id)
	if err != nil {
		return zero, false
	}
	value, ok := inst.(T)
	return value, ok
}
