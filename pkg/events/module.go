package events

import (
	"github.com/shuldan/clikit/pkg/contracts"
)

type module struct {
	opts []Option
}

func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.EventBusModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(
		contracts.EventBusModuleName,
		func(c contracts.DIContainer) (interface{}, error) {
			opts := m.loggerOptions(c)
			return New(append(opts, m.opts...)...), nil
		},
	)
}

func (m *module) loggerOptions(c contracts.DIContainer) []Option {
	if !c.Has(contracts.LoggerModuleName) {
		return nil
	}
	inst, err := c.Resolve(contracts.LoggerModuleName)
	if err != nil {
		return nil
	}
	logger, ok := inst.(contracts.Logger)
	if !ok {
		return nil
	}
	return []Option{
		WithPanicHandler(NewDefaultPanicHandler(logger)),
		WithErrorHandler(NewDefaultErrorHandler(logger)),
	}
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

func (m *module) Stop(ctx contracts.AppContext) error {
	b, err := ctx.Container().Resolve(contracts.EventBusModuleName)
	if err != nil {
		return ErrBusNotFound.WithCause(err)
	}

	busInst, ok := b.(contracts.Bus)
	if !ok {
		return ErrInvalidBusInstance
	}

	return busInst.Close()
}
