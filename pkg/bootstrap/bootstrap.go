package bootstrap

import (
	"os"
	"time"

	"github.com/shuldan/clikit/pkg/app"
	"github.com/shuldan/clikit/pkg/chain"
	"github.com/shuldan/clikit/pkg/config"
	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/events"
	"github.com/shuldan/clikit/pkg/loader"
	"github.com/shuldan/clikit/pkg/logger"
)

type Bootstrap struct {
	appName         string
	appVersion      string
	appEnvironment  string
	modules         []contracts.AppModule
	console         *console.Module
	gracefulTimeout time.Duration
}

func New(appName string, appVersion string, envPrefix string, configPaths ...string) *Bootstrap {
	appEnvironment := os.Getenv("APP_ENVIRONMENT")
	if appEnvironment == "" {
		appEnvironment = "development"
	}

	configModule := config.NewModule(envPrefix, configPaths...)

	modules := []contracts.AppModule{
		configModule,
	}

	return &Bootstrap{
		appName:         appName,
		appVersion:      appVersion,
		appEnvironment:  appEnvironment,
		modules:         modules,
		gracefulTimeout: 30 * time.Second,
	}
}

func (b *Bootstrap) WithGracefulTimeout(timeout time.Duration) *Bootstrap {
	b.gracefulTimeout = timeout
	return b
}

func (b *Bootstrap) WithLogger(opts ...logger.Option) *Bootstrap {
	b.modules = append(b.modules, logger.NewModule(opts...))
	return b
}

func (b *Bootstrap) WithEventBus(opts ...events.Option) *Bootstrap {
	b.modules = append(b.modules, events.NewModule(opts...))
	return b
}

func (b *Bootstrap) WithCommandLoader(catalog *loader.Catalog, opts ...loader.ModuleOption) *Bootstrap {
	b.modules = append(b.modules, loader.NewModule(catalog, opts...))
	return b
}

func (b *Bootstrap) WithChains(opts ...chain.ModuleOption) *Bootstrap {
	b.modules = append(b.modules, chain.NewModule(opts...))
	return b
}

func (b *Bootstrap) WithConsole(opts ...console.ModuleOption) *Bootstrap {
	base := []console.ModuleOption{
		console.WithApplicationOptions(console.WithVersion(b.appName, b.appVersion)),
	}
	b.console = console.NewModule(append(base, opts...)...)
	return b
}

func (b *Bootstrap) ExitCode() int {
	if b.console == nil {
		return 0
	}
	return b.console.ExitCode()
}

func (b *Bootstrap) CreateApp() (contracts.App, error) {
	a := app.New(
		app.Info{
			AppName:     b.appName,
			Version:     b.appVersion,
			Environment: b.appEnvironment,
		},
		app.NewContainer(),
		app.NewRegistry(),
		app.WithGracefulTimeout(b.gracefulTimeout),
	)

	modules := b.modules
	if b.console != nil {
		modules = append(modules, b.console)
	}
	for _, module := range modules {
		if err := a.Register(module); err != nil {
			return nil, err
		}
	}

	return a, nil
}
