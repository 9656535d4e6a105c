package contracts

import (
	"context"
	"time"
)

const (
	ConfigModuleName   = "config"
	LoggerModuleName   = "logger"
	EventBusModuleName = "events"
	ConsoleModuleName  = "console"
	LoaderModuleName   = "loader"
	ChainModuleName    = "chain"
)

type DIContainer interface {
	Has(id string) bool
	Instance(id string, concrete any) error
	Factory(id string, factory func(c DIContainer) (any, error)) error
	Resolve(id string) (any, error)
}

type AppContext interface {
	Ctx() context.Context
	Container() DIContainer
	AppName() string
	Version() string
	Environment() string
	StartTime() time.Time
	StopTime() time.Time
	IsRunning() bool
	Stop()
}

type AppModule interface {
	Name() string
	Register(container DIContainer) error
	Start(ctx AppContext) error
	Stop(ctx AppContext) error
}

type AppRegistry interface {
	Register(module AppModule) error
	All() []AppModule
	Shutdown(ctx AppContext) error
}

type App interface {
	Register(module AppModule) error
	Run() error
}
