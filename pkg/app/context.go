package app

import (
	"context"
	"sync"
	"time"

	"github.com/shuldan/clikit/pkg/contracts"
)

type Info struct {
	AppName     string
	Version     string
	Environment string
}

type appContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container contracts.DIContainer
	info      Info
	startTime time.Time

	once     sync.Once
	mu       sync.RWMutex
	stopTime time.Time
}

func newAppContext(parent context.Context, info Info, container contracts.DIContainer) *appContext {
	ctx, cancel := context.WithCancel(parent)
	return &appContext{
		ctx:       ctx,
		cancel:    cancel,
		container: container,
		info:      info,
		startTime: time.Now(),
	}
}

func (c *appContext) Ctx() context.Context             { return c.ctx }
func (c *appContext) Container() contracts.DIContainer { return c.container }
func (c *appContext) AppName() string                  { return c.info.AppName }
func (c *appContext) Version() string                  { return c.info.Version }
func (c *appContext) Environment() string              { return c.info.Environment }
func (c *appContext) StartTime() time.Time             { return c.startTime }

func (c *appContext) StopTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopTime
}

func (c *appContext) IsRunning() bool {
	return c.ctx.Err() == nil
}

func (c *appContext) Stop() {
	c.once.Do(func() {
		c.mu.Lock()
		c.stopTime = time.Now()
		c.mu.Unlock()
		c.cancel()
	})
}
