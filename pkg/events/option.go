package events

import "time"

type Option func(*config)

type config struct {
	panicHandler   PanicHandler
	errorHandler   ErrorHandler
	asyncMode      bool
	workerCount    int
	enqueueTimeout time.Duration
}

func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) { c.panicHandler = h }
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) { c.errorHandler = h }
}

// WithAsyncMode moves delivery to background workers. Publish then returns
// before listeners run and listener errors only reach the ErrorHandler.
func WithAsyncMode(async bool) Option {
	return func(c *config) { c.asyncMode = async }
}

func WithWorkerCount(count int) Option {
	return func(c *config) { c.workerCount = max(count, 1) }
}

func WithEnqueueTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.enqueueTimeout = d
		}
	}
}
