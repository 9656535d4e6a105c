package events

import (
	"context"
	"reflect"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shuldan/clikit/pkg/contracts"
)

var _ contracts.Bus = (*Bus)(nil)

type delivery struct {
	ctx      context.Context
	event    any
	listener *listener
}

type Bus struct {
	mu        sync.RWMutex
	listeners map[reflect.Type][]*listener
	closed    bool

	onPanic PanicHandler
	onError ErrorHandler

	queue   chan delivery
	wait    time.Duration
	workers sync.WaitGroup
}

func New(opts ...Option) *Bus {
	cfg := &config{workerCount: 1, enqueueTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	b := &Bus{
		listeners: make(map[reflect.Type][]*listener),
		onPanic:   cfg.panicHandler,
		onError:   cfg.errorHandler,
		wait:      cfg.enqueueTimeout,
	}
	if b.onPanic == nil {
		b.onPanic = NewDefaultPanicHandler(nil)
	}
	if b.onError == nil {
		b.onError = NewDefaultErrorHandler(nil)
	}

	if cfg.asyncMode {
		b.queue = make(chan delivery, cfg.workerCount*10)
		for range cfg.workerCount {
			b.workers.Add(1)
			go b.work()
		}
	}
	return b
}

// Subscribe takes a typed nil pointer naming the event, e.g.
// (*console.TerminateEvent)(nil), and a listener for the value type.
func (b *Bus) Subscribe(eventType any, l any) error {
	t := reflect.TypeOf(eventType)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return ErrInvalidEventType.WithDetail("type", reflect.TypeOf(eventType))
	}

	lst, err := newListener(l)
	if err != nil {
		return err
	}
	if lst.eventType != t.Elem() {
		return ErrListenerMismatch.
			WithDetail("expected", t.Elem().String()).
			WithDetail("actual", lst.eventType.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	b.listeners[lst.eventType] = append(b.listeners[lst.eventType], lst)
	return nil
}

// Publish delivers event to its listeners. In synchronous mode the first
// listener error stops delivery and is returned unchanged.
func (b *Bus) Publish(ctx context.Context, event any) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrPublishOnClosedBus
	}
	targets := b.listeners[reflect.TypeOf(event)]

	if b.queue != nil {
		// Close waits for the lock before closing the queue.
		defer b.mu.RUnlock()
		for _, l := range targets {
			if err := b.enqueue(delivery{ctx: ctx, event: event, listener: l}); err != nil {
				return err
			}
		}
		return nil
	}

	b.mu.RUnlock()
	for _, l := range targets {
		if err := b.deliver(delivery{ctx: ctx, event: event, listener: l}); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) enqueue(d delivery) error {
	timer := time.NewTimer(b.wait)
	defer timer.Stop()

	select {
	case b.queue <- d:
		return nil
	case <-d.ctx.Done():
		return d.ctx.Err()
	case <-timer.C:
		return ErrEventChannelBlocked
	}
}

func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.queue != nil {
		close(b.queue)
	}
	b.workers.Wait()
	return nil
}

func (b *Bus) work() {
	defer b.workers.Done()
	for d := range b.queue {
		_ = b.deliver(d)
	}
}

func (b *Bus) deliver(d delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.onPanic.Handle(d.event, d.listener.name, r, debug.Stack())
			err = ErrListenerPanic.WithDetail("event", reflect.TypeOf(d.event).String())
		}
	}()

	if err = d.listener.call(d.ctx, d.event); err != nil {
		b.onError.Handle(d.event, d.listener.name, err)
	}
	return err
}
