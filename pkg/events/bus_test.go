package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type runFinished struct {
	Command string
	code    *int
}

type otherEvent struct{}

type auditor struct {
	seen []string
}

func (a *auditor) Handle(_ context.Context, e runFinished) error {
	a.seen = append(a.seen, e.Command)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	errs   []error
	panics []any
}

func (r *recorder) Handle(_ any, _ any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

type panicRecorder struct{ *recorder }

func (p panicRecorder) Handle(_ any, _ any, value any, _ []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panics = append(p.panics, value)
}

func TestBus_SyncOrderAndWriteBack(t *testing.T) {
	t.Parallel()

	bus := New()
	a := &auditor{}
	var order []string

	if err := bus.Subscribe((*runFinished)(nil), a); err != nil {
		t.Fatalf("subscribe method listener: %v", err)
	}
	if err := Listen(bus, func(_ context.Context, e runFinished) error {
		order = append(order, "first")
		*e.code = 17
		return nil
	}); err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := bus.Subscribe((*runFinished)(nil), func(_ context.Context, e runFinished) error {
		order = append(order, "second")
		if *e.code != 17 {
			t.Errorf("second listener saw code %d", *e.code)
		}
		return nil
	}); err != nil {
		t.Fatalf("subscribe func listener: %v", err)
	}
	_ = Listen(bus, func(context.Context, otherEvent) error {
		t.Error("listener for another type must not run")
		return nil
	})

	code := 0
	if err := bus.Publish(context.Background(), runFinished{Command: "make:migration", code: &code}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if code != 17 {
		t.Errorf("listener write-back lost, code = %d", code)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"make:migration"}, a.seen); diff != "" {
		t.Errorf("method listener mismatch (-want +got):\n%s", diff)
	}
	if err := bus.Publish(context.Background(), nil); err != nil {
		t.Errorf("nil events are ignored, got %v", err)
	}
}

func TestBus_SubscribeErrors(t *testing.T) {
	t.Parallel()

	ok := func(context.Context, runFinished) error { return nil }
	tests := []struct {
		name      string
		eventType any
		listener  any
		want      error
	}{
		{"nil type", nil, ok, ErrInvalidEventType},
		{"value type", runFinished{}, ok, ErrInvalidEventType},
		{"pointer to non-struct", (*int)(nil), ok, ErrInvalidEventType},
		{"nil listener", (*runFinished)(nil), nil, ErrInvalidListener},
		{"no Handle method", (*runFinished)(nil), 42, ErrInvalidListener},
		{"missing context", (*runFinished)(nil), func(runFinished) error { return nil }, ErrInvalidListenerSignature},
		{"no error result", (*runFinished)(nil), func(context.Context, runFinished) {}, ErrInvalidListenerSignature},
		{"pointer listener", (*runFinished)(nil), func(context.Context, *runFinished) error { return nil }, ErrListenerMismatch},
		{"other event", (*otherEvent)(nil), ok, ErrListenerMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := New().Subscribe(tt.eventType, tt.listener); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBus_SyncErrorStopsDelivery(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	bus := New(WithErrorHandler(rec))
	failure := errors.New("chain aborted")

	_ = Listen(bus, func(context.Context, runFinished) error { return failure })
	_ = Listen(bus, func(context.Context, runFinished) error {
		t.Error("delivery should stop at the first error")
		return nil
	})

	if err := bus.Publish(context.Background(), runFinished{}); err != failure {
		t.Fatalf("expected the listener error unchanged, got %v", err)
	}
	if len(rec.errs) != 1 || rec.errs[0] != failure {
		t.Errorf("error handler saw %v", rec.errs)
	}
}

func TestBus_SyncPanicBecomesError(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	bus := New(WithPanicHandler(panicRecorder{rec}))
	_ = Listen(bus, func(context.Context, runFinished) error { panic("boom") })

	err := bus.Publish(context.Background(), runFinished{})
	if !errors.Is(err, ErrListenerPanic) {
		t.Fatalf("expected ErrListenerPanic, got %v", err)
	}
	if diff := cmp.Diff([]any{"boom"}, rec.panics); diff != "" {
		t.Errorf("panic handler mismatch (-want +got):\n%s", diff)
	}
}

func TestBus_Closed(t *testing.T) {
	t.Parallel()

	bus := New()
	if err := bus.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := Listen(bus, func(context.Context, runFinished) error { return nil }); !errors.Is(err, ErrBusClosed) {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
	if err := bus.Publish(context.Background(), runFinished{}); !errors.Is(err, ErrPublishOnClosedBus) {
		t.Errorf("expected ErrPublishOnClosedBus, got %v", err)
	}
}

func TestBus_AsyncDeliversBeforeClose(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	bus := New(WithAsyncMode(true), WithWorkerCount(3), WithErrorHandler(rec))

	var mu sync.Mutex
	delivered := 0
	_ = Listen(bus, func(_ context.Context, e runFinished) error {
		mu.Lock()
		defer mu.Unlock()
		delivered++
		if e.Command == "fail" {
			return errors.New("failed")
		}
		return nil
	})

	for _, name := range []string{"a", "b", "fail", "c"} {
		if err := bus.Publish(context.Background(), runFinished{Command: name}); err != nil {
			t.Fatalf("publish %s: %v", name, err)
		}
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if delivered != 4 {
		t.Errorf("expected 4 deliveries, got %d", delivered)
	}
	if len(rec.errs) != 1 {
		t.Errorf("expected one reported error, got %v", rec.errs)
	}
}

func TestBus_AsyncPublishRacingClose(t *testing.T) {
	t.Parallel()

	for range 50 {
		bus := New(WithAsyncMode(true), WithWorkerCount(2))
		_ = Listen(bus, func(context.Context, runFinished) error { return nil })

		var wg sync.WaitGroup
		errs := make(chan error, 400)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					errs <- bus.Publish(context.Background(), runFinished{})
				}
			}()
		}
		_ = bus.Close()
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil && !errors.Is(err, ErrPublishOnClosedBus) {
				t.Fatalf("unexpected publish error: %v", err)
			}
		}
	}
}

func TestBus_AsyncBackpressure(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	bus := New(WithAsyncMode(true), WithWorkerCount(0), WithEnqueueTimeout(20*time.Millisecond))
	_ = Listen(bus, func(context.Context, runFinished) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	})

	if err := bus.Publish(context.Background(), runFinished{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	<-started

	var err error
	for i := 0; i < 20 && err == nil; i++ {
		err = bus.Publish(context.Background(), runFinished{})
	}
	if !errors.Is(err, ErrEventChannelBlocked) {
		t.Fatalf("expected ErrEventChannelBlocked, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := bus.Publish(ctx, runFinished{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	close(release)
	_ = bus.Close()
}
