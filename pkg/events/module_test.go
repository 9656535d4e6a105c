package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shuldan/clikit/pkg/app"
	"github.com/shuldan/clikit/pkg/contracts"
)

type mockAppContext struct {
	container contracts.DIContainer
}

func (m *mockAppContext) Ctx() context.Context             { return context.Background() }
func (m *mockAppContext) Container() contracts.DIContainer { return m.container }
func (m *mockAppContext) AppName() string                  { return "test" }
func (m *mockAppContext) Version() string                  { return "0.0.0" }
func (m *mockAppContext) Environment() string              { return "test" }
func (m *mockAppContext) StartTime() time.Time             { return time.Time{} }
func (m *mockAppContext) StopTime() time.Time              { return time.Time{} }
func (m *mockAppContext) IsRunning() bool                  { return true }
func (m *mockAppContext) Stop()                            {}

func TestModule_Name(t *testing.T) {
	t.Parallel()
	if name := NewModule().Name(); name != contracts.EventBusModuleName {
		t.Errorf("expected %s, got %s", contracts.EventBusModuleName, name)
	}
}

func TestModule_RegisterUsesLogger(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	logger := &mockLogger{}
	if err := container.Instance(contracts.LoggerModuleName, logger); err != nil {
		t.Fatal(err)
	}

	m := NewModule()
	if err := m.Register(container); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	inst, err := container.Resolve(contracts.EventBusModuleName)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	bus, ok := inst.(*Bus)
	if !ok {
		t.Fatalf("expected *Bus, got %T", inst)
	}

	_ = Listen(bus, func(context.Context, runFinished) error { return errors.New("rejected") })
	_ = bus.Publish(context.Background(), runFinished{})

	if len(logger.logs) != 1 || logger.logs[0].level != "error" {
		t.Errorf("expected listener failure to be logged, got %+v", logger.logs)
	}

	if err := m.Stop(&mockAppContext{container: container}); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := bus.Publish(context.Background(), runFinished{}); !errors.Is(err, ErrPublishOnClosedBus) {
		t.Errorf("expected closed bus after Stop, got %v", err)
	}
}

func TestModule_RegisterWithoutLogger(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	if err := NewModule().Register(container); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := container.Resolve(contracts.EventBusModuleName); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
}

func TestModule_StopWithoutBus(t *testing.T) {
	t.Parallel()

	err := NewModule().Stop(&mockAppContext{container: app.NewContainer()})
	if !errors.Is(err, ErrBusNotFound) {
		t.Errorf("expected ErrBusNotFound, got %v", err)
	}
}

func TestModule_StopWithWrongInstance(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	_ = container.Instance(contracts.EventBusModuleName, "not a bus")

	err := NewModule().Stop(&mockAppContext{container: container})
	if !errors.Is(err, ErrInvalidBusInstance) {
		t.Errorf("expected ErrInvalidBusInstance, got %v", err)
	}
}
