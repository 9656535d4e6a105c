package chain

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/shuldan/clikit/pkg/app"
	"github.com/shuldan/clikit/pkg/config"
	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/events"
)

type testAppContext struct {
	container contracts.DIContainer
}

func (c *testAppContext) Ctx() context.Context             { return context.Background() }
func (c *testAppContext) Container() contracts.DIContainer { return c.container }
func (c *testAppContext) AppName() string                  { return "test" }
func (c *testAppContext) Version() string                  { return "0.0.0" }
func (c *testAppContext) Environment() string              { return "test" }
func (c *testAppContext) StartTime() time.Time             { return time.Time{} }
func (c *testAppContext) StopTime() time.Time              { return time.Time{} }
func (c *testAppContext) IsRunning() bool                  { return true }
func (c *testAppContext) Stop()                            {}

func TestModule_SubscribesOrchestrator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chainFile := filepath.Join(dir, "chains.yaml")
	write(t, chainFile, "chains:\n  app.make:\n    app.migrate:\n      map:\n        name: \"--name\"\n")

	container := app.NewContainer()
	_ = container.Instance(contracts.EventBusModuleName, events.New())
	_ = container.Instance(contracts.ConfigModuleName, config.NewMapConfig(map[string]any{
		"console": map[string]any{
			"commands":   map[string]any{"make": "app.make", "migrate": "app.migrate"},
			"chain_file": chainFile,
		},
	}))

	var runs []string
	makeCmd := &recordingCommand{BaseCommand: console.NewBaseCommand("make", "Make"), args: []string{"name"}, runs: &runs}
	migrate := &recordingCommand{BaseCommand: console.NewBaseCommand("migrate", "Migrate"), options: []string{"name"}, runs: &runs}

	consoleModule := console.NewModule(
		console.WithCommands(makeCmd, migrate),
		console.WithApplicationOptions(console.WithPrompter(console.NewStreamPrompter(strings.NewReader("y\n")))),
	)
	chainModule := NewModule(WithTrustOptions(WithWorkDir(dir), WithModuleCache(filepath.Join(dir, "modcache"))))
	if chainModule.Name() != contracts.ChainModuleName {
		t.Errorf("Name = %q", chainModule.Name())
	}

	for _, m := range []contracts.AppModule{chainModule, consoleModule} {
		if err := m.Register(container); err != nil {
			t.Fatalf("Register(%s) failed: %v", m.Name(), err)
		}
	}
	if err := chainModule.Start(&testAppContext{container: container}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	inst, err := container.Resolve(contracts.ConsoleModuleName)
	if err != nil {
		t.Fatalf("Resolve console failed: %v", err)
	}
	application := inst.(*console.Application)

	out := &bytes.Buffer{}
	code, err := application.Run(context.Background(), console.NewArrayInput(map[string]any{"command": "make", "name": "orders"}), out)
	if err != nil || code != 0 {
		t.Fatalf("Run = %d, %v", code, err)
	}
	if diff := cmp.Diff([]string{"make", "migrate"}, runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	if got := migrate.inputs[0].Option("name"); got != "orders" {
		t.Errorf("migrate --name = %v", got)
	}
}

func TestModule_RequiresConsole(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	_ = container.Instance(contracts.EventBusModuleName, events.New())

	m := NewModule()
	if err := m.Register(container); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	err := m.Start(&testAppContext{container: container})
	if !errors.Is(err, ErrMissingService) {
		t.Errorf("expected ErrMissingService, got %v", err)
	}
}

func TestModule_ExplicitConfig(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	_ = container.Instance(contracts.EventBusModuleName, events.New())
	if err := console.NewModule().Register(container); err != nil {
		t.Fatal(err)
	}

	m := NewModule(WithConfig(Config{
		Commands: map[string]string{"a": "app.a"},
		Chains:   map[string][]Step{"app.a": {{Class: "app.b"}}},
	}))
	if err := m.Register(container); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := container.Resolve(contracts.ChainModuleName); !errors.Is(err, ErrUnregisteredCommand) {
		t.Errorf("expected ErrUnregisteredCommand, got %v", err)
	}
}
