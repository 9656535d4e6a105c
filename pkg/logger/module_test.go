package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shuldan/clikit/pkg/app"
	"github.com/shuldan/clikit/pkg/config"
	"github.com/shuldan/clikit/pkg/contracts"
)

type testAppContext struct {
	container contracts.DIContainer
}

func (c *testAppContext) Ctx() context.Context             { return context.Background() }
func (c *testAppContext) Container() contracts.DIContainer { return c.container }
func (c *testAppContext) AppName() string                  { return "clikit" }
func (c *testAppContext) Version() string                  { return "0.1.0" }
func (c *testAppContext) Environment() string              { return "test" }
func (c *testAppContext) StartTime() time.Time             { return time.Unix(0, 0) }
func (c *testAppContext) StopTime() time.Time              { return time.Unix(2, 0) }
func (c *testAppContext) IsRunning() bool                  { return true }
func (c *testAppContext) Stop()                            {}

func TestModule_WritesToConfiguredFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clikit.log")
	container := app.NewContainer()
	_ = container.Instance(contracts.ConfigModuleName, config.NewMapConfig(map[string]any{
		"logger": map[string]any{
			"level": "debug",
			"file":  map[string]any{"path": path, "max_size": 1},
		},
	}))

	m := NewModule()
	if m.Name() != contracts.LoggerModuleName {
		t.Fatalf("unexpected module name %q", m.Name())
	}
	if err := m.Register(container); err != nil {
		t.Fatalf("register: %v", err)
	}

	ctx := &testAppContext{container: container}
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	for _, want := range []string{"DEBUG console starting app=clikit version=0.1.0 env=test", "DEBUG console stopped took=2s"} {
		if !strings.Contains(got, want) {
			t.Errorf("log file lacks %q:\n%s", want, got)
		}
	}
}

func TestModule_OptionsOverrideConfig(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	container := app.NewContainer()
	_ = container.Instance(contracts.ConfigModuleName, config.NewMapConfig(map[string]any{
		"logger": map[string]any{"level": "error"},
	}))

	m := NewModule(WithLevel(LevelTrace), WithWriter(&buf))
	if err := m.Register(container); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := container.Resolve(contracts.LoggerModuleName)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	inst.(contracts.Logger).Trace("visible")

	if buf.String() != "TRACE visible\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestModule_WithoutConfig(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	m := NewModule(WithWriter(nil))
	if err := m.Register(container); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Start(&testAppContext{container: container}); err != nil {
		t.Fatalf("start: %v", err)
	}
}

func TestModule_StartRejectsForeignInstance(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	_ = container.Instance(contracts.LoggerModuleName, "not a logger")

	err := NewModule().Start(&testAppContext{container: container})
	if !errors.Is(err, ErrInvalidLoggerInstance) {
		t.Errorf("expected ErrInvalidLoggerInstance, got %v", err)
	}
}

func TestOptionsFromConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{"format", map[string]any{"format": "xml"}, ErrUnknownFormat},
		{"output", map[string]any{"output": "/var/log/x"}, ErrUnknownOutput},
		{"file path", map[string]any{"file": map[string]any{"max_size": 5}}, ErrMissingFilePath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := OptionsFromConfig(config.NewMapConfig(tt.values))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOptionsFromConfig_JSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.log")
	opts, err := OptionsFromConfig(config.NewMapConfig(map[string]any{
		"format": "json",
		"file":   path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := New(opts...)
	log.Info("done", "code", 0)
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"done","code":0`) {
		t.Errorf("expected a JSON record, got %s", data)
	}
}
