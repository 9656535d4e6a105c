package loader

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shuldan/clikit/pkg/app"
	"github.com/shuldan/clikit/pkg/config"
	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
)

func TestModule_RegistersResolver(t *testing.T) {
	t.Parallel()

	container := app.NewContainer()
	_ = container.Instance(contracts.ConfigModuleName, config.NewMapConfig(map[string]any{
		"console": map[string]any{
			"commands": map[string]any{"db:migrate": "app.migrate"},
		},
	}))

	calls := 0
	m := NewModule(newCatalog(t, &calls), WithCommands(map[string]string{"pinned": "app.fixed"}))
	if m.Name() != contracts.LoaderModuleName {
		t.Errorf("Name = %q", m.Name())
	}
	if err := m.Register(container); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	inst, err := container.Resolve(contracts.LoaderModuleName)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	loader, ok := inst.(console.CommandLoader)
	if !ok {
		t.Fatalf("expected a console.CommandLoader, got %T", inst)
	}
	if diff := cmp.Diff([]string{"db:migrate", "pinned"}, loader.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandMap(t *testing.T) {
	t.Parallel()

	cfg := config.NewMapConfig(map[string]any{
		"console": map[string]any{"commands": map[string]any{"a": "app.a", "b": "app.b"}},
	})
	got, err := CommandMap(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"a": "app.a", "b": "app.b"}, got); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}

	empty, err := CommandMap(config.NewMapConfig(nil))
	if err != nil || len(empty) != 0 {
		t.Errorf("missing key should give an empty map, got %v, %v", empty, err)
	}

	for _, bad := range []map[string]any{
		{"console": map[string]any{"commands": "oops"}},
		{"console": map[string]any{"commands": map[string]any{"a": 1}}},
		{"console": map[string]any{"commands": map[string]any{"a": ""}}},
	} {
		if _, err = CommandMap(config.NewMapConfig(bad)); !errors.Is(err, ErrInvalidCommandMap) {
			t.Errorf("%v: expected ErrInvalidCommandMap, got %v", bad, err)
		}
	}
}
