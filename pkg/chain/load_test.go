package chain

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shuldan/clikit/pkg/config"
)

type warnRecorder struct {
	recordingLogger
	warnings []string
}

func (w *warnRecorder) Warn(msg string, _ ...any) {
	w.warnings = append(w.warnings, msg)
}

const yamlChains = `
commands:
  "make:migration": app.make-migration
  migrate: app.migrate
  seed: app.seed
  notify: app.notify
chains:
  app.make-migration:
    app.seed:
      map:
        name: target
    app.migrate:
      map:
        "--name": "--name"
        "--tag": "--tag"
    app.notify: announce
  app.migrate:
    app.notify: ~
  app.broken: just-a-string
`

func TestLoadYAML_KeepsDeclaredOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chains.yaml")
	write(t, path, yamlChains)
	logger := &warnRecorder{}

	cfg, err := LoadYAML(path, logger)
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}

	wantCommands := map[string]string{
		"make:migration": "app.make-migration",
		"migrate":        "app.migrate",
		"seed":           "app.seed",
		"notify":         "app.notify",
	}
	if diff := cmp.Diff(wantCommands, cfg.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	wantChains := map[string][]Step{
		"app.make-migration": {
			{Class: "app.seed", Map: MapSpec{{From: "name", To: "target"}}},
			{Class: "app.migrate", Map: MapSpec{{From: "--name", To: "--name"}, {From: "--tag", To: "--tag"}}},
			{Class: "app.notify", Mapper: "announce"},
		},
		"app.migrate": {{Class: "app.notify"}},
	}
	if diff := cmp.Diff(wantChains, cfg.Chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
	if len(logger.warnings) != 1 {
		t.Errorf("expected one warning for the malformed chain, got %v", logger.warnings)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := LoadYAML(filepath.Join(dir, "missing.yaml"), nil); !errors.Is(err, ErrReadChainFile) {
		t.Errorf("expected ErrReadChainFile, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	write(t, bad, "chains: [unterminated\n")
	if _, err := LoadYAML(bad, nil); !errors.Is(err, ErrParseChainFile) {
		t.Errorf("expected ErrParseChainFile, got %v", err)
	}

	entry := filepath.Join(dir, "entry.yaml")
	write(t, entry, "commands:\n  migrate: [app.migrate]\n")
	if _, err := LoadYAML(entry, nil); !errors.Is(err, ErrInvalidCommandEntry) {
		t.Errorf("expected ErrInvalidCommandEntry, got %v", err)
	}

	steps := map[string]string{
		"map is a list":    "chains:\n  app.make:\n    app.migrate:\n      map: [--name]\n",
		"nested target":    "chains:\n  app.make:\n    app.migrate:\n      map:\n        --name: {to: --name}\n",
		"map and mapper":   "chains:\n  app.make:\n    app.migrate:\n      mapper: names\n      map:\n        --name: --name\n",
		"misspelled field": "chains:\n  app.make:\n    app.migrate:\n      mapping: names\n",
	}
	for name, content := range steps {
		path := filepath.Join(dir, strings.ReplaceAll(name, " ", "-")+".yaml")
		write(t, path, content)
		if _, err := LoadYAML(path, nil); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("%s: expected ErrInvalidStep, got %v", name, err)
		}
	}
}

const hclChains = `
commands = {
  "make:migration" = "app.make-migration"
  "migrate"        = "app.migrate"
  "seed"           = "app.seed"
}

chain "app.make-migration" {
  next "app.seed" {
    map = {
      "name" = "target"
    }
  }

  next "app.migrate" {
    map = {
      "--tag"  = "--tag"
      "--name" = "--name"
    }
  }
}

chain "app.migrate" {
  next "app.seed" {
    mapper = "seeds"
  }
}
`

func TestLoadHCL_KeepsBlockOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chains.hcl")
	write(t, path, hclChains)

	cfg, err := LoadHCL(path, nil)
	if err != nil {
		t.Fatalf("LoadHCL failed: %v", err)
	}

	wantChains := map[string][]Step{
		"app.make-migration": {
			{Class: "app.seed", Map: MapSpec{{From: "name", To: "target"}}},
			{Class: "app.migrate", Map: MapSpec{{From: "--name", To: "--name"}, {From: "--tag", To: "--tag"}}},
		},
		"app.migrate": {{Class: "app.seed", Mapper: "seeds"}},
	}
	if diff := cmp.Diff(wantChains, cfg.Chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
	if cfg.Commands["migrate"] != "app.migrate" || len(cfg.Commands) != 3 {
		t.Errorf("unexpected commands %v", cfg.Commands)
	}
}

func TestLoadHCL_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := LoadHCL(filepath.Join(dir, "missing.hcl"), nil); !errors.Is(err, ErrReadChainFile) {
		t.Errorf("expected ErrReadChainFile, got %v", err)
	}

	bad := filepath.Join(dir, "bad.hcl")
	write(t, bad, "chain \"app.x\" {\n  next {\n  }\n}\n")
	if _, err := LoadHCL(bad, nil); !errors.Is(err, ErrParseChainFile) {
		t.Errorf("expected ErrParseChainFile, got %v", err)
	}

	both := filepath.Join(dir, "both.hcl")
	write(t, both, "chain \"app.make\" {\n  next \"app.seed\" {\n    mapper = \"seeds\"\n    map = { \"name\" = \"target\" }\n  }\n}\n")
	if _, err := LoadHCL(both, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yml := filepath.Join(dir, "chains.yml")
	write(t, yml, "chains:\n  app.a:\n    app.b: ~\n")

	cfg, err := Load(yml, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]Step{{Class: "app.b"}}, cfg.StepsFor("app.a")); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	if _, err = Load(filepath.Join(dir, "chains.toml"), nil); !errors.Is(err, ErrUnsupportedChainFile) {
		t.Errorf("expected ErrUnsupportedChainFile, got %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chains.yaml")
	write(t, path, "commands:\n  notify: app.notify\nchains:\n  app.migrate:\n    app.notify: ~\n")

	cfg, err := FromConfig(config.NewMapConfig(map[string]any{
		"console": map[string]any{
			"commands":   map[string]any{"migrate": "app.migrate"},
			"chain_file": path,
		},
	}), nil)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"migrate": "app.migrate", "notify": "app.notify"}, cfg.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if name, ok := cfg.NameOf("app.notify"); !ok || name != "notify" {
		t.Errorf("NameOf(app.notify) = %q, %v", name, ok)
	}

	write(t, path, "chains:\n  app.migrate:\n    app.ghost: ~\n")
	_, err = FromConfig(config.NewMapConfig(map[string]any{
		"console": map[string]any{
			"commands":   map[string]any{"migrate": "app.migrate"},
			"chain_file": path,
		},
	}), nil)
	if !errors.Is(err, ErrUnregisteredCommand) {
		t.Errorf("expected ErrUnregisteredCommand, got %v", err)
	}
}

func TestConfig_NameOfPrefersFirstName(t *testing.T) {
	t.Parallel()

	cfg := Config{Commands: map[string]string{"migrate": "app.migrate", "db:migrate": "app.migrate"}}
	if name, _ := cfg.NameOf("app.migrate"); name != "db:migrate" {
		t.Errorf("NameOf = %q, want db:migrate", name)
	}
	if _, ok := cfg.NameOf("app.other"); ok {
		t.Error("NameOf should miss an unmapped class")
	}
}

func TestConfig_Merge(t *testing.T) {
	t.Parallel()

	base := Config{
		Commands: map[string]string{"a": "app.a"},
		Chains:   map[string][]Step{"app.a": {{Class: "app.b"}}},
	}
	merged := base.Merge(Config{
		Commands: map[string]string{"b": "app.b"},
		Chains:   map[string][]Step{"app.a": {{Class: "app.c"}}},
	})

	if diff := cmp.Diff(map[string]string{"a": "app.a", "b": "app.b"}, merged.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Step{{Class: "app.c"}}, merged.StepsFor("app.a")); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if len(base.Commands) != 1 {
		t.Error("Merge modified the receiver")
	}
}
