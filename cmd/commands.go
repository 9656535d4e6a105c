package main

import (
	"fmt"
	"strings"

	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
	"github.com/shuldan/clikit/pkg/loader"
	"github.com/shuldan/clikit/pkg/param"
)

var (
	migrationName = param.Must(param.NewString("name", "Migration name",
		param.Required(), param.Shortcut("m"), param.Pattern(`^[a-z][a-z0-9_]*$`)))
	migrationTables = param.Must(param.NewString("table", "Tables touched by the migration",
		param.Multiple()))

	migrateSteps = param.Must(param.NewInt("step", "Number of migrations to apply",
		param.Min(1), param.Default(1)))
	migrateForce = param.Must(param.NewBool("force", "Run without a confirmation in production",
		param.Shortcut("f")))
	migrateOnly = param.Must(param.NewString("name", "Only apply this migration"))

	seedSets = param.Must(param.NewChoice("set", "Seed set", []string{"users", "orders", "all"},
		param.Default("all")))
	seedDir = param.Must(param.NewPath("dir", "Directory holding the seed files",
		param.Default("."), param.MustExist(param.DirPath)))
)

type makeMigrationCommand struct {
	param.Command
}

func newMakeMigrationCommand() *makeMigrationCommand {
	return &makeMigrationCommand{
		Command: param.NewCommand("make:migration", "Create a new migration", migrationName, migrationTables),
	}
}

func (c *makeMigrationCommand) Execute(ctx console.Context) (int, error) {
	in := param.From(ctx)

	name, err := in.String("name")
	if err != nil {
		return 1, err
	}
	tables, err := in.Strings("table")
	if err != nil {
		return 1, err
	}

	_, _ = fmt.Fprintf(ctx.Output(), "Created migration %s", name)
	if len(tables) > 0 {
		_, _ = fmt.Fprintf(ctx.Output(), " for %s", strings.Join(tables, ", "))
	}
	_, _ = fmt.Fprintln(ctx.Output())
	return 0, nil
}

type migrateCommand struct {
	param.Command
}

func newMigrateCommand() *migrateCommand {
	return &migrateCommand{
		Command: param.NewCommand("migrate", "Apply pending migrations", migrateSteps, migrateForce, migrateOnly),
	}
}

func (c *migrateCommand) Execute(ctx console.Context) (int, error) {
	in := param.From(ctx)

	steps, err := in.Int("step")
	if err != nil {
		return 1, err
	}
	force, err := in.Bool("force")
	if err != nil {
		return 1, err
	}
	only, err := in.String("name")
	if err != nil {
		return 1, err
	}

	target := "pending migrations"
	if only != "" {
		target = only
	}
	_, _ = fmt.Fprintf(ctx.Output(), "Applied %d step(s) of %s (force: %t)\n", steps, target, force)
	return 0, nil
}

type seedCommand struct {
	param.Command
}

func newSeedCommand() *seedCommand {
	return &seedCommand{
		Command: param.NewCommand("seed", "Fill the database with sample data", seedSets, seedDir),
	}
}

func (c *seedCommand) Execute(ctx console.Context) (int, error) {
	in := param.From(ctx)

	set, err := in.String("set")
	if err != nil {
		return 1, err
	}
	dir, err := in.String("dir")
	if err != nil {
		return 1, err
	}

	_, _ = fmt.Fprintf(ctx.Output(), "Seeded %s from %s\n", set, dir)
	return 0, nil
}

func describe(group, description string, params ...*param.Parameter) func() loader.Metadata {
	return func() loader.Metadata {
		return loader.Metadata{
			Description: description,
			Group:       group,
			Configure: func(def *console.Definition) error {
				for _, p := range params {
					if err := def.AddOption(p.Option()); err != nil {
						return err
					}
				}
				return nil
			},
		}
	}
}

func newCatalog() (*loader.Catalog, error) {
	catalog := loader.NewCatalog()
	classes := map[string]loader.Class{
		"app.make-migration": {
			New:      func(contracts.DIContainer) (any, error) { return newMakeMigrationCommand(), nil },
			Describe: describe("migrations", "Create a new migration", migrationName, migrationTables),
		},
		"app.migrate": {
			New:      func(contracts.DIContainer) (any, error) { return newMigrateCommand(), nil },
			Describe: describe("migrations", "Apply pending migrations", migrateSteps, migrateForce, migrateOnly),
		},
		"app.seed": {
			New:      func(contracts.DIContainer) (any, error) { return newSeedCommand(), nil },
			Describe: describe("database", "Fill the database with sample data", seedSets, seedDir),
		},
	}
	for id, class := range classes {
		if err := catalog.Add(id, class); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
