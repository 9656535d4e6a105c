package main

import (
	"fmt"
	"os"

	"github.com/shuldan/clikit/pkg/bootstrap"
	"github.com/shuldan/clikit/pkg/chain"
	"github.com/shuldan/clikit/pkg/errors"
	"github.com/shuldan/clikit/pkg/loader"
)

var version = "dev"

var commands = map[string]string{
	"make:migration": "app.make-migration",
	"migrate":        "app.migrate",
	"seed":           "app.seed",
}

func main() {
	catalog, err := newCatalog()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errors.Message(err))
		os.Exit(errors.ExitCode(err))
	}

	b := bootstrap.New("clikit", version, "CLIKIT", "clikit.yaml", "clikit.json", "clikit.hcl").
		WithLogger().
		WithEventBus().
		WithCommandLoader(catalog,
			loader.WithCommands(commands),
			loader.WithResolverOptions(loader.WithLazy()),
		).
		WithChains(chain.WithConfig(chain.Config{
			Commands: commands,
			Chains: map[string][]chain.Step{
				"app.make-migration": {
					{Class: "app.migrate", Map: chain.MapSpec{{From: "--name", To: "--name"}}},
					{Class: "app.seed"},
				},
			},
		})).
		WithConsole()

	a, err := b.CreateApp()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errors.Message(err))
		os.Exit(errors.ExitCode(err))
	}
	if err = a.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, errors.Message(err))
		os.Exit(errors.ExitCode(err))
	}
	os.Exit(b.ExitCode())
}
