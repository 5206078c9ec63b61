// tcoctl costs separators from the command line.
//
// Usage:
//
//	tcoctl breakdown --model "GFA 10-43-210" [--energy-price 0.2]
//	tcoctl breakdown --input machine.yaml --format json
//	tcoctl rank --project project.yaml --n 3
//	tcoctl project --model "GFA 10-43-210" --model "GFA 10-50-645" --years 10
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "tcoctl",
		Usage:   "Lifecycle cost calculations for separators",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Server configuration file supplying tariffs, heuristics and the catalog path",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Catalog CSV export (overrides the configured catalog)",
			},
		},
		Commands: []*cli.Command{
			breakdownCommand(),
			rankCommand(),
			projectCommand(),
		},
	}
}
