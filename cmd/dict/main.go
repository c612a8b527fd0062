// Command dict is the CLI front end for the German-English dictionary
// engine: install a DING source file, look up a query, or check
// installation status. The CLI itself is outside the core's scope (§6 of
// the specification treats it as a collaborator); this is the outer
// shell that wires the core packages together for interactive use.
package main

import (
	"fmt"
	"os"

	"github.com/dictcore/ding/internal/config"
	"github.com/dictcore/ding/internal/version"

	"github.com/urfave/cli/v2"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	dir := c.String("config-dir")
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlag := c.String("root"); rootFlag != "" {
		cfg.Root = rootFlag
	}
	if err := config.NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:    "dict",
		Usage:   "German-English dictionary indexer and lookup tool",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "Directory to look for .dictrc.kdl in",
				Value: ".",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Install root directory (overrides config)",
			},
		},
		Commands: []*cli.Command{
			installCommand,
			lookupCommand,
			statusCommand,
			checkCommand,
			serveCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
