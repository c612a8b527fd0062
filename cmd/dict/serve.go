package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dictcore/ding/internal/dictfile"
	"github.com/dictcore/ding/internal/indexing"
	"github.com/dictcore/ding/internal/lookup"
	"github.com/dictcore/ding/internal/mcpserver"
	"github.com/dictcore/ding/internal/prefixstore"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Serve the installed dictionary as an MCP tool over stdio",
	Action: serveAction,
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !dictfile.IsInstalled(cfg.Root) {
		return fmt.Errorf("no dictionary installed under %s; run `dict install <ding-file>` first", cfg.Root)
	}

	store, err := prefixstore.Open(dictfile.IndexPath(cfg.Root))
	if err != nil {
		return err
	}
	defer store.Close()

	params := indexing.Params{Depth: cfg.Depth, Minimum: cfg.Minimum}
	engine := lookup.New(store, dictfile.DataPath(cfg.Root), params, cfg.MinHitsBeforeRetry)
	caching := lookup.NewCachingEngine(engine, cfg.CacheTTL, cfg.CacheMaxEntries)

	srv := mcpserver.New(caching)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return srv.Run(ctx)
}
