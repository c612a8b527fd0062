package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dictcore/ding/internal/dictfile"
	"github.com/dictcore/ding/internal/indexing"

	"github.com/urfave/cli/v2"
)

// installLog is the operational logger for install progress and
// cancellation notices: stdlib log with no timestamp prefix, since the
// progress percentage already carries its own sense of time.
var installLog = log.New(os.Stderr, "", 0)

var installCommand = &cli.Command{
	Name:      "install",
	Usage:     "Build the prefix index from a DING source file",
	ArgsUsage: "<ding-file>",
	Action:    installAction,
}

func installAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: dict install <ding-file>")
	}
	dingPath := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		installLog.Println("cancelling install...")
		cancel()
	}()

	params := indexing.Params{Depth: cfg.Depth, Minimum: cfg.Minimum}

	err = dictfile.InstallFromPath(ctx, cfg.Root, dingPath, params, func(p indexing.Progress) {
		switch p.State {
		case indexing.StateStarting:
			installLog.Println("starting install...")
		case indexing.StateIndexing:
			installLog.Printf("indexing... %d%%", p.Percent)
		case indexing.StateCompleted:
			installLog.Println("indexing... 100%")
		case indexing.StateError:
			installLog.Printf("indexing failed: %v", p.Err)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("installed %s into %s\n", dingPath, cfg.Root)
	return nil
}
