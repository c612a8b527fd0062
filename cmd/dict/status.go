package main

import (
	"encoding/json"
	"fmt"

	"github.com/dictcore/ding/internal/dictfile"
	"github.com/dictcore/ding/internal/pathutil"

	"github.com/urfave/cli/v2"
)

// StatusReport is the JSON shape printed by `dict status`.
type StatusReport struct {
	Root      string `json:"root"`
	Installed bool   `json:"installed"`
	DataFile  string `json:"data_file"`
	IndexFile string `json:"index_file"`
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "Report whether a dictionary is installed",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Emit machine-readable JSON"},
	},
	Action: statusAction,
}

func statusAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	report := StatusReport{
		Root:      cfg.Root,
		Installed: dictfile.IsInstalled(cfg.Root),
		DataFile:  dictfile.DataPath(cfg.Root),
		IndexFile: dictfile.IndexPath(cfg.Root),
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Installed {
		fmt.Printf("installed: %s\n", report.Root)
		fmt.Printf("  data:  %s\n", pathutil.ToRelative(report.DataFile, report.Root))
		fmt.Printf("  index: %s\n", pathutil.ToRelative(report.IndexFile, report.Root))
	} else {
		fmt.Printf("not installed: %s\n", report.Root)
	}
	return nil
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "Validate that a file looks like a DING dictionary",
	ArgsUsage: "<path>",
	Action:    checkAction,
}

func checkAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: dict check <path>")
	}
	path := c.Args().First()
	result, err := dictfile.CheckForDingFormat(path)
	if err != nil {
		return err
	}
	fmt.Println(result)
	if result != dictfile.OK {
		return cli.Exit("", 1)
	}
	return nil
}
