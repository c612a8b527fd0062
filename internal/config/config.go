// Package config loads the dictionary engine's configuration: the
// indexing depth/minimum, result limits, the install root directory, and
// query cache tuning. Defaults are set in code, then overridden by a
// .dictrc.kdl file if present, then by CLI flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds every tunable the core and its collaborators need.
type Config struct {
	// Root is the install directory holding dict.txt and index.db.
	Root string

	// Indexing depth (D) and minimum (M), per spec §3/§4.4.
	Depth   int
	Minimum int

	// MaxResults is the default N for `dict lookup` when no positive
	// --max is given. The MCP tool does not read it; its own default is 25.
	MaxResults int

	// MinHitsBeforeRetry is the minimum result count under which the
	// umlaut-recovery retry is attempted.
	MinHitsBeforeRetry int

	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Default returns the built-in configuration, used when no .dictrc.kdl
// file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	root := filepath.Join(home, ".dingdict")
	if home == "" {
		root = ".dingdict"
	}
	return &Config{
		Root:               root,
		Depth:              3,
		Minimum:            3,
		MaxResults:         25,
		MinHitsBeforeRetry: 3,
		CacheTTL:           5 * time.Minute,
		CacheMaxEntries:    512,
	}
}
