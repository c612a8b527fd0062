package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Load returns the default configuration overridden by .dictrc.kdl in
// dir, if that file exists. A missing config file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".dictrc.kdl")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := applyKDL(cfg, string(content)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse .dictrc.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "root":
			if s, ok := firstStringArg(n); ok {
				cfg.Root = s
			}
		case "index":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "depth":
					if v, ok := firstIntArg(cn); ok {
						cfg.Depth = v
					}
				case "minimum":
					if v, ok := firstIntArg(cn); ok {
						cfg.Minimum = v
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.MaxResults = v
					}
				case "min_hits_before_retry":
					if v, ok := firstIntArg(cn); ok {
						cfg.MinHitsBeforeRetry = v
					}
				}
			}
		case "cache":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "ttl_seconds":
					if v, ok := firstIntArg(cn); ok {
						cfg.CacheTTL = time.Duration(v) * time.Second
					}
				case "max_entries":
					if v, ok := firstIntArg(cn); ok {
						cfg.CacheMaxEntries = v
					}
				}
			}
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
