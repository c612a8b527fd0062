package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dictcore/ding/internal/dictfile"
	"github.com/dictcore/ding/internal/indexing"
	"github.com/dictcore/ding/internal/keyword"
	"github.com/dictcore/ding/internal/lookup"
	"github.com/dictcore/ding/internal/prefixstore"
	"github.com/dictcore/ding/internal/suggest"

	"github.com/urfave/cli/v2"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "Look up a query against the installed dictionary",
	ArgsUsage: "<word...>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "max", Aliases: []string{"n"}, Usage: "Maximum results to return"},
	},
	Action: lookupAction,
}

func lookupAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: dict lookup <word...>")
	}
	query := strings.Join(c.Args().Slice(), " ")

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

	maxResults := c.Int("max")
	if maxResults <= 0 {
		maxResults = cfg.MaxResults
	}

	results, err := engine.Lookup(query, maxResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no results")
		printSuggestions(store, query)
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s :: %s\n", r.Entry.German, r.Entry.English)
	}
	return nil
}

// printSuggestions offers did-you-mean candidates on a zero-result
// lookup, drawn from the store's known prefixes.
func printSuggestions(store *prefixstore.Store, query string) {
	kw := keyword.New()
	kw.AddFromString(query)
	if kw.Len() == 0 {
		return
	}

	vocabulary, err := store.AllPrefixes()
	if err != nil || len(vocabulary) == 0 {
		return
	}

	var words []string
	for _, t := range kw.Tokens() {
		words = append(words, string(t))
	}

	for _, s := range suggest.ForKeywords(words, vocabulary) {
		fmt.Printf("did you mean %q instead of %q?\n", s.Candidate, s.Keyword)
	}
}
