// Package lookup resolves a free-text query to a ranked list of
// dictionary entries: keyword extraction, prefix intersection against
// the store, candidate verification, distance scoring, and the
// umlaut-recovery retry.
package lookup

import (
	"sort"

	"github.com/dictcore/ding/internal/dictentry"
	"github.com/dictcore/ding/internal/dictfile"
	"github.com/dictcore/ding/internal/indexing"
	"github.com/dictcore/ding/internal/keyword"
	"github.com/dictcore/ding/internal/prefixstore"
	"github.com/dictcore/ding/internal/textutil"
)

// Result pairs a scored entry with the ref it was read from, so ties on
// distance can be broken deterministically.
type Result struct {
	Entry    dictentry.Entry
	Ref      int64
	Distance int
}

// Engine performs lookups against one installed dictionary.
type Engine struct {
	store    *prefixstore.Store
	dataPath string
	params   indexing.Params
	minHits  int // minimum result count before the umlaut retry is worthwhile
}

// New constructs a lookup engine over an already-open store and the path
// to the installed data file copy.
func New(store *prefixstore.Store, dataPath string, params indexing.Params, minHits int) *Engine {
	if minHits <= 0 {
		minHits = 1
	}
	return &Engine{store: store, dataPath: dataPath, params: params, minHits: minHits}
}

// Lookup builds a keyword set from query, resolves it to ranked entries,
// and retries once with umlaut-recovered keywords if the first pass
// yields fewer than the engine's configured minimum and Adjust() changed
// something.
func (e *Engine) Lookup(query string, maxResults int) ([]Result, error) {
	kw := keyword.New()
	kw.AddFromString(query)

	results, err := e.search(kw, maxResults)
	if err != nil {
		return nil, err
	}

	if len(results) < e.minHits && kw.Adjust() {
		retried, err := e.search(kw, maxResults)
		if err != nil {
			return nil, err
		}
		results = retried
	}

	return results, nil
}

// search performs one pass of steps 2-6 of the lookup algorithm: derive
// search prefixes, intersect refs, fetch+verify+score candidates, and
// keep the N lowest-distance results.
func (e *Engine) search(kw *keyword.Set, maxResults int) ([]Result, error) {
	if kw.Len() == 0 {
		return nil, nil
	}

	prefixes := searchPrefixes(kw, e.params.Depth)
	refs, err := e.store.RefsForKeywordPrefixes(prefixes)
	if err != nil {
		return nil, err
	}

	useMap := make([]bool, kw.Len())
	var results []Result
	for _, ref := range refs {
		line, err := dictfile.ReadLineAt(e.dataPath, ref)
		if err != nil {
			continue // an unreadable ref is dropped, not fatal to the whole lookup
		}
		entry, ok := dictentry.Parse(line)
		if !ok {
			continue
		}
		if !kw.AllPresent(line) {
			continue
		}
		dist := dictentry.CalculateDistance(entry, kw, useMap)
		if dist == dictentry.NoMatchDistance {
			continue
		}
		results = append(results, Result{Entry: entry, Ref: ref, Distance: dist})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Ref < results[j].Ref
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// searchPrefixes derives the deduplicated search-prefix set: each
// keyword cropped to depth Unicode characters.
func searchPrefixes(kw *keyword.Set, depth int) [][]byte {
	seen := make(map[string]struct{}, kw.Len())
	var out [][]byte
	for _, tok := range kw.Tokens() {
		cropped, _ := textutil.CropToUnicodeLen(append([]byte(nil), tok...), depth)
		key := string(cropped)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cropped)
	}
	return out
}
