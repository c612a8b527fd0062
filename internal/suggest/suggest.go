// Package suggest offers "did-you-mean" spelling suggestions on the
// zero-result lookup path. It never influences ranking or the
// all-present candidate filter; it is a side channel consulted only
// after a lookup (including its umlaut retry) has already failed.
//
// Per the specification's Non-goal ("fuzzy matching beyond Levenshtein"),
// this package calls only edlib.LevenshteinDistance, never the
// similarity/Jaro-Winkler/cosine algorithms go-edlib also offers.
package suggest

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

const maxSuggestionsPerKeyword = 3

// Suggestion pairs a candidate prefix with its Levenshtein distance from
// the keyword that produced no matches.
type Suggestion struct {
	Keyword   string
	Candidate string
	Distance  int
}

// ForKeyword returns up to maxSuggestionsPerKeyword candidates from
// vocabulary that are closest, by Levenshtein distance, to keyword.
func ForKeyword(keyword string, vocabulary []string) []Suggestion {
	type scored struct {
		candidate string
		distance  int
	}
	var scoredCandidates []scored
	for _, candidate := range vocabulary {
		d := edlib.LevenshteinDistance(keyword, candidate)
		scoredCandidates = append(scoredCandidates, scored{candidate: candidate, distance: d})
	}
	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].distance < scoredCandidates[j].distance
	})

	n := maxSuggestionsPerKeyword
	if len(scoredCandidates) < n {
		n = len(scoredCandidates)
	}
	out := make([]Suggestion, 0, n)
	for _, sc := range scoredCandidates[:n] {
		out = append(out, Suggestion{Keyword: keyword, Candidate: sc.candidate, Distance: sc.distance})
	}
	return out
}

// ForKeywords runs ForKeyword over every keyword in keywords, against the
// same vocabulary.
func ForKeywords(keywords []string, vocabulary []string) []Suggestion {
	var all []Suggestion
	for _, k := range keywords {
		all = append(all, ForKeyword(k, vocabulary)...)
	}
	return all
}
