// Package dictentry represents a single parsed DING dictionary line and
// scores it for relevance against a keyword set.
package dictentry

import (
	"bytes"
	"math"

	"github.com/dictcore/ding/internal/keyword"
	"github.com/dictcore/ding/internal/textutil"
)

// Separator is the DING side separator, tolerant of the surrounding
// whitespace variants the format allows.
const Separator = "::"

// Entry is a single dictionary line split into its German and English
// sides. Sub-senses separated by "|" are kept as opaque substrings; the
// core never parses them further.
type Entry struct {
	German  string
	English string
}

// Parse splits a raw DING line on the first occurrence of "::" and trims
// surrounding whitespace from each side. Returns false if the line
// contains no separator.
func Parse(line []byte) (Entry, bool) {
	idx := bytes.Index(line, []byte(Separator))
	if idx < 0 {
		return Entry{}, false
	}
	german := bytes.TrimSpace(line[:idx])
	english := bytes.TrimSpace(line[idx+len(Separator):])
	return Entry{German: string(german), English: string(english)}, true
}

// Scoring weights. Exact numeric values are not specified by the DING
// format description; these preserve ranking order (exact match <
// early-position match < late-position match < English-side match <
// missing keyword) on the documented scenarios, including the
// Apfelbaum/Apfel exact-match tie-break.
const (
	sidePenaltyGerman  = 0
	sidePenaltyEnglish = 25
	missPenalty        = 1000

	// inexactPenalty is charged once per byte of the matched side left
	// over after the keyword, so a substring/prefix match (e.g.
	// "Apfelbaum" for keyword "apfel") scores strictly worse than an
	// exact match at the same byte offset ("Apfel" for the same
	// keyword). It is well below sidePenaltyEnglish, but since it is
	// charged per leftover byte, a long German side can still accumulate
	// more than sidePenaltyEnglish and rank behind an English-side match
	// of another entry.
	inexactPenalty = 1
)

// NoMatchDistance is the sentinel returned when not every keyword in the
// set was found on either side of the entry. It exceeds any possible
// accumulated matching score.
const NoMatchDistance = math.MaxInt32

// CalculateDistance scores e against keywords (already longest-first) and
// fills useMap (one bool per keyword, must be len(keywords.Tokens())) to
// record which keywords were matched. Lower is better; NoMatchDistance
// means at least one keyword was absent from both sides.
func CalculateDistance(e Entry, keywords *keyword.Set, useMap []bool) int {
	tokens := keywords.Tokens()
	for i := range useMap {
		useMap[i] = false
	}

	german := []byte(e.German)
	english := []byte(e.English)

	total := 0
	for i, k := range tokens {
		pos := textutil.FindCI(german, 0, len(german), k)
		if pos != textutil.NotFound {
			useMap[i] = true
			total += charOffset(german, pos) + sidePenaltyGerman + leftover(german, k)*inexactPenalty
			continue
		}
		pos = textutil.FindCI(english, 0, len(english), k)
		if pos != textutil.NotFound {
			useMap[i] = true
			total += charOffset(english, pos) + sidePenaltyEnglish + leftover(english, k)*inexactPenalty
			continue
		}
		total += missPenalty
	}

	for _, used := range useMap {
		if !used {
			return NoMatchDistance
		}
	}
	return total
}

// charOffset converts the byte offset pos of a match in side into a
// Unicode character offset, the unit of the positional penalty. On a
// malformed prefix it falls back to the byte offset.
func charOffset(side []byte, pos int) int {
	n, err := textutil.CountSequences(side[:pos])
	if err != nil {
		return pos
	}
	return n
}

// leftover returns the number of bytes of side left unaccounted for once k
// is matched somewhere in it, i.e. len(side)-len(k). A keyword that matches
// a side exactly (e.g. "apfel" against "Apfel") has leftover 0; one that
// matches only a prefix or substring (e.g. "apfel" against "Apfelbaum")
// always has a strictly larger leftover, since k's length is fixed.
func leftover(side []byte, k []byte) int {
	return len(side) - len(k)
}
