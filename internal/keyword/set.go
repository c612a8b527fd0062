// Package keyword builds and manipulates the ordered keyword set derived
// from a free-text query: uppercasing, whitespace tokenization,
// prefix-freedom and common-word filtering, descending-length ordering,
// and the ASCII-digraph-to-umlaut recovery rewrite.
package keyword

import (
	"bytes"
	"sort"

	"github.com/dictcore/ding/internal/textutil"
)

// Set is an ordered, prefix-free sequence of upper-case UTF-8 keyword
// tokens. Members are sorted by descending Unicode character count, ties
// broken by ascending lexicographic byte order; later algorithms depend
// on the longest keyword appearing first.
type Set struct {
	tokens [][]byte
}

// New returns an empty keyword set.
func New() *Set {
	return &Set{}
}

// Len returns the number of keywords in the set.
func (s *Set) Len() int {
	return len(s.tokens)
}

// Tokens returns the keyword set's members in their current (sorted)
// order. The returned slices must not be mutated by the caller.
func (s *Set) Tokens() [][]byte {
	return s.tokens
}

// isPrefixOf reports whether a is a byte-wise prefix of b (or equal to it).
func isPrefixOf(a, b []byte) bool {
	if len(a) > len(b) {
		return false
	}
	return bytes.Equal(b[:len(a)], a)
}

// AddFromString uppercases input, tokenizes it on whitespace, drops
// common words and tokens that are in a prefix relationship with an
// existing keyword (in either direction), appends the survivors, and
// re-sorts the set.
func (s *Set) AddFromString(input string) {
	buf := []byte(input)
	textutil.ToUpper(buf)

	textutil.IterateWords(buf, func(word []byte, _ int) bool {
		if textutil.IsCommonWord(string(word)) {
			return true
		}
		candidate := append([]byte(nil), word...)

		keep := true
		survivors := s.tokens[:0:0]
		for _, existing := range s.tokens {
			switch {
			case isPrefixOf(candidate, existing):
				// candidate is a prefix of (or equal to) an existing,
				// longer-or-equal keyword: the existing one is already
				// more specific (or identical); candidate adds nothing.
				keep = false
				survivors = append(survivors, existing)
			case isPrefixOf(existing, candidate):
				// existing is a (strict) prefix of the new, longer
				// candidate: candidate supersedes it.
				// existing dropped: do not append to survivors.
			default:
				survivors = append(survivors, existing)
			}
		}
		s.tokens = survivors
		if keep {
			s.tokens = append(s.tokens, candidate)
		}
		return true
	})

	s.resort()
}

func (s *Set) resort() {
	sort.SliceStable(s.tokens, func(i, j int) bool {
		li, _ := textutil.CountSequences(s.tokens[i])
		lj, _ := textutil.CountSequences(s.tokens[j])
		if li != lj {
			return li > lj
		}
		return bytes.Compare(s.tokens[i], s.tokens[j]) < 0
	})
}

// LongestKeyword returns the longest byte length among the set's members,
// used by callers to size scoring scratch buffers. Returns 0 for an
// empty set.
func (s *Set) LongestKeyword() int {
	max := 0
	for _, t := range s.tokens {
		if len(t) > max {
			max = len(t)
		}
	}
	return max
}

// AllPresent reports whether every keyword in the set occurs somewhere in
// text under case-insensitive search. Vacuously true for an empty set.
func (s *Set) AllPresent(text []byte) bool {
	for _, t := range s.tokens {
		if textutil.FindCI(text, 0, len(text), t) == textutil.NotFound {
			return false
		}
	}
	return true
}
