package keyword

// digraphToUmlaut maps each two-byte upper-ASCII digraph to the UTF-8
// encoding of its corresponding German letter. Each substitution is
// exactly two bytes in, two bytes out, so it can be applied in place.
var digraphToUmlaut = map[[2]byte][2]byte{
	{'A', 'E'}: {0xC3, 0x84}, // AE -> Ä
	{'O', 'E'}: {0xC3, 0x96}, // OE -> Ö
	{'U', 'E'}: {0xC3, 0x9C}, // UE -> Ü
	{'I', 'E'}: {0xC3, 0x8F}, // IE -> Ï
	{'E', 'E'}: {0xC3, 0x8B}, // EE -> Ë
	{'S', 'S'}: {0xC3, 0x9F}, // SS -> ß
}

// Adjust performs umlaut recovery: for each keyword, every occurrence of
// the literal two-byte sequences AE OE UE IE EE SS is rewritten in place
// to the UTF-8 encoding of the corresponding umlaut letter. Returns true
// if any substitution happened anywhere in the set; the caller uses this
// to decide whether a retried lookup is worthwhile.
//
// Every candidate position in every keyword is checked unconditionally:
// the original algorithm ORs results together with a non-short-circuiting
// OR, so no keyword is skipped once one substitution has already been
// found.
func (s *Set) Adjust() bool {
	adjusted := false
	for _, token := range s.tokens {
		changed := adjustToken(token)
		adjusted = adjusted || changed
	}
	if adjusted {
		s.resort()
	}
	return adjusted
}

func adjustToken(token []byte) bool {
	changed := false
	for i := 0; i+1 < len(token); i++ {
		pair := [2]byte{token[i], token[i+1]}
		if up, ok := digraphToUmlaut[pair]; ok {
			token[i], token[i+1] = up[0], up[1]
			changed = true
			i++ // consumed this pair; don't let it overlap the next check
		}
	}
	return changed
}
