package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenStrings(s *Set) []string {
	out := make([]string, 0, s.Len())
	for _, t := range s.Tokens() {
		out = append(out, string(t))
	}
	return out
}

func TestAddFromStringBasic(t *testing.T) {
	s := New()
	s.AddFromString("Apfel Baum")
	require.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []string{"APFEL", "BAUM"}, tokenStrings(s))
}

func TestAddFromStringDropsCommonWords(t *testing.T) {
	s := New()
	s.AddFromString("der Apfel und die Birne")
	assert.ElementsMatch(t, []string{"APFEL", "BIRNE"}, tokenStrings(s))
}

func TestAddFromStringShorterCandidateDroppedByExistingPrefix(t *testing.T) {
	s := New()
	s.AddFromString("Apfelbaum")
	s.AddFromString("Apfel")
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "APFELBAUM", string(s.Tokens()[0]))
}

func TestAddFromStringLongerCandidateSupersedesExisting(t *testing.T) {
	s := New()
	s.AddFromString("Apfel")
	s.AddFromString("Apfelbaum")
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "APFELBAUM", string(s.Tokens()[0]))
}

func TestAddFromStringDuplicateIsNoOp(t *testing.T) {
	s := New()
	s.AddFromString("Apfel")
	s.AddFromString("Apfel")
	require.Equal(t, 1, s.Len())
}

func TestResortOrdersByDescendingLengthThenLexByte(t *testing.T) {
	s := New()
	s.AddFromString("Bo Apfelbaum Zz Katze")
	tokens := tokenStrings(s)
	require.Len(t, tokens, 4)
	// APFELBAUM (9) first; then the two 2-char tokens in lex order; KATZE (5) before them by length.
	assert.Equal(t, "APFELBAUM", tokens[0])
	assert.Equal(t, "KATZE", tokens[1])
	assert.Equal(t, "BO", tokens[2])
	assert.Equal(t, "ZZ", tokens[3])
}

func TestLongestKeyword(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.LongestKeyword())
	s.AddFromString("Ha Apfelbaum")
	assert.Equal(t, len("APFELBAUM"), s.LongestKeyword())
}

func TestAllPresent(t *testing.T) {
	s := New()
	s.AddFromString("Apfel Baum")
	assert.True(t, s.AllPresent([]byte("der Apfel steht beim Baum")))
	assert.False(t, s.AllPresent([]byte("der Apfel steht allein")))
}
