package indexing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dictcore/ding/internal/dicterr"
	"github.com/dictcore/ding/internal/prefixstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeDingFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func openStore(t *testing.T) *prefixstore.Store {
	t.Helper()
	dir := t.TempDir()
	store, err := prefixstore.Open(filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestIndexFileSkipsCommentsAndShortWords(t *testing.T) {
	content := "# this is a comment\nApfel {n} :: apple\nZu :: to\n"
	path := writeDingFile(t, content)
	store := openStore(t)

	require.NoError(t, store.BeginInstall())
	var states []State
	err := IndexFile(context.Background(), path, store, Params{Depth: 3, Minimum: 3}, func(p Progress) {
		states = append(states, p.State)
	})
	require.NoError(t, err)
	require.NoError(t, store.CommitInstall())

	assert.Equal(t, StateStarting, states[0])
	assert.Equal(t, StateCompleted, states[len(states)-1])

	refs, err := store.RefsForKeywordPrefixes([][]byte{[]byte("APF")})
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	// "Zu" is below Minimum=3 code points and must never have been indexed.
	refs, err = store.RefsForKeywordPrefixes([][]byte{[]byte("ZU")})
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestIndexFileCancellationStopsAndReportsErrCancelled(t *testing.T) {
	content := strings.Repeat("Apfelbaum {m} :: apple tree\n", 2000)
	path := writeDingFile(t, content)
	store := openStore(t)
	require.NoError(t, store.BeginInstall())

	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err := IndexFile(ctx, path, store, DefaultParams, func(p Progress) {
		count++
		if count == 2 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, dicterr.ErrCancelled)
	require.NoError(t, store.RollbackInstall())
}

func TestIndexFileAbortsOnMalformedUTF8(t *testing.T) {
	// 0xC0 0x20 is an illegal UTF-8 lead/continuation pairing; it lands
	// inside a word token because isWordByte treats any high-bit byte as
	// a word byte regardless of validity.
	content := "Apfel {n} :: apple\nBogus\xc0\x20word :: nonsense\n"
	path := writeDingFile(t, content)
	store := openStore(t)
	require.NoError(t, store.BeginInstall())

	err := IndexFile(context.Background(), path, store, DefaultParams, nil)
	require.Error(t, err)

	var idxErr *dicterr.IndexingError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, dicterr.ErrorTypeEncoding, idxErr.Type)

	require.NoError(t, store.RollbackInstall())
}

func TestIndexFileMultipleRefsEachGetOwnPrefixBag(t *testing.T) {
	content := "Apfel {n} :: apple\nBirne {n} :: pear\n"
	path := writeDingFile(t, content)
	store := openStore(t)
	require.NoError(t, store.BeginInstall())

	err := IndexFile(context.Background(), path, store, DefaultParams, nil)
	require.NoError(t, err)
	require.NoError(t, store.CommitInstall())

	apfelRefs, err := store.RefsForKeywordPrefixes([][]byte{[]byte("APF")})
	require.NoError(t, err)
	birneRefs, err := store.RefsForKeywordPrefixes([][]byte{[]byte("BIR")})
	require.NoError(t, err)

	require.Len(t, apfelRefs, 1)
	require.Len(t, birneRefs, 1)
	assert.NotEqual(t, apfelRefs[0], birneRefs[0])
}

func TestBagInsertDeduplicatesAndSorts(t *testing.T) {
	b := &bag{}
	b.insert([]byte("BBB"))
	b.insert([]byte("AAA"))
	b.insert([]byte("BBB"))
	require.Len(t, b.items, 2)
	assert.Equal(t, "AAA", string(b.items[0]))
	assert.Equal(t, "BBB", string(b.items[1]))
}
