package dictfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckForDingFormatDetectsCompressedByExtension(t *testing.T) {
	path := writeFile(t, "dict.txt.gz", "irrelevant")
	check, err := CheckForDingFormat(path)
	require.NoError(t, err)
	assert.Equal(t, IsCompressed, check)
}

func TestCheckForDingFormatTooSmall(t *testing.T) {
	path := writeFile(t, "dict.txt", "Apfel :: apple\n")
	check, err := CheckForDingFormat(path)
	require.NoError(t, err)
	assert.Equal(t, TooSmall, check)
}

func TestCheckForDingFormatOK(t *testing.T) {
	content := "Apfel {n} :: apple\n" + strings.Repeat("# padding\n", 500)
	path := writeFile(t, "dict.txt", content)
	check, err := CheckForDingFormat(path)
	require.NoError(t, err)
	assert.Equal(t, OK, check)
}

func TestCheckForDingFormatBadFormatWhenNoSeparator(t *testing.T) {
	content := strings.Repeat("just some text with no separator\n", 300)
	path := writeFile(t, "dict.txt", content)
	check, err := CheckForDingFormat(path)
	require.NoError(t, err)
	assert.Equal(t, BadFormat, check)
}

func TestCheckForDingFormatIgnoresCommentLines(t *testing.T) {
	content := "# Apfel :: apple (this is a comment, not data)\n" + strings.Repeat("padding with no separator\n", 300)
	path := writeFile(t, "dict.txt", content)
	check, err := CheckForDingFormat(path)
	require.NoError(t, err)
	assert.Equal(t, BadFormat, check)
}

func TestCheckForDingFormatMissingFile(t *testing.T) {
	check, err := CheckForDingFormat(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.Equal(t, IOProblem, check)
}
