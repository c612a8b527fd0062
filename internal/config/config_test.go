package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, 3, cfg.Minimum)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.NotEmpty(t, cfg.Root)
}

func TestLoadWithoutConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Depth, cfg.Depth)
}

func TestLoadAppliesKDLOverrides(t *testing.T) {
	dir := t.TempDir()
	kdl := `root "/data/dict"
index {
    depth 4
    minimum 2
}
search {
    max_results 50
    min_hits_before_retry 5
}
cache {
    ttl_seconds 120
    max_entries 1000
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dictrc.kdl"), []byte(kdl), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/dict", cfg.Root)
	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, 2, cfg.Minimum)
	assert.Equal(t, 50, cfg.MaxResults)
	assert.Equal(t, 5, cfg.MinHitsBeforeRetry)
	assert.Equal(t, 1000, cfg.CacheMaxEntries)
}

func TestLoadRejectsMalformedKDL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dictrc.kdl"), []byte("not { valid kdl :::"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
