package tablecache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.cache")

	entry := Entry{GrammarHash: "abc123", Flavor: "lr1", Rendered: "S | 0 | 1"}
	require.NoError(t, Save(path, entry))

	loaded, ok, err := Load(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, loaded)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(filepath.Join(dir, "absent.cache"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadCorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.cache")
	require.NoError(t, os.WriteFile(path, []byte("not a valid cache blob"), 0o644))

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestHit(t *testing.T) {
	entry := Entry{GrammarHash: "h1", Flavor: "slr"}
	assert.True(t, entry.Hit("h1", "slr"))
	assert.False(t, entry.Hit("h2", "slr"))
	assert.False(t, entry.Hit("h1", "lr1"))
}

func TestHashGrammarIsDeterministic(t *testing.T) {
	src := []byte("S -> a\n")
	assert.Equal(t, HashGrammar(src), HashGrammar(src))
	assert.NotEqual(t, HashGrammar(src), HashGrammar([]byte("S -> b\n")))
}
