package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	content := "corpus:\n  url: https://example.com/word.json\nsearch:\n  mode: AND\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/word.json", cfg.Corpus.URL)
	assert.Equal(t, "AND", cfg.Search.Mode)
	assert.Equal(t, "favorites.db", cfg.Favorites)
	assert.Equal(t, "data/dictionary.txt", cfg.Dictionary)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("corpus: [unclosed"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Font = "/fonts/noto.ttc"

	require.NoError(t, Save(dir, cfg))
	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "favorites.db"), Resolve("/cfg", "favorites.db"))
	assert.Equal(t, "/abs/x.db", Resolve("/cfg", "/abs/x.db"))
	assert.Equal(t, "", Resolve("/cfg", ""))
}

func TestParseElements(t *testing.T) {
	table, err := ParseElements([]byte("characters:\n  水: \"江 河\"\nradicals:\n  wood: \"艹\"\n"))
	require.NoError(t, err)
	assert.Equal(t, hanzi.Water, table.Characters["江"])
	assert.Equal(t, hanzi.Water, table.Characters["河"])
	assert.NotContains(t, table.Characters, " ")
	assert.Equal(t, hanzi.Wood, table.Radicals["艹"])
}

func TestParseElementsUnknownLabel(t *testing.T) {
	_, err := ParseElements([]byte("characters:\n  风: \"风\"\n"))
	assert.ErrorIs(t, err, ErrUnknownElement)
}

func TestDefaultElements(t *testing.T) {
	table := DefaultElements()
	assert.Equal(t, hanzi.Wood, table.Characters["林"])
	assert.Equal(t, hanzi.Water, table.Radicals["氵"])
	assert.Equal(t, hanzi.Metal, table.Radicals["钅"])
}
