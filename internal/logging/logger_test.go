package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Logger = nil
	assert.NotPanics(t, func() {
		Debug("d")
		Info("i")
		Warn("w", "k", 1)
		Error("e")
	})
	assert.Nil(t, WithPrefix("x"))
}

func TestInitWritesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, log.DebugLevel)
	t.Cleanup(func() { Logger = nil })

	Warn("corpus fetch failed", "error", "boom")

	assert.Contains(t, buf.String(), "corpus fetch failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitFile(dir, log.InfoLevel))
	t.Cleanup(func() {
		Close()
		Logger = nil
	})

	Info("hello")
	Debug("hidden")

	data, err := os.ReadFile(filepath.Join(dir, "bushou.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.NotContains(t, string(data), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}
