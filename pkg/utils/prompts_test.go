package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("reads and trims content", func(t *testing.T) {
		path := filepath.Join(tempDir, "system.txt")
		err := os.WriteFile(path, []byte("  You are a campus assistant.\n\n"), 0644)
		require.NoError(t, err)

		content, err := LoadPrompt(path)
		require.NoError(t, err)
		assert.Equal(t, "You are a campus assistant.", content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPrompt(filepath.Join(tempDir, "nonexistent.txt"))
		assert.Error(t, err)
	})
}

func TestLoadPromptWithFallback(t *testing.T) {
	tempDir := t.TempDir()
	fallback := "fallback prompt"

	t.Run("existing file wins", func(t *testing.T) {
		path := filepath.Join(tempDir, "prompt.txt")
		err := os.WriteFile(path, []byte("file prompt"), 0644)
		require.NoError(t, err)

		assert.Equal(t, "file prompt", LoadPromptWithFallback(path, fallback))
	})

	t.Run("missing file falls back", func(t *testing.T) {
		got := LoadPromptWithFallback(filepath.Join(tempDir, "missing.txt"), fallback)
		assert.Equal(t, fallback, got)
	})

	t.Run("empty file falls back", func(t *testing.T) {
		path := filepath.Join(tempDir, "empty.txt")
		err := os.WriteFile(path, []byte("   \n"), 0644)
		require.NoError(t, err)

		assert.Equal(t, fallback, LoadPromptWithFallback(path, fallback))
	})
}
