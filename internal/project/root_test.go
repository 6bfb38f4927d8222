package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Scenes"), 0755))
	scenePath := filepath.Join(root, "Assets", "Scenes", "Main.unity")
	require.NoError(t, os.WriteFile(scenePath, []byte("%YAML 1.1\n"), 0644))

	t.Run("from a nested file", func(t *testing.T) {
		got, err := FindRoot(scenePath)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("from a nested directory", func(t *testing.T) {
		got, err := FindRoot(filepath.Join(root, "Assets", "Scenes"))
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("from the root itself", func(t *testing.T) {
		got, err := FindRoot(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("no marker anywhere", func(t *testing.T) {
		_, err := FindRoot(t.TempDir())
		assert.ErrorIs(t, err, ErrNoRoot)
	})
}
