package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.YAML", "notes.txt", "nested/c.yml", "nested/deeper/d.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	files, err := FindFilesByExtension(root, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.YAML"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.yml"),
		filepath.Join(root, "nested", "deeper", "d.hcl"),
	}, files)

	single, err := FindFilesByExtension(filepath.Join(root, "b.hcl"), ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.hcl")}, single)

	_, err = FindFilesByExtension(filepath.Join(root, "notes.txt"), ".hcl")
	assert.Error(t, err)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	assert.True(t, os.IsNotExist(err))
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}
