package source

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aftersort/internal/fileid"
)

func TestDisk_Open(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	path := filepath.Join(root, "a.fs")
	require.NoError(t, os.WriteFile(path, []byte("module A\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.fs"), 0755))
	d := NewDisk()

	t.Run("existing file", func(t *testing.T) {
		rc, err := d.Open(fileid.Identity(filepath.ToSlash(path)))
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "module A\n", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := d.Open(fileid.Identity(filepath.ToSlash(filepath.Join(root, "nope.fs"))))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := d.Open(fileid.Identity(filepath.ToSlash(filepath.Join(root, "dir.fs"))))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemory_Open(t *testing.T) {
	t.Parallel()

	m := NewMemory(map[string]string{"p/a.fs": "// @after b.fs"})

	rc, err := m.Open("p/a.fs")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "// @after b.fs", string(data))

	_, err = m.Open("p/b.fs")
	assert.ErrorIs(t, err, ErrNotFound)

	m.Put("p/b.fs", "")
	_, err = m.Open("p/b.fs")
	assert.NoError(t, err)

	assert.Equal(t, 1, m.Opens("p/a.fs"))
	assert.Equal(t, 2, m.Opens("p/b.fs"))
	assert.Equal(t, 0, m.Opens("p/c.fs"))
}
