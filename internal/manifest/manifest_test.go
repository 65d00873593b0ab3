package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aftersort/internal/fileid"
)

func TestItems_FiltersAuxiliaryFiles(t *testing.T) {
	t.Parallel()

	canon := fileid.New("proj", nil)
	order := []fileid.Identity{"proj/sub/a.fsi", "proj/sub/a.fs", "proj/app.fsproj", "proj/Main.fs"}

	items := New().Items(canon, order)

	assert.Equal(t, []string{"sub/a.fsi", "sub/a.fs", "Main.fs"}, items)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := New().Write(&buf, []string{"b.fs", "a.fs"})

	require.NoError(t, err)
	expected := `<?xml version="1.0" encoding="UTF-8"?>
<Project>
  <ItemGroup>
    <Compile Include="b.fs"></Compile>
    <Compile Include="a.fs"></Compile>
  </ItemGroup>
</Project>
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	canon := fileid.New(root, nil)
	path := filepath.Join(root, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	// Act
	err := New(".fs").WriteFile(path, canon, []fileid.Identity{canon.Entry("x.fsi"), canon.Entry("x.fs")})

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Compile Include="x.fs"></Compile>`)
	assert.NotContains(t, string(data), "x.fsi")
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	t.Parallel()

	canon := fileid.New("proj", nil)
	err := New().WriteFile(filepath.Join(t.TempDir(), "nope", "compile.props"), canon, nil)

	assert.Error(t, err)
}
