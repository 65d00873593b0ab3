// internal/fileid/canonical_test.go
package fileid

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		root     string
		dir      string
		ref      string
		expected Identity
	}{
		{
			name:     "sibling in root",
			root:     "proj",
			dir:      "proj",
			ref:      "a.fs",
			expected: "proj/a.fs",
		},
		{
			name:     "dot prefixed child",
			root:     "proj",
			dir:      "proj",
			ref:      "./sub/x.fs",
			expected: "proj/sub/x.fs",
		},
		{
			name:     "parent from subdirectory",
			root:     "proj",
			dir:      "proj/sub",
			ref:      "../x.fs",
			expected: "proj/x.fs",
		},
		{
			name:     "redundant segments collapse",
			root:     "./proj/",
			dir:      "proj/sub/deeper",
			ref:      "../../sub/./y.fs",
			expected: "proj/sub/y.fs",
		},
		{
			name:     "dot root",
			root:     ".",
			dir:      ".",
			ref:      "lib/z.fs",
			expected: "lib/z.fs",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := New(tc.root, nil)
			assert.Equal(t, tc.expected, c.Canonicalize(tc.dir, tc.ref))
		})
	}
}

func TestCanonicalize_SameFileDifferentReferences(t *testing.T) {
	t.Parallel()

	// Arrange
	c := New("proj", nil)

	// Act
	fromRoot := c.Canonicalize("proj", "./sub/x.fs")
	fromSub := c.Canonicalize(Identity("proj/sub/a.fs").Dir(), "../sub/x.fs")
	fromAbs := c.Canonicalize("elsewhere", Abs(filepath.Join("proj", "sub", "x.fs")))

	// Assert
	assert.Equal(t, fromRoot, fromSub)
	assert.Equal(t, fromRoot, fromAbs)
}

func TestCanonicalize_AbsoluteRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	c := New(root, nil)

	got := c.Canonicalize(filepath.Join(root, "sub"), "../a.fs")

	assert.Equal(t, Identity(filepath.ToSlash(filepath.Join(root, "a.fs"))), got)
	assert.Equal(t, "a.fs", c.Relative(got))
}

func TestCanonicalize_Remap(t *testing.T) {
	t.Parallel()

	remap := func(ref string) string {
		return strings.TrimPrefix(ref, "shared:")
	}
	c := New("proj", remap)

	assert.Equal(t, Identity("proj/common/util.fs"), c.Canonicalize("proj", "shared:common/util.fs"))
	assert.Equal(t, Identity("proj/local.fs"), c.Canonicalize("proj", "local.fs"))
}

func TestEntryAndRelative(t *testing.T) {
	t.Parallel()

	c := New("proj", nil)
	entry := c.Entry("Main.fs")

	require.Equal(t, Identity("proj/Main.fs"), entry)
	assert.Equal(t, "Main.fs", c.Relative(entry))
	assert.Equal(t, "sub/x.fs", c.Relative("proj/sub/x.fs"))
	assert.Equal(t, "proj", c.Root())
}

func TestIdentityParts(t *testing.T) {
	t.Parallel()

	id := Identity("proj/sub/x.fsi")
	assert.Equal(t, "proj/sub", id.Dir())
	assert.Equal(t, ".fsi", id.Ext())
	assert.Equal(t, "proj/sub/x.fsi", id.String())
}

func TestEntry_IgnoresRemap(t *testing.T) {
	t.Parallel()

	c := New("proj", func(string) string { return "elsewhere.fs" })

	assert.Equal(t, Identity("proj/Main.fs"), c.Entry("Main.fs"))
	assert.Equal(t, Identity("proj/elsewhere.fs"), c.Canonicalize("proj", "Main.fs"))
}

func TestPath(t *testing.T) {
	t.Parallel()

	c := New("proj", func(string) string { return "ignored" })

	assert.Equal(t, Identity("proj/sub/x.fs"), c.Path(filepath.Join("proj", "sub", "x.fs")))
	assert.Equal(t, Identity("proj/sub/x.fs"), c.Path(Abs(filepath.Join("proj", "sub", "x.fs"))))
}

func TestWithFold(t *testing.T) {
	t.Parallel()

	// Arrange
	plain := New("Proj", nil)
	folded := New("Proj", func(ref string) string { return "Sub/" + ref }, WithFold(FoldCase))

	// Act
	upper := folded.Canonicalize("Proj", "Util.fs")
	lower := folded.Canonicalize("Proj", "util.fs")
	entry := folded.Entry("sub/UTIL.fs")
	walked := folded.Path(filepath.Join("Proj", "SUB", "Util.fs"))

	// Assert
	assert.NotEqual(t, plain.Canonicalize("Proj", "Util.fs"), plain.Canonicalize("Proj", "util.fs"))
	assert.Equal(t, Identity("Proj/sub/util.fs"), upper)
	assert.Equal(t, upper, lower)
	assert.Equal(t, upper, entry, "entry and references must agree on the folded identity")
	assert.Equal(t, upper, walked)
	assert.Equal(t, "sub/util.fs", folded.Relative(upper))
}
