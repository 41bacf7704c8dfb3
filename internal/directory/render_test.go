package directory

import (
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderASCII(t *testing.T) {
	tree := buildTree(t, "Foo/Bar", "Foo/Baz", "File")
	tree.mkdirs(mustPath(t, "Sub/Dir"))

	var sb strings.Builder
	require.NoError(t, Render(&sb, tree, RenderOptions{Art: ASCII}))

	want := "./\n" +
		"+- Foo/\n" +
		"|  |  Bar\n" +
		"|  `  Baz\n" +
		"|  \n" +
		"+- Sub/\n" +
		"|  `- Dir/\n" +
		"|  \n" +
		"`  File\n"
	assert.Equal(t, want, sb.String())
}

func TestRenderUnicodeSubtree(t *testing.T) {
	tree := buildTree(t, "a/b/c", "a/b/d", "x")

	var sb strings.Builder
	require.NoError(t, Render(&sb, tree, RenderOptions{Art: Unicode, Root: mustPath(t, "a/b")}))
	assert.Equal(t, "a/b/\n│  c\n└  d\n", sb.String())
}

func TestRenderEmpty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Render(&sb, New(), RenderOptions{}))
	assert.Equal(t, "./\n", sb.String())
}

func TestRenderBadRoot(t *testing.T) {
	tree := buildTree(t, "f")
	var sb strings.Builder

	err := Render(&sb, tree, RenderOptions{Root: mustPath(t, "f")})
	assert.ErrorIs(t, err, kerrors.ErrNotDirectory)

	err = Render(&sb, tree, RenderOptions{Root: mustPath(t, "missing")})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
}

func TestArtByName(t *testing.T) {
	assert.Equal(t, ASCII, ArtByName("ASCII"))
	assert.Equal(t, Unicode, ArtByName("unicode"))
	assert.Equal(t, Unicode, ArtByName(""))
}

func TestCheck(t *testing.T) {
	tree := New()
	_, err := tree.PutFile(mustPath(t, "ok"), FileRef{Offset: 0, Length: 20})
	require.NoError(t, err)
	_, err = tree.PutFile(mustPath(t, "misaligned"), FileRef{Offset: 3, Length: 1})
	require.NoError(t, err)
	_, err = tree.PutFile(mustPath(t, "past/end"), FileRef{Offset: 32, Length: 1})
	require.NoError(t, err)

	problems := Check(tree, 32)
	require.Len(t, problems, 2)
	assert.Equal(t, "past/end", problems[0].Path.String())
	assert.Equal(t, "misaligned", problems[1].Path.String())
	assert.Len(t, Check(tree, 64), 1)
}
