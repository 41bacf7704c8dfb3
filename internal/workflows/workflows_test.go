package workflows

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/absfs/memfs"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/paks/internal/archive"
	"github.com/PolarWolf314/paks/internal/audit"
	"github.com/PolarWolf314/paks/internal/configs"
	"github.com/PolarWolf314/paks/internal/directory"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/keys"
	"github.com/PolarWolf314/paks/internal/store"
)

var testKey = bytes.Repeat([]byte{0x42}, keys.Size)

// setupUser points config and audit state at temporary directories.
func setupUser(t *testing.T) {
	t.Helper()
	oldSettings := *configs.UserPaksSettings
	oldConfig := configs.GlobalUserConfig

	configs.UserPaksSettings.UserConfigsPath = t.TempDir()
	configs.UserPaksSettings.UserDataPath = t.TempDir()
	cfg := configs.DefaultUserConfig()
	cfg.User.UUID = "00000000-0000-0000-0000-000000000001"
	cfg.Keys.Salt = "000102030405060708090a0b0c0d0e0f"
	cfg.Keys.Memory = 1024
	cfg.Keys.Iterations = 1
	cfg.Keys.Parallelism = 1
	configs.GlobalUserConfig = cfg

	t.Cleanup(func() {
		*configs.UserPaksSettings = oldSettings
		configs.GlobalUserConfig = oldConfig
	})
}

func newTarget(t *testing.T) Target {
	t.Helper()
	setupUser(t)
	fs, err := memfs.NewFS()
	require.NoError(t, err)
	tgt := Target{Path: "/test.pak", Key: testKey, Store: store.New(fs)}

	_, err = New(context.Background(), NewOptions{Target: tgt})
	require.NoError(t, err)
	return tgt
}

func add(t *testing.T, tgt Target, path, data string) {
	t.Helper()
	_, err := Add(context.Background(), AddOptions{Target: tgt, Path: path, Data: []byte(data)})
	require.NoError(t, err)
}

func cat(t *testing.T, tgt Target, paths ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	_, err := Cat(context.Background(), CatOptions{Target: tgt, Paths: paths, Out: &out})
	return out.String(), err
}

func reopen(t *testing.T, tgt Target) *archive.Reader {
	t.Helper()
	data, err := tgt.store().Load(tgt.Path)
	require.NoError(t, err)
	r, err := archive.FromBlocks(data, tgt.Key)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()

	_, err := New(ctx, NewOptions{Target: tgt})
	assert.ErrorIs(t, err, kerrors.ErrArchiveExists)

	add(t, tgt, "keep", "x")
	res, err := New(ctx, NewOptions{Target: tgt, Force: true})
	require.NoError(t, err)
	assert.Equal(t, 32, res.Size, "header block plus one directory block")

	dirs, files := reopen(t, tgt).Tree().Counts()
	assert.Zero(t, dirs)
	assert.Zero(t, files)
}

func TestAddCatTree(t *testing.T) {
	tgt := newTarget(t)
	add(t, tgt, "docs/readme.md", "# hello\n")
	add(t, tgt, "docs/empty", "")
	add(t, tgt, "top", "top level")

	out, err := cat(t, tgt, "docs/readme.md", "top", "docs/empty")
	require.NoError(t, err)
	assert.Equal(t, "# hello\ntop level", out)

	_, err = cat(t, tgt, "missing")
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
	_, err = cat(t, tgt, "docs")
	assert.ErrorIs(t, err, kerrors.ErrNotFile)

	res, err := Tree(context.Background(), TreeOptions{Target: tgt, Art: directory.ASCII})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dirs)
	assert.Equal(t, 3, res.Files)
	assert.Equal(t, "./\n+- docs/\n|  |  empty\n|  `  readme.md\n|  \n`  top\n", res.Output)

	res, err = Tree(context.Background(), TreeOptions{Target: tgt, Root: "/docs/", Art: directory.ASCII})
	require.NoError(t, err)
	assert.Equal(t, "docs/\n|  empty\n`  readme.md\n", res.Output)

	_, err = Tree(context.Background(), TreeOptions{Target: tgt, Root: "top"})
	assert.ErrorIs(t, err, kerrors.ErrNotDirectory)
}

func TestAddFailureLeavesArchive(t *testing.T) {
	tgt := newTarget(t)
	add(t, tgt, "file", "data")
	before, err := tgt.store().Load(tgt.Path)
	require.NoError(t, err)

	_, err = Add(context.Background(), AddOptions{Target: tgt, Path: "file/child", Data: []byte("x")})
	assert.ErrorIs(t, err, kerrors.ErrNotDirectory)

	after, err := tgt.store().Load(tgt.Path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWrongKey(t *testing.T) {
	tgt := newTarget(t)
	add(t, tgt, "a", "secret")

	wrong := tgt
	wrong.Key = bytes.Repeat([]byte{0x43}, keys.Size)
	_, err := cat(t, wrong, "a")
	assert.ErrorIs(t, err, kerrors.ErrInvalidVersion)
}

func TestCopy(t *testing.T) {
	tgt := newTarget(t)
	host := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(host, "conf", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(host, "conf", "a.toml"), []byte("a = 1"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(host, "conf", "sub", "b.toml"), []byte("b = 2"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(host, "notes.txt"), []byte("notes"), 0600))

	ctx := context.Background()
	dry, err := Copy(ctx, CopyOptions{Target: tgt, Dir: "backup", Patterns: []string{"conf", "*.txt"}, BaseDir: host, DryRun: true})
	require.NoError(t, err)
	assert.True(t, dry.DryRun)
	assert.Len(t, dry.Added, 3)
	_, err = cat(t, tgt, "backup/notes.txt")
	assert.ErrorIs(t, err, kerrors.ErrNotFound, "dry run must not write")

	res, err := Copy(ctx, CopyOptions{Target: tgt, Dir: "backup", Patterns: []string{"conf", "*.txt"}, BaseDir: host})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Bytes)

	out, err := cat(t, tgt, "backup/conf/a.toml", "backup/conf/sub/b.toml", "backup/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "a = 1b = 2notes", out)

	_, err = Copy(ctx, CopyOptions{Target: tgt, Patterns: []string{"*.nothing"}, BaseDir: host})
	assert.ErrorIs(t, err, kerrors.ErrNoFilesFound)
}

func TestLinkRemoveMove(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()
	add(t, tgt, "a/b", "shared")

	_, err := Link(ctx, LinkOptions{Target: tgt, Src: "a/b", Dsts: []string{"c", "d/e"}})
	require.NoError(t, err)
	r := reopen(t, tgt)
	b, err := r.FindFile("a/b")
	require.NoError(t, err)
	e, err := r.FindFile("d/e")
	require.NoError(t, err)
	assert.Equal(t, b.FileRef, e.FileRef)

	_, err = Link(ctx, LinkOptions{Target: tgt, Src: "a/b", Dsts: []string{"ok", "c/bad"}})
	assert.ErrorIs(t, err, kerrors.ErrNotDirectory)
	_, err = cat(t, tgt, "ok")
	assert.ErrorIs(t, err, kerrors.ErrNotFound, "failed link must not write")

	_, err = Remove(ctx, RemoveOptions{Target: tgt, Paths: []string{"a"}})
	require.NoError(t, err)
	out, err := cat(t, tgt, "c", "d/e")
	require.NoError(t, err)
	assert.Equal(t, "sharedshared", out)

	_, err = Remove(ctx, RemoveOptions{Target: tgt, Paths: []string{"c", "a"}})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
	_, err = cat(t, tgt, "c")
	require.NoError(t, err, "failed remove must not write")

	_, err = Move(ctx, MoveOptions{Target: tgt, Src: "d", Dst: "x/y"})
	require.NoError(t, err)
	out, err = cat(t, tgt, "x/y/e")
	require.NoError(t, err)
	assert.Equal(t, "shared", out)

	_, err = Move(ctx, MoveOptions{Target: tgt, Src: "x", Dst: "x/y/z"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidPath)
}

func TestGC(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()
	add(t, tgt, "big", strings.Repeat("b", 100))
	add(t, tgt, "small", "s")
	add(t, tgt, "big", "replaced")

	dry, err := GC(ctx, GCOptions{Target: tgt, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(112), dry.Reclaimed)

	res, err := GC(ctx, GCOptions{Target: tgt})
	require.NoError(t, err)
	assert.Equal(t, uint64(144), res.Before)
	assert.Equal(t, uint64(32), res.After)
	assert.Equal(t, uint64(112), res.Reclaimed)

	out, err := cat(t, tgt, "big", "small")
	require.NoError(t, err)
	assert.Equal(t, "replaceds", out)

	again, err := GC(ctx, GCOptions{Target: tgt})
	require.NoError(t, err)
	assert.Zero(t, again.Reclaimed)
}

func TestFsckAndInfo(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()
	add(t, tgt, "a/one", "1")
	add(t, tgt, "a/two", "22")
	_, err := Link(ctx, LinkOptions{Target: tgt, Src: "a/one", Dsts: []string{"alias"}})
	require.NoError(t, err)

	res, err := Fsck(ctx, FsckOptions{Target: tgt, Decrypt: true})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Dirs)
	assert.Equal(t, 3, res.Files)

	info, err := Info(ctx, InfoOptions{Target: tgt})
	require.NoError(t, err)
	assert.Equal(t, 3, info.Stats.Files)
	assert.Equal(t, 2, info.Stats.Unique)
	assert.Equal(t, uint64(32), info.Stats.DataSize)
	assert.Equal(t, uint64(3), uint64(info.Header.DirOffset))
	assert.NoError(t, info.Digest.Validate())

	data, err := tgt.store().Load(tgt.Path)
	require.NoError(t, err)
	assert.Equal(t, len(data), info.Size)
	assert.Equal(t, digest.FromBytes(data), info.Digest)
}

func TestRekey(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()
	add(t, tgt, "a", "alpha")
	add(t, tgt, "gone", "garbage")
	_, err := Link(ctx, LinkOptions{Target: tgt, Src: "a", Dsts: []string{"b"}})
	require.NoError(t, err)
	_, err = Remove(ctx, RemoveOptions{Target: tgt, Paths: []string{"gone"}})
	require.NoError(t, err)

	newKey := bytes.Repeat([]byte{0x99}, keys.Size)
	res, err := Rekey(ctx, RekeyOptions{Target: tgt, NewKey: newKey})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 1, res.Unique)
	assert.Equal(t, uint64(16), res.DataSize)

	_, err = cat(t, tgt, "a")
	assert.ErrorIs(t, err, kerrors.ErrInvalidVersion, "old key no longer opens the archive")

	tgt.Key = newKey
	out, err := cat(t, tgt, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "alphaalpha", out)
}

func TestLog(t *testing.T) {
	tgt := newTarget(t)
	ctx := context.Background()
	add(t, tgt, "a", "1")
	add(t, tgt, "b", "2")
	_, err := Remove(ctx, RemoveOptions{Target: tgt, Paths: []string{"a"}})
	require.NoError(t, err)
	audit.Log(audit.Entry{Operation: "add", Archive: "/elsewhere.pak", Timestamp: "2020-01-01T00:00:00.000000Z"})

	all, err := Log(ctx, LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)

	mine, err := Log(ctx, LogOptions{Archive: tgt.Path})
	require.NoError(t, err)
	require.Len(t, mine.Entries, 4)
	assert.Equal(t, "new", mine.Entries[0].Operation)
	assert.Equal(t, []string{"a"}, mine.Entries[3].Paths)

	adds, err := Log(ctx, LogOptions{Archive: tgt.Path, Operations: "add, RM", Reverse: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, adds.Entries, 2)
	assert.Equal(t, "rm", adds.Entries[0].Operation)
	assert.Equal(t, []string{"b"}, adds.Entries[1].Paths)

	old, err := Log(ctx, LogOptions{Until: "2020-01-01"})
	require.NoError(t, err)
	require.Len(t, old.Entries, 1)
	assert.Equal(t, "/elsewhere.pak", old.Entries[0].Archive)

	_, err = Log(ctx, LogOptions{Since: "01/01/2020"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}

func TestLogAuditDisabled(t *testing.T) {
	tgt := newTarget(t)
	configs.GlobalUserConfig.Audit.Enabled = false
	add(t, tgt, "a", "1")

	res, err := Log(context.Background(), LogOptions{Archive: tgt.Path})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1, "only the entry written before auditing was disabled")
}

func TestResolveKey(t *testing.T) {
	setupUser(t)
	ctx := context.Background()

	res, err := ResolveKey(ctx, KeyOptions{Hex: "0x1"})
	require.NoError(t, err)
	assert.Equal(t, KeyFromFlag, res.Source)
	assert.Equal(t, byte(1), res.Key[0])

	_, err = ResolveKey(ctx, KeyOptions{Hex: "zz"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidKey)

	read := func(string) ([]byte, error) { return []byte("correct horse"), nil }
	p1, err := ResolveKey(ctx, KeyOptions{Passphrase: true, ReadPassphrase: read})
	require.NoError(t, err)
	p2, err := ResolveKey(ctx, KeyOptions{Passphrase: true, ReadPassphrase: read})
	require.NoError(t, err)
	assert.Equal(t, KeyFromPassphrase, p1.Source)
	assert.Equal(t, p1.Key, p2.Key)
	assert.Len(t, p1.Key, keys.Size)

	_, err = ResolveKey(ctx, KeyOptions{Passphrase: true, ReadPassphrase: func(string) ([]byte, error) { return nil, nil }})
	assert.ErrorIs(t, err, kerrors.ErrInvalidPassphrase)

	configs.GlobalUserConfig.Keys.Env = "PAKS_TEST_KEY"
	t.Setenv("PAKS_TEST_KEY", "")
	_, err = ResolveKey(ctx, KeyOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoKey)

	t.Setenv("PAKS_TEST_KEY", "ff")
	res, err = ResolveKey(ctx, KeyOptions{})
	require.NoError(t, err)
	assert.Equal(t, KeyFromEnv, res.Source)
	assert.Equal(t, byte(0xff), res.Key[0])
}

func TestKeygen(t *testing.T) {
	a, err := Keygen(context.Background())
	require.NoError(t, err)
	b, err := Keygen(context.Background())
	require.NoError(t, err)
	assert.Len(t, a.Key, keys.Size)
	assert.NotEqual(t, a.Key, b.Key)

	parsed, err := keys.ParseHex(a.Hex)
	require.NoError(t, err)
	assert.Equal(t, a.Key, parsed)
}

func TestCanceledContext(t *testing.T) {
	tgt := newTarget(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Add(ctx, AddOptions{Target: tgt, Path: "a", Data: []byte("x")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry audit.Entry
		want  string
	}{
		{audit.Entry{Operation: "add", Paths: []string{"a/b"}}, "a/b"},
		{audit.Entry{Operation: "rm", Paths: []string{"a", "b", "c", "d"}}, "4 paths"},
		{audit.Entry{Operation: "link", Paths: []string{"x"}, Target: "src"}, "x -> src"},
		{audit.Entry{Operation: "mv", Paths: []string{"x"}, Target: "y"}, "x => y"},
		{audit.Entry{Operation: "gc", Reclaimed: 64}, "reclaimed 64 bytes"},
		{audit.Entry{Operation: "new"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDetails(tt.entry), tt.entry.Operation)
	}

	assert.Equal(t, "2024-03-05 10:11:12", FormatDateTime("2024-03-05T10:11:12.123456Z"))
	assert.Equal(t, "garbage", FormatDateTime("garbage"))
}
