package archive

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"math"

	"github.com/PolarWolf314/paks/internal/directory"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/layout"
	"github.com/PolarWolf314/paks/internal/speck"
)

// Option configures an Editor.
type Option func(*Editor)

// WithRand sets the source of file nonces. The default is crypto/rand.
func WithRand(r io.Reader) Option {
	return func(e *Editor) {
		e.rand = r
	}
}

// Editor is a mutable archive under construction. An Editor is not safe for
// concurrent use.
type Editor struct {
	tree     *directory.Tree
	region   *layout.Region
	rand     io.Reader
	finished bool
}

// GCStats reports the effect of a compaction.
type GCStats struct {
	Before uint64 // data region size before, in bytes
	After  uint64 // data region size after, in bytes
}

// Reclaimed returns the number of bytes released.
func (s GCStats) Reclaimed() uint64 {
	return s.Before - s.After
}

// Stats summarizes the contents of an editor.
type Stats struct {
	Dirs     int
	Files    int
	Unique   int    // distinct payloads; aliases share one
	DataSize uint64 // data region bytes
	Live     uint64 // data region bytes reachable from a file
}

// Garbage returns the number of unreachable data region bytes.
func (s Stats) Garbage() uint64 {
	return s.DataSize - s.Live
}

// NewEditor returns an editor for an empty archive.
func NewEditor(opts ...Option) *Editor {
	region, _ := layout.NewRegion(nil)
	e := &Editor{
		tree:   directory.New(),
		region: region,
		rand:   rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenEditor decodes archive for further editing. The data region is copied
// and stays encrypted.
func OpenEditor(archive, key []byte, opts ...Option) (*Editor, error) {
	r, err := FromBlocks(archive, key)
	if err != nil {
		return nil, err
	}
	e := NewEditor(opts...)
	e.tree = r.tree
	e.region, err = layout.NewRegion(bytes.Clone(r.region.Bytes()))
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) check() error {
	if e.finished {
		return kerrors.ErrFinished
	}
	return nil
}

func (e *Editor) nonce() ([directory.NonceSize]byte, error) {
	var n [directory.NonceSize]byte
	if _, err := io.ReadFull(e.rand, n[:]); err != nil {
		return n, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return n, nil
}

// seal appends data to the region under a fresh nonce.
func (e *Editor) seal(c *speck.Cipher, data []byte, nonce [directory.NonceSize]byte) directory.FileRef {
	offset, stored := e.region.Append(uint64(len(data)))
	copy(stored, data)
	speck.XORKeyStream(c, nonce, stored, stored)
	return directory.FileRef{Offset: offset, Length: uint64(len(data)), Nonce: nonce}
}

// CreateFile encrypts data under a fresh nonce and stores it at path,
// replacing any file or directory already there. Replaced bytes become
// garbage.
func (e *Editor) CreateFile(path string, data, key []byte) (directory.FileDescriptor, error) {
	if err := e.check(); err != nil {
		return directory.FileDescriptor{}, err
	}
	p, err := directory.ParsePath(path)
	if err != nil {
		return directory.FileDescriptor{}, err
	}
	c, err := speck.NewCipher(key)
	if err != nil {
		return directory.FileDescriptor{}, err
	}
	if err := e.tree.CheckParents(p); err != nil {
		return directory.FileDescriptor{}, err
	}
	nonce, err := e.nonce()
	if err != nil {
		return directory.FileDescriptor{}, err
	}

	ref := e.seal(c, data, nonce)
	if _, err := e.tree.PutFile(p, ref); err != nil {
		return directory.FileDescriptor{}, err
	}
	return directory.FileDescriptor{Name: p.Base(), FileRef: ref}, nil
}

// Link makes dst another name for the file at src. Both paths share the same
// payload afterwards; removing one leaves the other intact.
func (e *Editor) Link(src, dst string) error {
	if err := e.check(); err != nil {
		return err
	}
	sp, err := directory.ParsePath(src)
	if err != nil {
		return err
	}
	dp, err := directory.ParsePath(dst)
	if err != nil {
		return err
	}
	fd, err := e.tree.File(sp)
	if err != nil {
		return err
	}
	_, err = e.tree.PutFile(dp, fd.FileRef)
	return err
}

// Remove deletes the file or directory subtree at path.
func (e *Editor) Remove(path string) error {
	if err := e.check(); err != nil {
		return err
	}
	p, err := directory.ParsePath(path)
	if err != nil {
		return err
	}
	_, err = e.tree.Remove(p)
	return err
}

// Move renames a file or directory, replacing whatever lives at dst.
func (e *Editor) Move(src, dst string) error {
	if err := e.check(); err != nil {
		return err
	}
	sp, err := directory.ParsePath(src)
	if err != nil {
		return err
	}
	dp, err := directory.ParsePath(dst)
	if err != nil {
		return err
	}
	_, err = e.tree.Move(sp, dp)
	return err
}

// GC drops every data region byte no file references and rewrites file
// offsets accordingly. Lengths and nonces are unchanged, so no decryption is
// needed. Running GC twice in a row changes nothing the second time.
func (e *Editor) GC() (GCStats, error) {
	if err := e.check(); err != nil {
		return GCStats{}, err
	}
	stats := GCStats{Before: e.region.Len()}
	region, remap, err := layout.Compact(e.region, e.tree.Refs())
	if err != nil {
		return GCStats{}, err
	}
	e.tree.RewriteRefs(func(ref directory.FileRef) directory.FileRef {
		ref.Offset = remap.Offset(ref.Offset)
		return ref
	})
	e.region = region
	stats.After = region.Len()
	return stats, nil
}

// Rekey re-encrypts every payload under newKey with fresh nonces. Aliased
// files keep sharing one payload. The data region is rebuilt without
// garbage.
func (e *Editor) Rekey(oldKey, newKey []byte) error {
	if err := e.check(); err != nil {
		return err
	}
	oc, err := speck.NewCipher(oldKey)
	if err != nil {
		return err
	}
	nc, err := speck.NewCipher(newKey)
	if err != nil {
		return err
	}

	refs := e.tree.Refs()
	nonces := make(map[directory.FileRef][directory.NonceSize]byte, len(refs))
	for _, ref := range refs {
		if _, err := e.region.Slice(ref); err != nil {
			return err
		}
		if _, ok := nonces[ref]; ok {
			continue
		}
		if nonces[ref], err = e.nonce(); err != nil {
			return err
		}
	}

	region, _ := layout.NewRegion(nil)
	moved := make(map[directory.FileRef]directory.FileRef, len(nonces))
	e.tree.RewriteRefs(func(ref directory.FileRef) directory.FileRef {
		if out, ok := moved[ref]; ok {
			return out
		}
		stored, _ := e.region.Slice(ref)
		plain := make([]byte, len(stored))
		speck.XORKeyStream(oc, ref.Nonce, plain, stored)

		offset, buf := region.Append(ref.Length)
		copy(buf, plain)
		nonce := nonces[ref]
		speck.XORKeyStream(nc, nonce, buf, buf)

		out := directory.FileRef{Offset: offset, Length: ref.Length, Nonce: nonce}
		moved[ref] = out
		return out
	})
	e.region = region
	return nil
}

// Finish seals the archive under key and returns its bytes together with the
// final directory tree. The editor cannot be used afterwards.
func (e *Editor) Finish(key []byte) ([]byte, *directory.Tree, error) {
	if err := e.check(); err != nil {
		return nil, nil, err
	}
	c, err := speck.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	dir := directory.Encode(e.tree)
	dirOffset := 1 + e.region.Len()/layout.BlockSize
	if dirOffset > math.MaxUint32 || uint64(len(dir)) > math.MaxUint32 {
		return nil, nil, fmt.Errorf("%w: archive too large for header", kerrors.ErrOutOfRange)
	}
	h := layout.Header{
		Version:   layout.Version,
		DirOffset: uint32(dirOffset),
		DirSize:   uint32(len(dir)),
	}

	sealedHeader := layout.SealHeader(c, h)
	sealedDir := layout.SealMeta(c, dir, dirOffset)
	out := make([]byte, 0, len(sealedHeader)+len(e.region.Bytes())+len(sealedDir))
	out = append(out, sealedHeader[:]...)
	out = append(out, e.region.Bytes()...)
	out = append(out, sealedDir...)

	tree := e.tree
	e.tree, e.region, e.finished = nil, nil, true
	return out, tree, nil
}

// FindFile returns the descriptor of the file at path.
func (e *Editor) FindFile(path string) (directory.FileDescriptor, error) {
	if err := e.check(); err != nil {
		return directory.FileDescriptor{}, err
	}
	return findFile(e.tree, path)
}

// ReadData decrypts the payload of desc.
func (e *Editor) ReadData(desc directory.FileDescriptor, key []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	return readData(e.region, desc.FileRef, key)
}

// Tree returns the editor's live directory tree. It must not be modified
// directly.
func (e *Editor) Tree() *directory.Tree {
	return e.tree
}

// DataSize returns the size of the data region in bytes.
func (e *Editor) DataSize() uint64 {
	if e.finished {
		return 0
	}
	return e.region.Len()
}

// Check reports file refs that do not fit the data region.
func (e *Editor) Check() []directory.Problem {
	if e.finished {
		return nil
	}
	return directory.Check(e.tree, e.region.Len())
}

// Stats summarizes the editor's contents.
func (e *Editor) Stats() (Stats, error) {
	if err := e.check(); err != nil {
		return Stats{}, err
	}
	refs := e.tree.Refs()
	live, err := layout.Live(e.region, refs)
	if err != nil {
		return Stats{}, err
	}
	unique := make(map[directory.FileRef]struct{}, len(refs))
	for _, ref := range refs {
		unique[ref] = struct{}{}
	}
	dirs, files := e.tree.Counts()
	return Stats{
		Dirs:     dirs,
		Files:    files,
		Unique:   len(unique),
		DataSize: e.region.Len(),
		Live:     live,
	}, nil
}
