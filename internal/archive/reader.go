package archive

import (
	"fmt"

	"github.com/PolarWolf314/paks/internal/directory"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/layout"
	"github.com/PolarWolf314/paks/internal/speck"
)

// Reader gives read access to a finished archive.
type Reader struct {
	header layout.Header
	tree   *directory.Tree
	region *layout.Region
}

// FromBlocks decodes the header and directory of archive. The data region is
// kept encrypted and shares memory with archive, which must not be modified
// while the Reader is in use.
func FromBlocks(archive, key []byte) (*Reader, error) {
	if len(archive) == 0 || len(archive)%layout.BlockSize != 0 {
		return nil, fmt.Errorf("%w: archive length %d is not a whole number of blocks", kerrors.ErrCorruptDirectory, len(archive))
	}
	c, err := speck.NewCipher(key)
	if err != nil {
		return nil, err
	}
	h, err := layout.OpenHeader(c, archive[:layout.BlockSize])
	if err != nil {
		return nil, err
	}

	blocks := uint64(len(archive)) / layout.BlockSize
	dirStart := uint64(h.DirOffset)
	dirEnd := dirStart + h.DirBlocks()
	if dirStart < 1 || dirEnd > blocks {
		return nil, fmt.Errorf("%w: directory blocks [%d, %d) outside archive of %d blocks", kerrors.ErrCorruptDirectory, dirStart, dirEnd, blocks)
	}

	sealed := archive[dirStart*layout.BlockSize : dirEnd*layout.BlockSize]
	plain, err := layout.OpenMeta(c, sealed, dirStart)
	if err != nil {
		return nil, err
	}
	for _, b := range plain[h.DirSize:] {
		if b != 0 {
			return nil, fmt.Errorf("%w: non-zero directory padding", kerrors.ErrCorruptDirectory)
		}
	}
	tree, err := directory.Decode(plain[:h.DirSize])
	if err != nil {
		return nil, err
	}

	region, err := layout.NewRegion(archive[layout.BlockSize : dirStart*layout.BlockSize])
	if err != nil {
		return nil, err
	}
	return &Reader{header: h, tree: tree, region: region}, nil
}

// FindFile returns the descriptor of the file at path.
func (r *Reader) FindFile(path string) (directory.FileDescriptor, error) {
	return findFile(r.tree, path)
}

// ReadData decrypts the payload of desc.
func (r *Reader) ReadData(desc directory.FileDescriptor, key []byte) ([]byte, error) {
	return readData(r.region, desc.FileRef, key)
}

// Tree returns the decoded directory tree. It must not be modified.
func (r *Reader) Tree() *directory.Tree {
	return r.tree
}

// Header returns the decrypted archive header.
func (r *Reader) Header() layout.Header {
	return r.header
}

// DataSize returns the size of the data region in bytes.
func (r *Reader) DataSize() uint64 {
	return r.region.Len()
}

// Check reports file refs that do not fit the data region.
func (r *Reader) Check() []directory.Problem {
	return directory.Check(r.tree, r.region.Len())
}

func findFile(t *directory.Tree, path string) (directory.FileDescriptor, error) {
	p, err := directory.ParsePath(path)
	if err != nil {
		return directory.FileDescriptor{}, err
	}
	return t.File(p)
}

func readData(region *layout.Region, ref directory.FileRef, key []byte) ([]byte, error) {
	c, err := speck.NewCipher(key)
	if err != nil {
		return nil, err
	}
	stored, err := region.Slice(ref)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(stored))
	speck.XORKeyStream(c, ref.Nonce, out, stored)
	return out[:ref.Length], nil
}
