package layout

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// Pad returns b zero-padded to a whole number of blocks.
func Pad(b []byte) []byte {
	n := (len(b) + BlockSize - 1) / BlockSize * BlockSize
	if n == len(b) {
		return b
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func tweak(block []byte, index uint64) {
	binary.LittleEndian.PutUint64(block, binary.LittleEndian.Uint64(block)^index)
}

// SealMeta pads b and encrypts it block by block. firstBlock is the absolute
// index of the first block in the archive.
func SealMeta(c cipher.Block, b []byte, firstBlock uint64) []byte {
	out := make([]byte, len(Pad(b)))
	copy(out, b)
	for i := 0; i < len(out); i += BlockSize {
		blk := out[i : i+BlockSize]
		tweak(blk, firstBlock+uint64(i/BlockSize))
		c.Encrypt(blk, blk)
	}
	return out
}

// OpenMeta reverses SealMeta. The result still carries the padding.
func OpenMeta(c cipher.Block, b []byte, firstBlock uint64) ([]byte, error) {
	if len(b)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: metadata is not block aligned", kerrors.ErrCorruptDirectory)
	}
	out := make([]byte, len(b))
	for i := 0; i < len(b); i += BlockSize {
		blk := out[i : i+BlockSize]
		c.Decrypt(blk, b[i:i+BlockSize])
		tweak(blk, firstBlock+uint64(i/BlockSize))
	}
	return out, nil
}
