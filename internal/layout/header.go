package layout

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/speck"
)

// BlockSize is the archive's allocation unit.
const BlockSize = speck.BlockSize

// Version is the little-endian reading of "PAK1".
const Version uint32 = 'P' | 'A'<<8 | 'K'<<16 | '1'<<24

// Header is the first block of every archive.
type Header struct {
	Version   uint32
	Flags     uint32
	DirOffset uint32 // in blocks, from the start of the archive
	DirSize   uint32 // in bytes, before padding
}

// DirBlocks returns the number of blocks the directory occupies.
func (h Header) DirBlocks() uint64 {
	return (uint64(h.DirSize) + BlockSize - 1) / BlockSize
}

// DataSize returns the size of the data region in bytes.
func (h Header) DataSize() uint64 {
	if h.DirOffset == 0 {
		return 0
	}
	return uint64(h.DirOffset-1) * BlockSize
}

func (h Header) marshal() [BlockSize]byte {
	var b [BlockSize]byte
	binary.LittleEndian.PutUint32(b[0:], h.Version)
	binary.LittleEndian.PutUint32(b[4:], h.Flags)
	binary.LittleEndian.PutUint32(b[8:], h.DirOffset)
	binary.LittleEndian.PutUint32(b[12:], h.DirSize)
	return b
}

func unmarshalHeader(b []byte) Header {
	return Header{
		Version:   binary.LittleEndian.Uint32(b[0:]),
		Flags:     binary.LittleEndian.Uint32(b[4:]),
		DirOffset: binary.LittleEndian.Uint32(b[8:]),
		DirSize:   binary.LittleEndian.Uint32(b[12:]),
	}
}

// SealHeader encrypts h into one block.
func SealHeader(c cipher.Block, h Header) [BlockSize]byte {
	b := h.marshal()
	c.Encrypt(b[:], b[:])
	return b
}

// OpenHeader decrypts the first block of an archive. A version other than
// Version or any set flag is reported as ErrInvalidVersion, which is also
// what a wrong key produces.
func OpenHeader(c cipher.Block, block []byte) (Header, error) {
	if len(block) < BlockSize {
		return Header{}, fmt.Errorf("%w: header shorter than one block", kerrors.ErrCorruptDirectory)
	}
	var b [BlockSize]byte
	c.Decrypt(b[:], block[:BlockSize])
	h := unmarshalHeader(b[:])
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: got %#08x", kerrors.ErrInvalidVersion, h.Version)
	}
	if h.Flags != 0 {
		return Header{}, fmt.Errorf("%w: unknown flags %#x", kerrors.ErrInvalidVersion, h.Flags)
	}
	return h, nil
}
