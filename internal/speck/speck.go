package speck

import (
	"crypto/cipher"
	"encoding/binary"
	"math/bits"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

const (
	// BlockSize is the Speck128 block size in bytes.
	BlockSize = 16

	// KeySize is the Speck128/128 key size in bytes.
	KeySize = 16

	// Rounds is the number of Speck128/128 rounds.
	Rounds = 32
)

// Cipher is an expanded Speck128/128 key. It is safe for concurrent use.
type Cipher struct {
	rk [Rounds]uint64
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key into round keys.
// Returns ErrInvalidKey unless key is exactly KeySize bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, kerrors.ErrInvalidKey
	}
	c := &Cipher{}
	c.expand(binary.LittleEndian.Uint64(key[0:8]), binary.LittleEndian.Uint64(key[8:16]))
	return c, nil
}

func (c *Cipher) expand(a, b uint64) {
	for i := range uint64(Rounds) {
		c.rk[i] = a
		b, a = round(b, a, i)
	}
}

func round(x, y, k uint64) (uint64, uint64) {
	x = (bits.RotateLeft64(x, -8) + y) ^ k
	y = bits.RotateLeft64(y, 3) ^ x
	return x, y
}

func unround(x, y, k uint64) (uint64, uint64) {
	y = bits.RotateLeft64(y^x, -3)
	x = bits.RotateLeft64((x^k)-y, 8)
	return x, y
}

// BlockSize returns the cipher's block size.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block in src into dst.
// dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("speck: input not full block")
	}
	y := binary.LittleEndian.Uint64(src[0:8])
	x := binary.LittleEndian.Uint64(src[8:16])
	for i := range Rounds {
		x, y = round(x, y, c.rk[i])
	}
	binary.LittleEndian.PutUint64(dst[0:8], y)
	binary.LittleEndian.PutUint64(dst[8:16], x)
}

// Decrypt decrypts the first block in src into dst.
// dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("speck: input not full block")
	}
	y := binary.LittleEndian.Uint64(src[0:8])
	x := binary.LittleEndian.Uint64(src[8:16])
	for i := Rounds - 1; i >= 0; i-- {
		x, y = unround(x, y, c.rk[i])
	}
	binary.LittleEndian.PutUint64(dst[0:8], y)
	binary.LittleEndian.PutUint64(dst[8:16], x)
}
