package speck

import (
	"crypto/cipher"
	"encoding/binary"
)

// NonceSize is the size of a keystream nonce in bytes.
const NonceSize = BlockSize

// Counter returns the counter block for keystream block index i:
// the nonce read as a big-endian 128-bit integer plus i.
func Counter(nonce [NonceSize]byte, i uint64) [BlockSize]byte {
	hi := binary.BigEndian.Uint64(nonce[0:8])
	lo := binary.BigEndian.Uint64(nonce[8:16])
	sum := lo + i
	if sum < lo {
		hi++
	}
	var ctr [BlockSize]byte
	binary.BigEndian.PutUint64(ctr[0:8], hi)
	binary.BigEndian.PutUint64(ctr[8:16], sum)
	return ctr
}

// XORKeyStream XORs src with the keystream for (c, nonce) starting at block 0
// and writes the result to dst. len(dst) must be at least len(src).
// The final partial block consumes only the leading keystream bytes.
func XORKeyStream(c *Cipher, nonce [NonceSize]byte, dst, src []byte) {
	XORKeyStreamAt(c, nonce, 0, dst, src)
}

// XORKeyStreamAt is like XORKeyStream but starts at keystream block index block.
// It lets a reader decrypt a single block of a file without the preceding ones.
func XORKeyStreamAt(c *Cipher, nonce [NonceSize]byte, block uint64, dst, src []byte) {
	if len(src) == 0 {
		return
	}
	iv := Counter(nonce, block)
	cipher.NewCTR(c, iv[:]).XORKeyStream(dst[:len(src)], src)
}
