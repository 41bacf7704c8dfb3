package speck

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher([]byte("0123456789abcdef"))
	require.NoError(t, err)
	return c
}

func TestXORKeyStreamRoundTrip(t *testing.T) {
	c := testCipher(t)
	nonce := [NonceSize]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 65, 1000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}
		ct := make([]byte, n)
		XORKeyStream(c, nonce, ct, data)
		if n >= BlockSize {
			assert.NotEqual(t, data, ct, "length %d", n)
		}

		pt := make([]byte, n)
		XORKeyStream(c, nonce, pt, ct)
		assert.Equal(t, data, pt, "length %d", n)
	}
}

func TestXORKeyStreamNonceIndependence(t *testing.T) {
	c := testCipher(t)
	data := bytes.Repeat([]byte{0xCF}, 65)

	a := make([]byte, len(data))
	b := make([]byte, len(data))
	XORKeyStream(c, [NonceSize]byte{1}, a, data)
	XORKeyStream(c, [NonceSize]byte{2}, b, data)
	assert.NotEqual(t, a, b)
}

func TestXORKeyStreamAtMatchesOffset(t *testing.T) {
	c := testCipher(t)
	nonce := [NonceSize]byte{0xAA}
	data := bytes.Repeat([]byte("abcdefghijklmnop"), 4)

	full := make([]byte, len(data))
	XORKeyStream(c, nonce, full, data)

	tail := make([]byte, 2*BlockSize)
	XORKeyStreamAt(c, nonce, 2, tail, data[2*BlockSize:])
	assert.Equal(t, full[2*BlockSize:], tail)
}

func TestCounterCarries(t *testing.T) {
	var nonce [NonceSize]byte
	for i := 8; i < NonceSize; i++ {
		nonce[i] = 0xFF
	}
	ctr := Counter(nonce, 1)
	want := [BlockSize]byte{0, 0, 0, 0, 0, 0, 0, 1}
	assert.Equal(t, want, ctr)
}

func TestKeystreamUsesBlockCipher(t *testing.T) {
	c := testCipher(t)
	nonce := [NonceSize]byte{9, 9, 9}

	ks := make([]byte, BlockSize)
	XORKeyStream(c, nonce, ks, make([]byte, BlockSize))

	want := make([]byte, BlockSize)
	ctr := Counter(nonce, 0)
	c.Encrypt(want, ctr[:])
	assert.Equal(t, want, ks)
}
