package speck

import (
	"bytes"
	"encoding/hex"
	"testing"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestCipherTestVector(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := mustHex(t, "206d616465206974206571756976616c")
	want := mustHex(t, "180d575cdffe60786532787951985da6")

	c, err := NewCipher(key)
	require.NoError(t, err)

	got := make([]byte, BlockSize)
	c.Encrypt(got, pt)
	assert.Equal(t, want, got)

	back := make([]byte, BlockSize)
	c.Decrypt(back, got)
	assert.Equal(t, pt, back)
}

func TestCipherInPlace(t *testing.T) {
	c, err := NewCipher(bytes.Repeat([]byte{0x42}, KeySize))
	require.NoError(t, err)

	orig := []byte("sixteen byte blk")
	buf := append([]byte(nil), orig...)
	c.Encrypt(buf, buf)
	assert.NotEqual(t, orig, buf)
	c.Decrypt(buf, buf)
	assert.Equal(t, orig, buf)
}

func TestNewCipherRejectsKeySizes(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 32} {
		_, err := NewCipher(make([]byte, n))
		assert.ErrorIs(t, err, kerrors.ErrInvalidKey, "key length %d", n)
	}
}

func TestCipherIsDeterministic(t *testing.T) {
	key := mustHex(t, "ffeeddccbbaa99887766554433221100")
	c1, err := NewCipher(key)
	require.NoError(t, err)
	c2, err := NewCipher(key)
	require.NoError(t, err)

	src := []byte("0123456789abcdef")
	a := make([]byte, BlockSize)
	b := make([]byte, BlockSize)
	c1.Encrypt(a, src)
	c2.Encrypt(b, src)
	assert.Equal(t, a, b)
	assert.Equal(t, BlockSize, c1.BlockSize())
}
