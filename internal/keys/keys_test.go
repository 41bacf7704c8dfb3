package keys

import (
	"bytes"
	"testing"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"full width", "0f0e0d0c0b0a09080706050403020100", []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
		{"short", "1", append([]byte{1}, make([]byte, 15)...)},
		{"prefixed", "0x0102", append([]byte{2, 1}, make([]byte, 14)...)},
		{"upper case", "ABCD", append([]byte{0xCD, 0xAB}, make([]byte, 14)...)},
		{"odd digits", "abc", append([]byte{0xBC, 0x0A}, make([]byte, 14)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexRejects(t *testing.T) {
	for _, input := range []string{"", "0x", "xyz", "000000000000000000000000000000001"} {
		_, err := ParseHex(input)
		assert.ErrorIs(t, err, kerrors.ErrInvalidKey, input)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	key, err := Generate()
	require.NoError(t, err)
	require.Len(t, key, Size)

	back, err := ParseHex(FormatHex(key))
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestDerive(t *testing.T) {
	p := Params{Memory: 1024, Iterations: 1, Parallelism: 1}
	salt := bytes.Repeat([]byte{7}, SaltSize)

	a, err := Derive([]byte("correct horse"), salt, p)
	require.NoError(t, err)
	assert.Len(t, a, Size)

	b, err := Derive([]byte("correct horse"), salt, p)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Derive([]byte("correct horse"), bytes.Repeat([]byte{8}, SaltSize), p)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Derive(nil, salt, p)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPassphrase)
	_, err = Derive([]byte("x"), nil, p)
	assert.ErrorIs(t, err, kerrors.ErrInvalidPassphrase)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PAKS_TEST_KEY", "ff")
	key, ok, err := FromEnv("PAKS_TEST_KEY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte(0xff), key[0])

	t.Setenv("PAKS_TEST_KEY", "not hex")
	_, ok, err = FromEnv("PAKS_TEST_KEY")
	assert.True(t, ok)
	assert.ErrorIs(t, err, kerrors.ErrInvalidKey)

	_, ok, err = FromEnv("PAKS_TEST_KEY_UNSET")
	require.NoError(t, err)
	assert.False(t, ok)
}
