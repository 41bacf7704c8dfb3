package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/speck"
	"golang.org/x/crypto/argon2"
)

// Size is the key length in bytes.
const Size = speck.KeySize

// SaltSize is the length of a generated passphrase salt.
const SaltSize = 16

// Params tunes Argon2id.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns the Argon2id parameters used when the config leaves
// them unset.
func DefaultParams() Params {
	return Params{Memory: 64 * 1024, Iterations: 3, Parallelism: 4}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Memory == 0 {
		p.Memory = d.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = d.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = d.Parallelism
	}
	return p
}

// ParseHex parses a key written as a hexadecimal integer. Up to 32 digits
// are accepted with an optional 0x prefix; shorter values are zero extended.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" || len(s) > 2*Size {
		return nil, fmt.Errorf("%w: expected 1 to %d hex digits", kerrors.ErrInvalidKey, 2*Size)
	}
	s = strings.Repeat("0", 2*Size-len(s)) + s
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	slices.Reverse(key)
	return key, nil
}

// FormatHex is the inverse of ParseHex.
func FormatHex(key []byte) string {
	b := slices.Clone(key)
	slices.Reverse(b)
	return hex.EncodeToString(b)
}

// Generate returns a random key.
func Generate() ([]byte, error) {
	key := make([]byte, Size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// NewSalt returns a random passphrase salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Derive stretches a passphrase into a key.
func Derive(passphrase, salt []byte, p Params) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase is empty", kerrors.ErrInvalidPassphrase)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt is empty", kerrors.ErrInvalidPassphrase)
	}
	p = p.withDefaults()
	return argon2.IDKey(passphrase, salt, p.Iterations, p.Memory, p.Parallelism, Size), nil
}

// FromEnv reads a hex key from the named environment variable. ok is false
// when the variable is unset or empty.
func FromEnv(name string) (key []byte, ok bool, err error) {
	if name == "" {
		return nil, false, nil
	}
	v := os.Getenv(name)
	if v == "" {
		return nil, false, nil
	}
	key, err = ParseHex(v)
	if err != nil {
		return nil, true, fmt.Errorf("$%s: %w", name, err)
	}
	return key, true, nil
}
