package cmd

import (
	"github.com/PolarWolf314/paks/internal/keys"
)

// keyFlag is a pflag.Value holding a hex archive key. Malformed keys are
// rejected while flags are parsed.
type keyFlag struct {
	hex string
}

func (k *keyFlag) String() string {
	if k.hex == "" {
		return ""
	}
	return "<redacted>"
}

func (k *keyFlag) Set(s string) error {
	if _, err := keys.ParseHex(s); err != nil {
		return err
	}
	k.hex = s
	return nil
}

func (k *keyFlag) Type() string {
	return "hex"
}

// IsSet reports whether a key was given.
func (k *keyFlag) IsSet() bool {
	return k.hex != ""
}
