package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/configs"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
	"github.com/PolarWolf314/paks/internal/keys"
	"github.com/PolarWolf314/paks/internal/utils"
)

// KeySource names where a resolved key came from.
type KeySource string

const (
	KeyFromFlag       KeySource = "flag"
	KeyFromPassphrase KeySource = "passphrase"
	KeyFromEnv        KeySource = "env"
)

// KeyOptions configures key resolution.
type KeyOptions struct {
	// Hex is an explicit key. It wins over every other source.
	Hex string

	// Passphrase derives the key from a prompted passphrase and the salt in
	// the user config.
	Passphrase bool

	// Prompt is shown when reading the passphrase.
	Prompt string

	// ReadPassphrase overrides how the passphrase is read.
	ReadPassphrase func(prompt string) ([]byte, error)
}

// KeyResult contains a resolved archive key.
type KeyResult struct {
	Key    []byte
	Source KeySource
}

// ResolveKey picks the archive key from, in order, the explicit hex key, a
// passphrase, or the environment variable named in the user config.
//
// Returns ErrNoKey if no source is available.
func ResolveKey(ctx context.Context, opts KeyOptions) (*KeyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Hex != "" {
		key, err := keys.ParseHex(opts.Hex)
		if err != nil {
			return nil, err
		}
		return &KeyResult{Key: key, Source: KeyFromFlag}, nil
	}

	cfg := configs.GlobalUserConfig
	if cfg == nil || (opts.Passphrase && cfg.Keys.Salt == "") {
		var err error
		if cfg, err = configs.EnsureUserConfig(); err != nil {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	if opts.Passphrase {
		read := opts.ReadPassphrase
		if read == nil {
			read = utils.ReadPassphrase
		}
		prompt := opts.Prompt
		if prompt == "" {
			prompt = "Passphrase: "
		}
		passphrase, err := read(prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPassphrase, err)
		}
		salt, err := cfg.Keys.SaltBytes()
		if err != nil {
			return nil, err
		}
		key, err := keys.Derive(passphrase, salt, cfg.Keys.Params())
		if err != nil {
			return nil, err
		}
		return &KeyResult{Key: key, Source: KeyFromPassphrase}, nil
	}

	key, ok, err := keys.FromEnv(cfg.Keys.Env)
	if err != nil {
		return nil, err
	}
	if ok {
		return &KeyResult{Key: key, Source: KeyFromEnv}, nil
	}

	return nil, fmt.Errorf("%w: pass --key, use --passphrase, or set $%s", kerrors.ErrNoKey, cfg.Keys.Env)
}

// KeygenResult contains a freshly generated key.
type KeygenResult struct {
	Key []byte
	Hex string
}

// Keygen generates a random archive key.
func Keygen(ctx context.Context) (*KeygenResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := keys.Generate()
	if err != nil {
		return nil, err
	}
	return &KeygenResult{Key: key, Hex: keys.FormatHex(key)}, nil
}
