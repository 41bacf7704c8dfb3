package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/archive"
	"github.com/PolarWolf314/paks/internal/store"
)

// Target identifies an archive on disk and the key that opens it.
type Target struct {
	// Path is the archive file.
	Path string

	// Key is the 128-bit archive key.
	Key []byte

	// Store overrides where archives are read from and written to.
	// If nil, the host filesystem is used.
	Store *store.Store
}

func (t Target) store() *store.Store {
	if t.Store != nil {
		return t.Store
	}
	return store.OS()
}

// load reads the raw archive bytes.
func (t Target) load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.store().Load(t.Path)
}

// openReader decodes the archive for reading.
func (t Target) openReader(ctx context.Context) (*archive.Reader, []byte, error) {
	data, err := t.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := archive.FromBlocks(data, t.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", t.Path, err)
	}
	return r, data, nil
}

// openEditor decodes the archive for editing.
func (t Target) openEditor(ctx context.Context) (*archive.Editor, error) {
	data, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	e, err := archive.OpenEditor(data, t.Key)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", t.Path, err)
	}
	return e, nil
}

// commit seals the editor under key and replaces the archive on disk. It
// returns the size of the written archive.
func (t Target) commit(ctx context.Context, e *archive.Editor, key []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, _, err := e.Finish(key)
	if err != nil {
		return 0, fmt.Errorf("sealing %s: %w", t.Path, err)
	}
	if err := t.store().Save(t.Path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
