package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/audit"
)

// RekeyOptions configures the rekey workflow.
type RekeyOptions struct {
	Target

	// NewKey replaces Key.
	NewKey []byte
}

// RekeyResult contains the outcome of a rekey.
type RekeyResult struct {
	Files    int
	Unique   int
	DataSize uint64
}

// Rekey re-encrypts the archive under NewKey. Files get fresh nonces and
// garbage is dropped along the way.
func Rekey(ctx context.Context, opts RekeyOptions) (*RekeyResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.Rekey(opts.Key, opts.NewKey); err != nil {
		return nil, fmt.Errorf("rekeying %s: %w", opts.Target.Path, err)
	}
	stats, err := e.Stats()
	if err != nil {
		return nil, err
	}
	if _, err := opts.commit(ctx, e, opts.NewKey); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("rekey", opts.Target.Path)
	entry.FilesCount = stats.Files
	audit.Log(entry)

	return &RekeyResult{Files: stats.Files, Unique: stats.Unique, DataSize: stats.DataSize}, nil
}
