package workflows

import (
	"context"

	"github.com/PolarWolf314/paks/internal/audit"
)

// GCOptions configures the gc workflow.
type GCOptions struct {
	Target

	// DryRun reports what would be reclaimed without rewriting the archive.
	DryRun bool
}

// GCResult contains the outcome of a compaction.
type GCResult struct {
	Before    uint64 // data region bytes before
	After     uint64 // data region bytes after
	Reclaimed uint64
	DryRun    bool
}

// GC drops unreferenced payload bytes from the archive.
func GC(ctx context.Context, opts GCOptions) (*GCResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		stats, err := e.Stats()
		if err != nil {
			return nil, err
		}
		return &GCResult{
			Before:    stats.DataSize,
			After:     stats.Live,
			Reclaimed: stats.Garbage(),
			DryRun:    true,
		}, nil
	}

	stats, err := e.GC()
	if err != nil {
		return nil, err
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("gc", opts.Target.Path)
	entry.Reclaimed = stats.Reclaimed()
	audit.Log(entry)

	return &GCResult{Before: stats.Before, After: stats.After, Reclaimed: stats.Reclaimed()}, nil
}
