package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/audit"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Target

	// Paths are files or directories to delete.
	Paths []string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Removed []string
}

// Remove deletes files and directory subtrees. Their payloads stay in the
// data region until the next GC. Either every path is removed or the
// archive is left unchanged.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range opts.Paths {
		if err := e.Remove(p); err != nil {
			return nil, fmt.Errorf("removing %s: %w", p, err)
		}
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("rm", opts.Target.Path)
	entry.Paths = opts.Paths
	audit.Log(entry)

	return &RemoveResult{Removed: opts.Paths}, nil
}

// MoveOptions configures the move workflow.
type MoveOptions struct {
	Target

	Src string
	Dst string
}

// MoveResult contains the outcome of a move operation.
type MoveResult struct {
	Src string
	Dst string
}

// Move renames a file or directory inside the archive.
func Move(ctx context.Context, opts MoveOptions) (*MoveResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.Move(opts.Src, opts.Dst); err != nil {
		return nil, fmt.Errorf("moving %s to %s: %w", opts.Src, opts.Dst, err)
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("mv", opts.Target.Path)
	entry.Paths = []string{opts.Src}
	entry.Target = opts.Dst
	audit.Log(entry)

	return &MoveResult{Src: opts.Src, Dst: opts.Dst}, nil
}
