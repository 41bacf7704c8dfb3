package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/audit"
)

// LinkOptions configures the link workflow.
type LinkOptions struct {
	Target

	// Src is an existing file in the archive.
	Src string

	// Dsts are the new names for Src.
	Dsts []string
}

// LinkResult contains the outcome of a link operation.
type LinkResult struct {
	Src    string
	Linked []string
}

// Link gives an existing file additional names that share its payload.
// Either every name is created or the archive is left unchanged.
func Link(ctx context.Context, opts LinkOptions) (*LinkResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	for _, dst := range opts.Dsts {
		if err := e.Link(opts.Src, dst); err != nil {
			return nil, fmt.Errorf("linking %s to %s: %w", dst, opts.Src, err)
		}
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("link", opts.Target.Path)
	entry.Paths = opts.Dsts
	entry.Target = opts.Src
	audit.Log(entry)

	return &LinkResult{Src: opts.Src, Linked: opts.Dsts}, nil
}
