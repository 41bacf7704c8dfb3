package workflows

import (
	"context"

	"github.com/PolarWolf314/paks/internal/archive"
	"github.com/PolarWolf314/paks/internal/audit"
)

// NewOptions configures the new workflow.
type NewOptions struct {
	Target

	// Force replaces an existing archive.
	Force bool
}

// NewResult contains the outcome of creating an archive.
type NewResult struct {
	Path string
	Size int
}

// New creates an empty archive.
//
// Returns ErrArchiveExists if a file already exists at the path and Force is
// not set.
func New(ctx context.Context, opts NewOptions) (*NewResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := archive.NewEditor().Finish(opts.Key)
	if err != nil {
		return nil, err
	}
	if err := opts.store().Create(opts.Path, data, opts.Force); err != nil {
		return nil, err
	}

	audit.Log(audit.LogWithUser("new", opts.Path))

	return &NewResult{Path: opts.Path, Size: len(data)}, nil
}
