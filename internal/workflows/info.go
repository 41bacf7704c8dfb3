package workflows

import (
	"context"

	"github.com/opencontainers/go-digest"

	"github.com/PolarWolf314/paks/internal/archive"
	"github.com/PolarWolf314/paks/internal/layout"
)

// InfoOptions configures the info workflow.
type InfoOptions struct {
	Target
}

// InfoResult describes an archive.
type InfoResult struct {
	Path   string
	Size   int
	Digest digest.Digest // digest of the archive bytes as stored
	Header layout.Header
	Stats  archive.Stats
}

// Info reports the header, sizes and content counts of an archive.
func Info(ctx context.Context, opts InfoOptions) (*InfoResult, error) {
	data, err := opts.load(ctx)
	if err != nil {
		return nil, err
	}
	e, err := archive.OpenEditor(data, opts.Key)
	if err != nil {
		return nil, err
	}
	stats, err := e.Stats()
	if err != nil {
		return nil, err
	}
	r, err := archive.FromBlocks(data, opts.Key)
	if err != nil {
		return nil, err
	}

	return &InfoResult{
		Path:   opts.Target.Path,
		Size:   len(data),
		Digest: digest.FromBytes(data),
		Header: r.Header(),
		Stats:  stats,
	}, nil
}
