package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/paks/internal/directory"
)

// TreeOptions configures the tree workflow.
type TreeOptions struct {
	Target

	// Root is an optional directory inside the archive to draw.
	Root string

	// Art selects the drawing glyphs.
	Art directory.Art
}

// TreeResult contains the rendered directory.
type TreeResult struct {
	Output string
	Dirs   int
	Files  int
}

// Tree renders the archive's directory.
//
// Returns ErrNotFound if Root does not exist and ErrNotDirectory if it names
// a file.
func Tree(ctx context.Context, opts TreeOptions) (*TreeResult, error) {
	r, _, err := opts.openReader(ctx)
	if err != nil {
		return nil, err
	}

	var root directory.Path
	if name := strings.Trim(opts.Root, "/"); name != "" && name != "." {
		if root, err = directory.ParsePath(name); err != nil {
			return nil, err
		}
	}

	var b strings.Builder
	if err := directory.Render(&b, r.Tree(), directory.RenderOptions{Art: opts.Art, Root: root}); err != nil {
		return nil, err
	}

	dirs, files := r.Tree().Counts()
	return &TreeResult{Output: b.String(), Dirs: dirs, Files: files}, nil
}
