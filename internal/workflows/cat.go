package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/PolarWolf314/paks/internal/directory"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// CatOptions configures the cat workflow.
type CatOptions struct {
	Target

	// Paths are the files to print, in order.
	Paths []string

	// Out receives the decrypted contents.
	Out io.Writer
}

// CatResult contains the outcome of a cat operation.
type CatResult struct {
	Files int
	Bytes int
}

// Cat decrypts files and writes their contents to Out back to back. It
// stops at the first file that cannot be read.
func Cat(ctx context.Context, opts CatOptions) (*CatResult, error) {
	r, _, err := opts.openReader(ctx)
	if err != nil {
		return nil, err
	}

	result := &CatResult{}
	for _, p := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if path, err := directory.ParsePath(p); err == nil {
			if n, ok := r.Tree().Lookup(path); ok && n.IsDir() {
				return result, fmt.Errorf("%s: %w", p, kerrors.ErrNotFile)
			}
		}
		desc, err := r.FindFile(p)
		if err != nil {
			return result, fmt.Errorf("%s: %w", p, err)
		}
		data, err := r.ReadData(desc, opts.Key)
		if err != nil {
			return result, fmt.Errorf("%s: %w", p, err)
		}
		n, err := opts.Out.Write(data)
		result.Bytes += n
		if err != nil {
			return result, err
		}
		result.Files++
	}
	return result, nil
}
