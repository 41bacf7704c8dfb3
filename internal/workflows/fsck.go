package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/paks/internal/directory"
)

// FsckOptions configures the fsck workflow.
type FsckOptions struct {
	Target

	// Decrypt reads every file payload in addition to checking ranges.
	Decrypt bool
}

// FsckResult contains the findings of a consistency check.
type FsckResult struct {
	Dirs     int
	Files    int
	Problems []directory.Problem
}

// OK reports whether no problems were found.
func (r *FsckResult) OK() bool {
	return len(r.Problems) == 0
}

// Fsck decodes the archive and checks that every file fits the data region.
// A header or directory that cannot be decoded is returned as an error
// rather than a problem.
func Fsck(ctx context.Context, opts FsckOptions) (*FsckResult, error) {
	r, _, err := opts.openReader(ctx)
	if err != nil {
		return nil, err
	}

	result := &FsckResult{Problems: r.Check()}
	result.Dirs, result.Files = r.Tree().Counts()
	if !opts.Decrypt || !result.OK() {
		return result, nil
	}

	for p, n := range r.Tree().Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		desc := directory.FileDescriptor{Name: n.Name, FileRef: n.Ref}
		if _, err := r.ReadData(desc, opts.Key); err != nil {
			result.Problems = append(result.Problems, directory.Problem{
				Path:    p,
				Message: fmt.Sprintf("cannot read payload: %v", err),
			})
		}
	}
	return result, nil
}
