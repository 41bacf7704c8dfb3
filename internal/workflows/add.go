package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/paks/internal/audit"
	"github.com/PolarWolf314/paks/internal/utils"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	Target

	// Path is the destination inside the archive.
	Path string

	// Data is the file content.
	Data []byte
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Path string
	Size int
}

// Add stores one file in the archive, replacing anything at its path.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := e.CreateFile(opts.Path, opts.Data, opts.Key); err != nil {
		return nil, fmt.Errorf("adding %s: %w", opts.Path, err)
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("add", opts.Target.Path)
	entry.Paths = []string{opts.Path}
	entry.FilesCount = 1
	audit.Log(entry)

	return &AddResult{Path: opts.Path, Size: len(opts.Data)}, nil
}

// CopyOptions configures the copy workflow.
type CopyOptions struct {
	Target

	// Dir is the archive directory the files are copied into.
	Dir string

	// Patterns selects host files: literal paths, globs or directories.
	Patterns []string

	// BaseDir resolves relative patterns. If empty, the working directory is used.
	BaseDir string

	// DryRun lists the destinations without modifying the archive.
	DryRun bool
}

// CopyResult contains the outcome of a copy operation.
type CopyResult struct {
	// Added lists each destination with the host file it was read from.
	Added   []CopiedFile
	Bytes   int
	DryRun  bool
	Archive string
}

// CopiedFile is one host file stored in the archive.
type CopiedFile struct {
	Source string
	Dest   string
}

// Copy reads host files and stores them below Dir. Either every file is
// added or the archive is left unchanged.
//
// Returns ErrNoFilesFound if the patterns match nothing.
func Copy(ctx context.Context, opts CopyOptions) (*CopyResult, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	files, err := utils.ResolveFiles(opts.Patterns, baseDir)
	if err != nil {
		return nil, err
	}

	result := &CopyResult{DryRun: opts.DryRun, Archive: opts.Target.Path}
	for _, f := range files {
		result.Added = append(result.Added, CopiedFile{Source: f.Path, Dest: utils.JoinArchivePath(opts.Dir, f.Name)})
	}
	if opts.DryRun {
		return result, nil
	}

	e, err := opts.openEditor(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range result.Added {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(c.Source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.Source, err)
		}
		if _, err := e.CreateFile(c.Dest, data, opts.Key); err != nil {
			return nil, fmt.Errorf("adding %s: %w", c.Dest, err)
		}
		result.Bytes += len(data)
	}
	if _, err := opts.commit(ctx, e, opts.Key); err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("copy", opts.Target.Path)
	for _, c := range result.Added {
		entry.Paths = append(entry.Paths, c.Dest)
	}
	entry.FilesCount = len(result.Added)
	audit.Log(entry)

	return result, nil
}
