package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// HostFile is a file on the host selected for copying into an archive.
type HostFile struct {
	Path string // Absolute host path.
	Name string // Relative archive name, '/' separated.
}

// ResolveFiles expands user-provided paths, globs and directories into host
// files. Literal files and glob matches are named by their base name;
// directories are walked and keep their structure below the directory's own
// name. Duplicate host paths are dropped.
func ResolveFiles(patterns []string, baseDir string) ([]HostFile, error) {
	var files []HostFile
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f.Path] {
				seen[f.Path] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, baseDir string) ([]HostFile, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findFilesInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(pattern, absPattern)
	}

	if err != nil {
		return nil, fmt.Errorf("file not found: %s", pattern)
	}
	return []HostFile{{Path: absPattern, Name: filepath.Base(absPattern)}}, nil
}

func expandGlob(pattern, absPattern string) ([]HostFile, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []HostFile
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, HostFile{Path: m, Name: filepath.Base(m)})
	}
	return files, nil
}

func findFilesInDir(dir string) ([]HostFile, error) {
	var files []HostFile
	parent := filepath.Dir(dir)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		files = append(files, HostFile{Path: path, Name: filepath.ToSlash(rel)})
		return nil
	})

	return files, err
}
