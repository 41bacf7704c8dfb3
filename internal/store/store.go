// Package store persists archive bytes on a filesystem.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/absfs/absfs"
	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// FS is the part of absfs.FileSystem the store needs.
type FS interface {
	OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error)
	Stat(name string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// osFS is the host filesystem. *os.File satisfies absfs.File.
type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	return os.OpenFile(name, flag, perm)
}

func (osFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (osFS) Rename(oldpath, newpath string) error  { return os.Rename(oldpath, newpath) }
func (osFS) Remove(name string) error              { return os.Remove(name) }

// Store reads and writes whole archives.
type Store struct {
	fs FS
}

// New returns a store backed by fs.
func New(fs FS) *Store {
	return &Store{fs: fs}
}

// OS returns a store backed by the host filesystem.
func OS() *Store {
	return New(osFS{})
}

// Exists reports whether an archive exists at path.
func (s *Store) Exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the archive at path.
func (s *Store) Load(path string) ([]byte, error) {
	f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrArchiveNotFound, path)
		}
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return data, nil
}

// Save replaces the archive at path. The bytes are written to a temporary
// file next to it first and renamed over the target, so readers never see a
// partial archive.
func (s *Store) Save(path string, data []byte) error {
	tmp := path + ".tmp-" + uuid.NewString()
	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temporary archive: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace archive: %w", err)
	}
	return nil
}

// Create writes a new archive, refusing to replace an existing one unless
// force is set.
func (s *Store) Create(path string, data []byte, force bool) error {
	if !force {
		exists, err := s.Exists(path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", kerrors.ErrArchiveExists, path)
		}
	}
	return s.Save(path, data)
}
