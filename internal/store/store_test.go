package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/absfs/memfs"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	fs, err := memfs.NewFS()
	if err != nil {
		t.Fatalf("Failed to create memfs: %v", err)
	}
	return New(fs)
}

func TestSaveAndLoad(t *testing.T) {
	s := newMemStore(t)
	data := bytes.Repeat([]byte{0xAB}, 48)

	if err := s.Save("/a.pak", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load("/a.pak")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Load returned %x, want %x", got, data)
	}

	if err := s.Save("/a.pak", []byte("short")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, err = s.Load("/a.pak")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "short" {
		t.Errorf("Save did not replace contents, got %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	s := newMemStore(t)
	_, err := s.Load("/missing.pak")
	if !errors.Is(err, kerrors.ErrArchiveNotFound) {
		t.Errorf("expected ErrArchiveNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	s := newMemStore(t)

	if err := s.Create("/n.pak", []byte("one"), false); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	exists, err := s.Exists("/n.pak")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true", exists, err)
	}

	err = s.Create("/n.pak", []byte("two"), false)
	if !errors.Is(err, kerrors.ErrArchiveExists) {
		t.Errorf("expected ErrArchiveExists, got %v", err)
	}

	if err := s.Create("/n.pak", []byte("two"), true); err != nil {
		t.Fatalf("forced Create failed: %v", err)
	}
	got, _ := s.Load("/n.pak")
	if string(got) != "two" {
		t.Errorf("forced Create did not replace, got %q", got)
	}
}

func TestOSStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.pak")
	s := OS()

	if err := s.Save(path, []byte("on disk")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load(path)
	if err != nil || string(got) != "on disk" {
		t.Fatalf("Load = %q, %v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temporary files to remain, found %d entries", len(entries))
	}
}
