package utils

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if name == "" {
		t.Error("GetUsername returned empty string")
	}
}

func TestJoinArchivePath(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{"Simple", []string{"a", "b"}, "a/b"},
		{"TrailingSlash", []string{"assets/", "x.png"}, "assets/x.png"},
		{"NestedName", []string{"dst", "dir/sub/f"}, "dst/dir/sub/f"},
		{"EmptyBase", []string{"", "f"}, "f"},
		{"RootBase", []string{"/", "f"}, "f"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoinArchivePath(tc.parts...); got != tc.expected {
				t.Errorf("JoinArchivePath(%q) = %q, expected %q", tc.parts, got, tc.expected)
			}
		})
	}
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
}

func names(files []HostFile) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

func TestResolveFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "one.txt", "two.txt", "img/a.png", "img/deep/b.png", "notes.md")

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{"Literal", []string{"one.txt"}, []string{"one.txt"}},
		{"Glob", []string{"*.txt"}, []string{"one.txt", "two.txt"}},
		{"DoubleStar", []string{"img/**/*.png"}, []string{"a.png", "b.png"}},
		{"Directory", []string{"img"}, []string{"img/a.png", "img/deep/b.png"}},
		{"Deduplicated", []string{"one.txt", "*.txt"}, []string{"one.txt", "two.txt"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			files, err := ResolveFiles(tc.patterns, root)
			if err != nil {
				t.Fatalf("ResolveFiles failed: %v", err)
			}
			got := names(files)
			if len(got) != len(tc.expected) {
				t.Fatalf("got %v, expected %v", got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("got %v, expected %v", got, tc.expected)
					break
				}
			}
		})
	}
}

func TestResolveFilesErrors(t *testing.T) {
	root := t.TempDir()

	if _, err := ResolveFiles([]string{"missing.txt"}, root); err == nil {
		t.Error("expected error for missing literal file")
	}

	_, err := ResolveFiles([]string{"*.nothing"}, root)
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("expected ErrNoFilesFound, got %v", err)
	}
}
