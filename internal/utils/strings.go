package utils

import (
	"strings"

	"github.com/PolarWolf314/paks/internal/ui"
)

// FormatPaths formats a slice of archive paths into a readable list.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Entry.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// JoinArchivePath joins archive path components with '/', dropping empty
// components and surrounding slashes so a user-supplied directory like
// "assets/" composes cleanly with a file name.
func JoinArchivePath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		for _, c := range strings.Split(p, "/") {
			if c != "" {
				kept = append(kept, c)
			}
		}
	}
	return strings.Join(kept, "/")
}
