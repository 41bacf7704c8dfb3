package directory

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// Separator separates path components.
const Separator = '/'

// MaxNameLen is the longest name a descriptor can carry.
const MaxNameLen = 1<<16 - 1

// Path is a parsed, non-empty sequence of non-empty components.
type Path []string

// ParsePath splits s on '/'. Empty paths and empty components (leading,
// trailing or doubled separators) are rejected with ErrInvalidPath.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", kerrors.ErrInvalidPath)
	}
	parts := strings.Split(s, string(Separator))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty component in %q", kerrors.ErrInvalidPath, s)
		}
		if len(part) > MaxNameLen {
			return nil, fmt.Errorf("%w: component longer than %d bytes", kerrors.ErrInvalidPath, MaxNameLen)
		}
	}
	return Path(parts), nil
}

// String joins the components with '/'.
func (p Path) String() string {
	return strings.Join(p, string(Separator))
}

// Base returns the last component.
func (p Path) Base() string {
	return p[len(p)-1]
}

// Dir returns all but the last component.
func (p Path) Dir() Path {
	return p[:len(p)-1]
}

// HasPrefix reports whether q is p itself or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
