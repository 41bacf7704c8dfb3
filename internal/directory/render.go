package directory

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// Art is the set of glyphs used to draw a tree.
type Art struct {
	MarginOpen   string
	MarginClosed string
	DirEntry     string
	DirLast      string
	FileEntry    string
	FileLast     string
}

var (
	ASCII = Art{
		MarginOpen:   "   ",
		MarginClosed: "|  ",
		DirEntry:     "+- ",
		DirLast:      "`- ",
		FileEntry:    "|  ",
		FileLast:     "`  ",
	}
	Unicode = Art{
		MarginOpen:   "   ",
		MarginClosed: "│  ",
		DirEntry:     "├─ ",
		DirLast:      "└─ ",
		FileEntry:    "│  ",
		FileLast:     "└  ",
	}
)

// ArtByName maps a configuration value to an Art. Unknown names fall back to
// Unicode.
func ArtByName(name string) Art {
	if strings.EqualFold(name, "ascii") {
		return ASCII
	}
	return Unicode
}

// RenderOptions controls Render.
type RenderOptions struct {
	Art Art
	// Root selects a subdirectory to draw. Nil draws the whole tree.
	Root Path
}

type renderFrame struct {
	entries []NodeID
	next    int
	wasDir  bool
}

// Render draws t as an indented listing, directories before files, each
// group sorted by name. A blank connector line separates a directory's
// subtree from its neighbours.
func Render(w io.Writer, t *Tree, opts RenderOptions) error {
	art := opts.Art
	if art == (Art{}) {
		art = Unicode
	}
	start, label := Root, "."
	if len(opts.Root) > 0 {
		n, ok := t.Lookup(opts.Root)
		if !ok {
			return fmt.Errorf("%w: %s", kerrors.ErrNotFound, opts.Root)
		}
		if !n.IsDir() {
			return fmt.Errorf("%w: %s", kerrors.ErrNotDirectory, opts.Root)
		}
		start, label = n.ID, opts.Root.String()
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(label)
	bw.WriteString("/\n")

	// last[i] records whether the ancestor at depth i was the final entry of
	// its directory.
	var last []bool
	margin := func(depth int) {
		for i := 0; i < depth; i++ {
			if i < len(last) && last[i] {
				bw.WriteString(art.MarginOpen)
			} else {
				bw.WriteString(art.MarginClosed)
			}
		}
	}

	stack := []renderFrame{{entries: t.order(start)}}
	for len(stack) > 0 {
		depth := len(stack) - 1
		f := &stack[depth]
		if f.next == len(f.entries) {
			stack = stack[:depth]
			if depth > 0 {
				last = last[:depth-1]
			}
			continue
		}

		i := f.next
		id := f.entries[i]
		f.next++
		n := &t.nodes[id]
		isDir := n.kind == KindDir
		isLast := f.next == len(f.entries)

		if i != 0 && (isDir || f.wasDir) {
			margin(depth + 1)
			bw.WriteString("\n")
		}
		f.wasDir = isDir

		margin(depth)
		switch {
		case isDir && isLast:
			bw.WriteString(art.DirLast)
		case isDir:
			bw.WriteString(art.DirEntry)
		case isLast:
			bw.WriteString(art.FileLast)
		default:
			bw.WriteString(art.FileEntry)
		}
		bw.WriteString(n.name)
		if !isDir {
			bw.WriteString("\n")
			continue
		}
		bw.WriteString("/\n")
		last = append(last, isLast)
		stack = append(stack, renderFrame{entries: t.order(id)})
	}
	return bw.Flush()
}
