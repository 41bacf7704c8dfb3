package directory

import "fmt"

// Problem describes one inconsistency found by Check.
type Problem struct {
	Path    Path
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Check verifies that every file ref is block aligned and lies inside a data
// region of dataSize bytes.
func Check(t *Tree, dataSize uint64) []Problem {
	var problems []Problem
	for p, n := range t.Files() {
		ref := n.Ref
		if ref.Offset%BlockSize != 0 {
			problems = append(problems, Problem{Path: p, Message: fmt.Sprintf("offset %d is not block aligned", ref.Offset)})
		}
		end, ok := ref.End()
		if !ok || end > dataSize {
			problems = append(problems, Problem{
				Path:    p,
				Message: fmt.Sprintf("range [%d, +%d) leaves the %d byte data region", ref.Offset, ref.Stored(), dataSize),
			})
		}
	}
	return problems
}
