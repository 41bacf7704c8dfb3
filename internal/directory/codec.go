package directory

import (
	"encoding/binary"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

const (
	headLen    = 1 + 2
	dirBodyLen = 4
	fileBody   = 8 + 8 + NonceSize
)

// Encode flattens t into its descriptor sequence.
func Encode(t *Tree) []byte {
	order := t.preorder(Root)

	// Reverse pre-order visits every child before its parent.
	count := make([]uint32, len(t.nodes))
	for i := len(order) - 1; i > 0; i-- {
		id := order[i]
		count[t.nodes[id].parent] += 1 + count[id]
	}

	size := 0
	for _, id := range order {
		size += headLen + len(t.nodes[id].name)
		if t.nodes[id].kind == KindDir {
			size += dirBodyLen
		} else {
			size += fileBody
		}
	}

	buf := make([]byte, 0, size)
	for _, id := range order {
		n := &t.nodes[id]
		buf = append(buf, byte(n.kind))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(n.name)))
		buf = append(buf, n.name...)
		if n.kind == KindDir {
			buf = binary.LittleEndian.AppendUint32(buf, count[id])
			continue
		}
		buf = binary.LittleEndian.AppendUint64(buf, n.ref.Offset)
		buf = binary.LittleEndian.AppendUint64(buf, n.ref.Length)
		buf = append(buf, n.ref.Nonce[:]...)
	}
	return buf
}

type descriptor struct {
	kind  Kind
	name  string
	count uint32
	ref   FileRef
}

type decoder struct {
	b   []byte
	pos int
}

func (d *decoder) corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: at byte %d: %s", kerrors.ErrCorruptDirectory, d.pos, fmt.Sprintf(format, args...))
}

func (d *decoder) take(n int) ([]byte, bool) {
	if n > len(d.b)-d.pos {
		return nil, false
	}
	out := d.b[d.pos : d.pos+n]
	d.pos += n
	return out, true
}

func (d *decoder) next() (descriptor, error) {
	var desc descriptor
	head, ok := d.take(headLen)
	if !ok {
		return desc, d.corrupt("truncated descriptor")
	}
	desc.kind = Kind(head[0])
	if desc.kind != KindDir && desc.kind != KindFile {
		return desc, d.corrupt("unknown tag %d", head[0])
	}
	nameLen := int(binary.LittleEndian.Uint16(head[1:]))
	name, ok := d.take(nameLen)
	if !ok {
		return desc, d.corrupt("name length %d exceeds remaining input", nameLen)
	}
	desc.name = string(name)

	if desc.kind == KindDir {
		body, ok := d.take(dirBodyLen)
		if !ok {
			return desc, d.corrupt("truncated directory count")
		}
		desc.count = binary.LittleEndian.Uint32(body)
		return desc, nil
	}
	body, ok := d.take(fileBody)
	if !ok {
		return desc, d.corrupt("truncated file reference")
	}
	desc.ref.Offset = binary.LittleEndian.Uint64(body[0:])
	desc.ref.Length = binary.LittleEndian.Uint64(body[8:])
	copy(desc.ref.Nonce[:], body[16:])
	return desc, nil
}

// frame tracks how many descriptors still belong directly to a directory
// or to subtrees not yet opened.
type frame struct {
	dir       NodeID
	remaining uint32
}

// Decode rebuilds a tree from its descriptor sequence. Any structural
// inconsistency fails with ErrCorruptDirectory.
func Decode(b []byte) (*Tree, error) {
	d := &decoder{b: b}
	if len(b) == 0 {
		return nil, d.corrupt("empty directory")
	}
	root, err := d.next()
	if err != nil {
		return nil, err
	}
	if root.kind != KindDir || root.name != "" {
		return nil, d.corrupt("first descriptor is not the root directory")
	}

	t := New()
	stack := []frame{{dir: Root, remaining: root.count}}
	for {
		for len(stack) > 0 && stack[len(stack)-1].remaining == 0 {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			break
		}
		if d.pos == len(b) {
			return nil, d.corrupt("input ends with %d unresolved directories", len(stack))
		}

		desc, err := d.next()
		if err != nil {
			return nil, err
		}
		top := &stack[len(stack)-1]
		top.remaining--

		if desc.name == "" || strings.IndexByte(desc.name, Separator) >= 0 {
			return nil, d.corrupt("invalid name %q", desc.name)
		}
		if _, _, dup := t.child(top.dir, desc.name); dup {
			return nil, d.corrupt("duplicate name %q", desc.name)
		}

		if desc.kind == KindFile {
			t.insert(top.dir, node{name: desc.name, kind: KindFile, ref: desc.ref})
			continue
		}
		if desc.count > top.remaining {
			return nil, d.corrupt("directory %q claims %d descriptors, parent has %d left", desc.name, desc.count, top.remaining)
		}
		top.remaining -= desc.count
		id := t.insert(top.dir, node{name: desc.name, kind: KindDir})
		stack = append(stack, frame{dir: id, remaining: desc.count})
	}

	if d.pos != len(b) {
		return nil, d.corrupt("%d trailing bytes", len(b)-d.pos)
	}
	return t, nil
}
