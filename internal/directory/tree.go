package directory

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// BlockSize is the alignment unit of stored file ranges.
const BlockSize = 16

// NonceSize is the length of a per-file keystream nonce.
const NonceSize = 16

// Kind distinguishes directories from files. The values double as the
// descriptor tags on the wire.
type Kind uint8

const (
	KindDir  Kind = 1
	KindFile Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NodeID addresses a node in a Tree's arena. The root is always 0.
type NodeID int

// Root is the NodeID of the unnamed root directory.
const Root NodeID = 0

// FileRef locates a file's ciphertext. Offset is a byte offset into the data
// region and is always a multiple of BlockSize. Length is the plaintext length.
// Several paths may share one FileRef.
type FileRef struct {
	Offset uint64
	Length uint64
	Nonce  [NonceSize]byte
}

// Stored returns the number of bytes the ref occupies in the data region.
func (r FileRef) Stored() uint64 {
	return RoundUp(r.Length)
}

// End returns the first byte past the stored range. ok is false when the
// range overflows.
func (r FileRef) End() (end uint64, ok bool) {
	end = r.Offset + r.Stored()
	return end, end >= r.Offset && r.Stored() >= r.Length
}

// RoundUp rounds n up to a whole number of blocks.
func RoundUp(n uint64) uint64 {
	return (n + BlockSize - 1) &^ (BlockSize - 1)
}

// FileDescriptor is a named FileRef.
type FileDescriptor struct {
	Name string
	FileRef
}

// Node is a read-only view of one tree node.
type Node struct {
	ID   NodeID
	Name string
	Kind Kind
	Ref  FileRef
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool { return n.Kind == KindDir }

type node struct {
	name     string
	kind     Kind
	parent   NodeID
	children []NodeID // sorted by name, directories only
	ref      FileRef
	live     bool
}

// Tree is a directory hierarchy stored as an arena of nodes.
type Tree struct {
	nodes []node
	free  []NodeID
}

// New returns a tree holding only the root directory.
func New() *Tree {
	return &Tree{nodes: []node{{kind: KindDir, parent: -1, live: true}}}
}

// Len returns the number of live nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes) - len(t.free)
}

// Counts returns the number of directories (root excluded) and files.
func (t *Tree) Counts() (dirs, files int) {
	for i := 1; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		if !n.live {
			continue
		}
		if n.kind == KindDir {
			dirs++
		} else {
			files++
		}
	}
	return dirs, files
}

// Node returns a view of the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	n := &t.nodes[id]
	return Node{ID: id, Name: n.name, Kind: n.kind, Ref: n.ref}
}

// Children returns the ids of a directory's children, ordered by name.
func (t *Tree) Children(id NodeID) []NodeID {
	return slices.Clone(t.nodes[id].children)
}

// PathOf rebuilds the full path of a node from its parent chain.
func (t *Tree) PathOf(id NodeID) Path {
	var p Path
	for id != Root {
		p = append(p, t.nodes[id].name)
		id = t.nodes[id].parent
	}
	slices.Reverse(p)
	return p
}

func (t *Tree) child(dir NodeID, name string) (idx int, id NodeID, ok bool) {
	children := t.nodes[dir].children
	idx, ok = slices.BinarySearchFunc(children, name, func(c NodeID, name string) int {
		return strings.Compare(t.nodes[c].name, name)
	})
	if ok {
		id = children[idx]
	}
	return idx, id, ok
}

func (t *Tree) alloc(n node) NodeID {
	n.live = true
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// insert attaches a new node under dir. The caller guarantees the name is free.
func (t *Tree) insert(dir NodeID, n node) NodeID {
	idx, _, _ := t.child(dir, n.name)
	n.parent = dir
	id := t.alloc(n)
	t.nodes[dir].children = slices.Insert(t.nodes[dir].children, idx, id)
	return id
}

// detach unlinks id from its parent without freeing it.
func (t *Tree) detach(id NodeID) {
	parent := t.nodes[id].parent
	idx, _, ok := t.child(parent, t.nodes[id].name)
	if ok {
		t.nodes[parent].children = slices.Delete(t.nodes[parent].children, idx, idx+1)
	}
	t.nodes[id].parent = -1
}

// release frees a detached subtree and returns the refs of the files in it.
func (t *Tree) release(id NodeID) []FileRef {
	var refs []FileRef
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[cur]
		if n.kind == KindFile {
			refs = append(refs, n.ref)
		}
		stack = append(stack, n.children...)
		*n = node{}
		t.free = append(t.free, cur)
	}
	return refs
}

// Lookup resolves a path to its node.
func (t *Tree) Lookup(p Path) (Node, bool) {
	id, ok := t.resolve(p)
	if !ok {
		return Node{}, false
	}
	return t.Node(id), true
}

func (t *Tree) resolve(p Path) (NodeID, bool) {
	cur := Root
	for _, name := range p {
		if t.nodes[cur].kind != KindDir {
			return 0, false
		}
		_, id, ok := t.child(cur, name)
		if !ok {
			return 0, false
		}
		cur = id
	}
	return cur, true
}

// File returns the descriptor of the file at p, or ErrNotFound when nothing
// or a directory lives there.
func (t *Tree) File(p Path) (FileDescriptor, error) {
	id, ok := t.resolve(p)
	if !ok || t.nodes[id].kind != KindFile {
		return FileDescriptor{}, fmt.Errorf("%w: %s", kerrors.ErrNotFound, p)
	}
	return FileDescriptor{Name: t.nodes[id].name, FileRef: t.nodes[id].ref}, nil
}

// CheckParents verifies that no proper prefix of p names a file, which is
// the only way storing a file at p can fail.
func (t *Tree) CheckParents(p Path) error {
	cur := Root
	for i, name := range p.Dir() {
		_, id, ok := t.child(cur, name)
		if !ok {
			return nil
		}
		if t.nodes[id].kind != KindDir {
			return fmt.Errorf("%w: %s", kerrors.ErrNotDirectory, p[:i+1])
		}
		cur = id
	}
	return nil
}

// mkdirs creates every missing directory along dir and returns the last one.
func (t *Tree) mkdirs(dir Path) NodeID {
	cur := Root
	for _, name := range dir {
		_, id, ok := t.child(cur, name)
		if !ok {
			id = t.insert(cur, node{name: name, kind: KindDir})
		}
		cur = id
	}
	return cur
}

// PutFile stores ref at p, creating missing parent directories and replacing
// whatever node already lives at p. It returns the refs of replaced files. An
// intermediate component that is a file fails with ErrNotDirectory and leaves
// the tree untouched.
func (t *Tree) PutFile(p Path, ref FileRef) ([]FileRef, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty path", kerrors.ErrInvalidPath)
	}
	if err := t.CheckParents(p); err != nil {
		return nil, err
	}
	dir := t.mkdirs(p.Dir())
	var replaced []FileRef
	if _, id, ok := t.child(dir, p.Base()); ok {
		if t.nodes[id].kind == KindFile {
			replaced = []FileRef{t.nodes[id].ref}
			t.nodes[id].ref = ref
			return replaced, nil
		}
		t.detach(id)
		replaced = t.release(id)
	}
	t.insert(dir, node{name: p.Base(), kind: KindFile, ref: ref})
	return replaced, nil
}

// Remove deletes the node at p together with its subtree and returns the refs
// of the files that were removed.
func (t *Tree) Remove(p Path) ([]FileRef, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: cannot remove the root", kerrors.ErrInvalidPath)
	}
	id, ok := t.resolve(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotFound, p)
	}
	t.detach(id)
	return t.release(id), nil
}

// Move renames the node at src to dst, carrying its subtree. Any node at dst
// is replaced. Moving a node onto itself is a no-op; moving it inside itself,
// or onto one of its own ancestors, fails with ErrInvalidPath.
func (t *Tree) Move(src, dst Path) ([]FileRef, error) {
	if len(src) == 0 || len(dst) == 0 {
		return nil, fmt.Errorf("%w: cannot move the root", kerrors.ErrInvalidPath)
	}
	id, ok := t.resolve(src)
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotFound, src)
	}
	if slices.Equal(src, dst) {
		return nil, nil
	}
	if dst.HasPrefix(src) || src.HasPrefix(dst) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", kerrors.ErrInvalidPath, src, dst)
	}
	if err := t.CheckParents(dst); err != nil {
		return nil, err
	}
	t.detach(id)
	dir := t.mkdirs(dst.Dir())
	var replaced []FileRef
	if _, old, ok := t.child(dir, dst.Base()); ok {
		t.detach(old)
		replaced = t.release(old)
	}
	idx, _, _ := t.child(dir, dst.Base())
	t.nodes[id].name = dst.Base()
	t.nodes[id].parent = dir
	t.nodes[dir].children = slices.Insert(t.nodes[dir].children, idx, id)
	return replaced, nil
}

// SetRef replaces the ref of a file node.
func (t *Tree) SetRef(id NodeID, ref FileRef) {
	t.nodes[id].ref = ref
}

// Refs returns the ref of every live file node, aliases included.
func (t *Tree) Refs() []FileRef {
	var refs []FileRef
	for i := range t.nodes {
		if n := &t.nodes[i]; n.live && n.kind == KindFile {
			refs = append(refs, n.ref)
		}
	}
	return refs
}

// RewriteRefs applies fn to the ref of every live file node in arena order.
func (t *Tree) RewriteRefs(fn func(FileRef) FileRef) {
	for i := range t.nodes {
		if n := &t.nodes[i]; n.live && n.kind == KindFile {
			n.ref = fn(n.ref)
		}
	}
}

// order returns the children of a directory in encode order: directories
// first, then files, each group ascending by name.
func (t *Tree) order(dir NodeID) []NodeID {
	children := t.nodes[dir].children
	out := make([]NodeID, 0, len(children))
	for _, c := range children {
		if t.nodes[c].kind == KindDir {
			out = append(out, c)
		}
	}
	for _, c := range children {
		if t.nodes[c].kind == KindFile {
			out = append(out, c)
		}
	}
	return out
}

// preorder lists the subtree rooted at id in encode order, id first.
func (t *Tree) preorder(id NodeID) []NodeID {
	var out []NodeID
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		if t.nodes[cur].kind != KindDir {
			continue
		}
		kids := t.order(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Files yields every live file with its full path, in encode order.
func (t *Tree) Files() iter.Seq2[Path, Node] {
	return func(yield func(Path, Node) bool) {
		for _, id := range t.preorder(Root) {
			if t.nodes[id].kind != KindFile {
				continue
			}
			if !yield(t.PathOf(id), t.Node(id)) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes: slices.Clone(t.nodes),
		free:  slices.Clone(t.free),
	}
	for i := range c.nodes {
		c.nodes[i].children = slices.Clone(c.nodes[i].children)
	}
	return c
}

// Equal reports whether two trees hold the same hierarchy and refs,
// regardless of arena layout.
func (t *Tree) Equal(other *Tree) bool {
	a, b := t.preorder(Root), other.preorder(Root)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := &t.nodes[a[i]], &other.nodes[b[i]]
		if x.name != y.name || x.kind != y.kind || x.ref != y.ref || len(x.children) != len(y.children) {
			return false
		}
	}
	return true
}
