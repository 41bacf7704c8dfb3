package layout

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/PolarWolf314/paks/internal/directory"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

// Region is the data region of an archive, held as ciphertext.
type Region struct {
	buf []byte
}

// NewRegion wraps existing data region bytes. The region takes ownership of b.
func NewRegion(b []byte) (*Region, error) {
	if len(b)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: data region is not block aligned", kerrors.ErrCorruptDirectory)
	}
	return &Region{buf: b}, nil
}

// Len returns the region size in bytes, always a multiple of BlockSize.
func (r *Region) Len() uint64 {
	return uint64(len(r.buf))
}

// Bytes returns the region contents.
func (r *Region) Bytes() []byte {
	return r.buf
}

// Append reserves space for n bytes at the high-water mark. It returns the
// offset of the new range and the zeroed range itself, padded to a whole
// number of blocks.
func (r *Region) Append(n uint64) (uint64, []byte) {
	offset := r.Len()
	r.buf = append(r.buf, make([]byte, directory.RoundUp(n))...)
	return offset, r.buf[offset:]
}

// Slice returns the stored range of ref, padding included.
func (r *Region) Slice(ref directory.FileRef) ([]byte, error) {
	end, ok := ref.End()
	if !ok || ref.Offset%BlockSize != 0 || end > r.Len() {
		return nil, fmt.Errorf("%w: [%d, +%d) in %d bytes", kerrors.ErrOutOfRange, ref.Offset, ref.Stored(), r.Len())
	}
	return r.buf[ref.Offset:end], nil
}

type span struct {
	oldStart, oldEnd uint64
	newStart         uint64
}

// Remap translates data region offsets from before a compaction to after it.
type Remap struct {
	spans []span
	size  uint64
}

// Offset returns the new offset for old. Offsets inside a kept range move
// with it; anything else, such as the offset of an empty file, moves to the
// start of the next kept range.
func (m *Remap) Offset(old uint64) uint64 {
	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].oldEnd > old })
	if i == len(m.spans) {
		return m.size
	}
	s := m.spans[i]
	if old < s.oldStart {
		return s.newStart
	}
	return s.newStart + old - s.oldStart
}

// merge returns the sorted union of the stored ranges of refs, with
// overlapping, adjacent and identical ranges combined.
func merge(r *Region, refs []directory.FileRef) ([]span, error) {
	var ranges []span
	for _, ref := range refs {
		if _, err := r.Slice(ref); err != nil {
			return nil, err
		}
		if ref.Stored() == 0 {
			continue
		}
		ranges = append(ranges, span{oldStart: ref.Offset, oldEnd: ref.Offset + ref.Stored()})
	}
	slices.SortFunc(ranges, func(a, b span) int { return cmp.Compare(a.oldStart, b.oldStart) })

	var merged []span
	for _, s := range ranges {
		if k := len(merged); k > 0 && s.oldStart <= merged[k-1].oldEnd {
			merged[k-1].oldEnd = max(merged[k-1].oldEnd, s.oldEnd)
			continue
		}
		merged = append(merged, s)
	}
	return merged, nil
}

// Live returns how many bytes of r the refs keep alive.
func Live(r *Region, refs []directory.FileRef) (uint64, error) {
	merged, err := merge(r, refs)
	if err != nil {
		return 0, err
	}
	var n uint64
	for _, s := range merged {
		n += s.oldEnd - s.oldStart
	}
	return n, nil
}

// Compact copies the union of the stored ranges of refs into a new region,
// keeping their relative order. Aliased files keep sharing bytes.
func Compact(r *Region, refs []directory.FileRef) (*Region, *Remap, error) {
	merged, err := merge(r, refs)
	if err != nil {
		return nil, nil, err
	}

	var buf []byte
	for i := range merged {
		merged[i].newStart = uint64(len(buf))
		buf = append(buf, r.buf[merged[i].oldStart:merged[i].oldEnd]...)
	}
	return &Region{buf: buf}, &Remap{spans: merged, size: uint64(len(buf))}, nil
}
