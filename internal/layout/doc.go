// Package layout arranges an archive into blocks.
//
// An archive is a whole number of 16 byte blocks:
//
//	block 0                 header
//	blocks [1, DirOffset)   data region
//	blocks [DirOffset, end) directory
//
// The header and directory are sealed with the raw block cipher; the
// directory blocks additionally mix their absolute block index into the
// first word before encryption so equal plaintext blocks do not repeat in
// the ciphertext. File payloads in the data region are sealed by the caller
// with the per-file keystream.
//
// Region is the data region's bump allocator. Space is only ever appended;
// Compact rebuilds a region holding just the referenced ranges.
package layout
