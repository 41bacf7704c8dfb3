// Package directory holds the in-memory directory tree of an archive and its
// flat binary encoding.
//
// # Tree
//
// A Tree is an arena of nodes addressed by NodeID. Node 0 is the unnamed root
// directory. Parent and child relations are stored as indices, so rewriting
// every file reference (as compaction does) is a single pass over the arena.
// Names are opaque byte strings compared exactly; '/' separates path
// components and cannot be escaped.
//
// # Encoding
//
// Encode flattens a tree into a sequence of descriptors in pre-order. Each
// directory descriptor carries the number of descriptors, recursively, that
// belong to it. Within a directory, subdirectories come first in ascending
// byte order (each followed by its own subtree), then files in ascending byte
// order. The root is always the first descriptor.
//
// Descriptor wire format (little endian):
//
//	tag      u8      1 = directory, 2 = file
//	nameLen  u16
//	name     [nameLen]byte
//	directory: count u32
//	file:      offset u64, length u64, nonce [16]byte
//
// Decode reverses this in a single forward pass using an explicit stack of
// remaining-descriptor counters, so hostile nesting depth cannot exhaust the
// goroutine stack and no backtracking ever happens.
package directory
