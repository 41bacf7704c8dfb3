// Package archive creates, edits and reads encrypted archives.
//
// An Editor holds a directory tree and a data region of ciphertext. Every
// operation that touches ciphertext takes the key explicitly; neither Editor
// nor Reader ever stores it. Edits only append to the data region, so removed
// or replaced files leave garbage behind until GC compacts it.
//
// A Reader decodes a finished archive and decrypts file payloads on demand.
// Reads do not mutate the Reader, so one Reader may serve many goroutines.
//
// There is no authentication: a wrong key is only detected through an
// implausible header, and tampered ciphertext decrypts to garbage.
package archive
