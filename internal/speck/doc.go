// Package speck implements the Speck128/128 block cipher and the keystream
// construction used for archive file payloads.
//
// Speck128/128 is an ARX cipher (modular addition, rotation, XOR) with a
// 128-bit block, a 128-bit key and 32 rounds. See the implementation guide at
// https://nsacyber.github.io/simon-speck/implementations/ImplementationGuide1.1.pdf
//
// # Block Cipher
//
// Cipher implements crypto/cipher.Block. Header and directory blocks of an
// archive are encrypted with it directly.
//
// # Keystream
//
// File payloads are encrypted with XORKeyStream: keystream block i is the
// encryption of the nonce, read as a big-endian 128-bit counter, plus i. The
// keystream depends only on the key, the nonce and the block index within the
// file, never on where the ciphertext is stored, so ciphertext can be moved
// without re-encryption. The construction is symmetric: the same call
// encrypts and decrypts.
//
// There is no authentication. A wrong key produces garbage, not an error.
package speck
