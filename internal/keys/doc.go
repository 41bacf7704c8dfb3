// Package keys turns user input into 128-bit archive keys.
//
// A key can be given directly as a hexadecimal integer of up to 32 digits
// (the integer's little-endian bytes form the key), read from an environment
// variable in the same format, or derived from a passphrase with Argon2id
// and the salt stored in the user config.
package keys
