// Package configs manages the paks user configuration.
//
// Configuration is stored in TOML format at:
//
//	$XDG_CONFIG_HOME/paks/config.toml
//
// The file holds:
//   - [user]: a UUID identifying this user in the audit trail
//   - [display]: the tree drawing style ("unicode" or "ascii")
//   - [keys]: the environment variable consulted for a hex key, and the
//     Argon2id salt and cost parameters used for passphrase keys
//   - [audit]: whether mutating commands append to the audit trail
//
// Keys absent from the file keep their defaults, so a partial file is valid.
// EnsureUserConfig generates the UUID and salt on first use and writes them
// back.
//
// # Settings
//
// UserPaksSettings is initialized at startup with the config and data
// directories. The audit trail lives in the data directory.
package configs
