// Package audit provides an audit trail of mutating archive operations.
//
// Every command that changes an archive (new, add, copy, link, rm, mv, gc,
// rekey) records an entry in a per-user log. Reading commands are not
// recorded.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	$XDG_DATA_HOME/paks/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Username and user UUID
//   - Operation name and absolute archive path
//   - Operation-specific details (paths, link target, reclaimed bytes)
//
// File payloads and keys are never logged.
//
// # Usage
//
//	entry := audit.LogWithUser("add", archivePath)
//	entry.Paths = added
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Setting enabled = false in
// the [audit] section of the user config turns logging off.
package audit
