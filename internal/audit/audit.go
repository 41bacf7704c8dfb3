package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/paks/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	User      string `json:"user"`    // System username of the caller.
	UserUUID  string `json:"uuid"`    // UUID from the user config.
	Operation string `json:"op"`      // Operation name.
	Archive   string `json:"archive"` // Absolute path of the archive.

	// Optional fields depending on operation.
	Paths      []string `json:"paths,omitempty"`       // Archive paths touched.
	Target     string   `json:"target,omitempty"`      // For link/mv.
	FilesCount int      `json:"files_count,omitempty"` // For add/copy/rekey.
	Reclaimed  uint64   `json:"reclaimed,omitempty"`   // For gc.
}

// Enabled reports whether the user config allows audit logging.
func Enabled() bool {
	if cfg := configs.GlobalUserConfig; cfg != nil {
		return cfg.Audit.Enabled
	}
	return true
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if !Enabled() {
		return
	}

	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the user fields and archive populated.
func LogWithUser(op, archive string) Entry {
	entry := Entry{
		Operation: op,
		User:      configs.UserPaksSettings.Username,
		Archive:   archive,
	}
	if abs, err := filepath.Abs(archive); err == nil {
		entry.Archive = abs
	}

	userConfig := configs.GlobalUserConfig
	if userConfig == nil {
		var err error
		if userConfig, err = configs.LoadUserConfig(); err != nil {
			return entry
		}
	}
	entry.UserUUID = userConfig.User.UUID

	return entry
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return filepath.Join(configs.UserPaksSettings.UserDataPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Filter returns the entries for which keep reports true.
func Filter(entries []Entry, keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
