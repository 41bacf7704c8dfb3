package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PolarWolf314/paks/internal/audit"
	kerrors "github.com/PolarWolf314/paks/internal/errors"
)

const dateLayout = "2006-01-02"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Archive keeps only entries for this archive file. Empty keeps all.
	Archive string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest.
	Reverse bool

	// User keeps only entries recorded by this system user.
	User string

	// Operations is a comma-separated list of operations to keep.
	Operations string

	// Since and Until bound the entry dates, inclusive, as YYYY-MM-DD.
	Since string
	Until string
}

// LogResult contains the filtered audit log.
type LogResult struct {
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if Since or Until cannot be parsed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse(dateLayout, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse(dateLayout, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result := &LogResult{Total: len(entries)}

	archive := opts.Archive
	if archive != "" {
		if abs, err := filepath.Abs(archive); err == nil {
			archive = abs
		}
	}
	ops := map[string]bool{}
	for _, op := range strings.Split(opts.Operations, ",") {
		if op = strings.TrimSpace(op); op != "" {
			ops[strings.ToLower(op)] = true
		}
	}

	filtered := audit.Filter(entries, func(e audit.Entry) bool {
		if archive != "" && e.Archive != archive {
			return false
		}
		if opts.User != "" && !strings.EqualFold(e.User, opts.User) {
			return false
		}
		if len(ops) > 0 && !ops[strings.ToLower(e.Operation)] {
			return false
		}
		if since.IsZero() && until.IsZero() {
			return true
		}
		t, ok := entryTime(e)
		if !ok {
			return false
		}
		return (since.IsZero() || !t.Before(since)) && (until.IsZero() || !t.After(until))
	})

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit keeps the most recent entries in either order.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// FormatDateTime renders an entry timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, ok := entryTime(audit.Entry{Timestamp: ts})
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "add", "rm":
		return summarizePaths(e.Paths)
	case "copy":
		return fmt.Sprintf("%d files", e.FilesCount)
	case "link":
		return summarizePaths(e.Paths) + " -> " + e.Target
	case "mv":
		return summarizePaths(e.Paths) + " => " + e.Target
	case "gc":
		return fmt.Sprintf("reclaimed %d bytes", e.Reclaimed)
	case "rekey":
		return fmt.Sprintf("%d files", e.FilesCount)
	default:
		return ""
	}
}

func summarizePaths(paths []string) string {
	if len(paths) > 3 {
		return fmt.Sprintf("%d paths", len(paths))
	}
	return strings.Join(paths, ", ")
}

func entryTime(e audit.Entry) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err == nil
}
