package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath returns the date-stamped report path under dir,
// e.g. dir/security-report-2026-08-26.md. The path is fixed for a
// given day; repeated runs overwrite, never merge.
func DefaultPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("security-report-%s.md", now.UTC().Format("2006-01-02")))
}

// Write replaces the report file atomically: the document is written
// to a temp file in the same directory and renamed over the target,
// so a concurrent reader (a CI step tailing the file) never observes
// a partial report. On failure the previous report, if any, is left
// untouched.
func Write(path, doc string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // clean up orphaned temp file
		return fmt.Errorf("replacing report: %w", err)
	}
	return nil
}
