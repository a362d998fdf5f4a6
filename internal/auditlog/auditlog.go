// Package auditlog appends one record per merge invocation to a CSV file.
// The log is a write-only sink: a failed append is reported to the caller
// but must never fail the merge it describes.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var header = []string{
	"datetime", "batch_id", "schema", "table",
	"rows_from_csv", "rows_merged", "duplicates_skipped", "files_uploaded",
}

// Entry is one merge invocation.
type Entry struct {
	Time       time.Time
	BatchID    uuid.UUID
	Schema     string
	Table      string
	CSVRows    int
	Inserted   int
	Duplicates int
	Files      []string
}

// Logger appends entries to a CSV file, creating it (and its directory) on
// first use. Safe for concurrent use.
type Logger struct {
	path string
	mu   sync.Mutex
}

// New creates a Logger writing to path.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Append writes one entry, emitting the header first if the file is new.
func (l *Logger) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create audit log directory: %w", err)
		}
	}

	info, err := os.Stat(l.path)
	writeHeader := err != nil || info.Size() == 0

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write audit log header: %w", err)
		}
	}

	record := []string{
		e.Time.Format("2006-01-02 15:04:05"),
		e.BatchID.String(),
		e.Schema,
		e.Table,
		strconv.Itoa(e.CSVRows),
		strconv.Itoa(e.Inserted),
		strconv.Itoa(e.Duplicates),
		strings.Join(e.Files, ", "),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("write audit log entry: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush audit log: %w", err)
	}
	return nil
}
