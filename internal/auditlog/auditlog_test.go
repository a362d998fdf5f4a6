package auditlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "merge_log.csv")
	l := New(path)

	entry := Entry{
		Time:       time.Date(2026, 1, 23, 14, 2, 0, 0, time.UTC),
		BatchID:    uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Schema:     "qqq_2026",
		Table:      "ib_2w_call_1min",
		CSVRows:    500,
		Inserted:   480,
		Duplicates: 20,
		Files:      []string{"a.csv", "b.csv"},
	}

	if err := l.Append(entry); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(entry); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// Header once, then one record per append.
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][0] != "datetime" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[0] != "2026-01-23 14:02:00" {
		t.Errorf("datetime = %q", row[0])
	}
	if row[2] != "qqq_2026" || row[3] != "ib_2w_call_1min" {
		t.Errorf("schema/table = %q/%q", row[2], row[3])
	}
	if row[4] != "500" || row[5] != "480" || row[6] != "20" {
		t.Errorf("counts = %v", row[4:7])
	}
	if row[7] != "a.csv, b.csv" {
		t.Errorf("files = %q", row[7])
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "merge_log.csv")
	l := New(path)

	if err := l.Append(Entry{Time: time.Now(), BatchID: uuid.New()}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
