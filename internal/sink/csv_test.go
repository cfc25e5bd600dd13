package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
)

func TestCSVSinkFlattensRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	s, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink() error = %v", err)
	}

	f := model.NewFinding("report.docx")
	f.Merge("pan", map[string][]string{"visa": {"4893 01** **** 6137"}})
	if err := s.Write(f); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = rf.Close() }()

	rows, err := csv.NewReader(rf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := [][]string{
		{"filename", "datatype", "value"},
		{"report.docx", "pan", "visa: 4893 01** **** 6137"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if len(rows[i]) != len(want[i]) {
			t.Fatalf("row %d = %v, want %v", i, rows[i], want[i])
		}
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Fatalf("row %d = %v, want %v", i, rows[i], want[i])
			}
		}
	}
}

func TestCSVSinkNoMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	s, err := NewCSVSink(path)
	if err != nil {
		t.Fatalf("NewCSVSink() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(raw), "filename,datatype,value\n"; got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}
