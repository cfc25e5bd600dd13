package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
)

func TestJSONSinkWritesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	s := NewJSONSink(path)

	f := model.NewFinding("report.docx")
	f.Merge("pan", map[string][]string{"visa": {"4893 01** **** 6137"}})
	if err := s.Write(f); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(path); err == nil {
		t.Fatal("expected no file before Close()")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var got map[string]map[string]map[string][]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON written: %v", err)
	}

	want := map[string]map[string]map[string][]string{
		"report.docx": {"pan": {"visa": {"4893 01** **** 6137"}}},
	}
	if got["report.docx"]["pan"]["visa"][0] != want["report.docx"]["pan"]["visa"][0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
