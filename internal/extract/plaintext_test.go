package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

func TestPlaintextExtractorReadsUTF8File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "line one\nline two with an email a@b.co\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	logger := logging.NewLogManager(logging.ERROR, 4).Logger("test")
	var got []string
	NewPlaintextExtractor().ReadFile(path, logger, func(chunk string) bool {
		got = append(got, chunk)
		return true
	})

	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "line one") || !strings.Contains(joined, "a@b.co") {
		t.Fatalf("yielded chunks = %v, want content to contain both lines", got)
	}
}

func TestPlaintextExtractorYieldsManyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.txt")
	var sb strings.Builder
	for i := 0; i < 1000; i++ {
		sb.WriteString("a filler line of text\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	logger := logging.NewLogManager(logging.ERROR, 4).Logger("test")
	var total int
	NewPlaintextExtractor().ReadFile(path, logger, func(chunk string) bool {
		total += strings.Count(chunk, "filler")
		return true
	})
	if total != 1000 {
		t.Fatalf("counted %d filler lines across yielded chunks, want 1000", total)
	}
}

func TestPlaintextExtractorHandles(t *testing.T) {
	h := NewPlaintextExtractor().Handles()
	found := false
	for _, e := range h.Exts {
		if e == ".txt" {
			found = true
		}
	}
	if !found {
		t.Errorf("Handles().Exts = %v, want to contain .txt", h.Exts)
	}
}
