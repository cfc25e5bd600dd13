package extract

import (
	"testing"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

func TestRegistryResolveByExtThenMime(t *testing.T) {
	r := NewRegistry(nil)

	if got, want := r.Resolve(".docx", ""), "docx"; got != want {
		t.Errorf("Resolve(.docx) = %q, want %q", got, want)
	}
	if got, want := r.Resolve("", "application/pdf"), "pdf"; got != want {
		t.Errorf("Resolve(mime=application/pdf) = %q, want %q", got, want)
	}
	if got := r.Resolve(".unknown", "application/x-unknown"); got != "" {
		t.Errorf("Resolve(unknown) = %q, want empty", got)
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(nil)
	ex, ok := r.Get("pdf")
	if !ok || ex == nil {
		t.Fatal("Get(\"pdf\") did not return a registered extractor")
	}
	if _, ok := r.Get("nonexistent"); ok {
		t.Fatal("Get(\"nonexistent\") reported ok=true")
	}
}

func TestRegistryFirstRegisteredWinsOnDuplicateExt(t *testing.T) {
	logger := logging.NewLogManager(logging.DEBUG, 8).Logger("test")
	r := &Registry{byName: make(map[string]Extractor), byExt: make(map[string]string), byMime: make(map[string]string)}
	r.register("first", NewPlaintextExtractor(), logger)
	r.register("second", &fakeExtractor{handles: Handles{Exts: []string{".txt"}}}, logger)

	if got := r.Resolve(".txt", ""); got != "first" {
		t.Errorf("Resolve(.txt) = %q, want %q (first registration wins)", got, "first")
	}
}

func TestRegistrySupportedExtsAndMimesNonEmpty(t *testing.T) {
	r := NewRegistry(nil)
	if len(r.SupportedExts()) == 0 {
		t.Error("SupportedExts() is empty")
	}
	if len(r.SupportedMimes()) == 0 {
		t.Error("SupportedMimes() is empty")
	}
}

type fakeExtractor struct {
	handles Handles
}

func (f *fakeExtractor) Handles() Handles { return f.handles }
func (f *fakeExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
}
