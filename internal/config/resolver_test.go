package config

import (
	"testing"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
)

func TestResolveDataHandlersDropsUnknown(t *testing.T) {
	got := resolveDataHandlers([]string{"pan", "bogus", "email"})
	want := []string{"pan", "email"}
	if len(got) != len(want) {
		t.Fatalf("resolveDataHandlers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("resolveDataHandlers() = %v, want %v", got, want)
		}
	}
}

func TestPerOSUsesHostOS(t *testing.T) {
	dirs := perOSDirs{
		Windows: []string{`C:\Windows`},
		Linux:   []string{"/proc"},
		Darwin:  []string{"/System"},
	}

	orig := hostOS
	defer func() { hostOS = orig }()

	hostOS = "linux"
	if got := perOS(dirs); len(got) != 1 || got[0] != "/proc" {
		t.Errorf("perOS() on linux = %v, want [/proc]", got)
	}

	hostOS = "darwin"
	if got := perOS(dirs); len(got) != 1 || got[0] != "/System" {
		t.Errorf("perOS() on darwin = %v, want [/System]", got)
	}

	hostOS = "windows"
	if got := perOS(dirs); len(got) != 1 || got[0] != `C:\Windows` {
		t.Errorf("perOS() on windows = %v, want [C:\\Windows]", got)
	}
}

func TestResolveExtsSubstitutesAll(t *testing.T) {
	extractors := extract.NewRegistry(nil)
	got := resolveExts([]string{"all"}, extractors)
	want := extractors.SupportedExts()
	if len(got) != len(want) {
		t.Fatalf("resolveExts([\"all\"]) has %d entries, want %d", len(got), len(want))
	}
	for _, e := range want {
		if _, ok := got[e]; !ok {
			t.Errorf("resolveExts([\"all\"]) missing %q", e)
		}
	}
}

func TestResolveExtsExplicitList(t *testing.T) {
	extractors := extract.NewRegistry(nil)
	got := resolveExts([]string{".DOCX", ".pdf"}, extractors)
	if _, ok := got[".docx"]; !ok {
		t.Errorf("resolveExts() did not lower-case .DOCX: %v", got)
	}
	if _, ok := got[".pdf"]; !ok {
		t.Errorf("resolveExts() missing .pdf: %v", got)
	}
	if len(got) != 2 {
		t.Errorf("resolveExts() = %v, want 2 entries", got)
	}
}

func TestResolveMimesEmptyDisablesCheck(t *testing.T) {
	extractors := extract.NewRegistry(nil)
	got := resolveMimes(nil, extractors)
	if len(got) != 0 {
		t.Errorf("resolveMimes(nil) = %v, want empty map", got)
	}
}

func TestResolveOutputsOnlyEnabledFormats(t *testing.T) {
	results := resultsConfig{Path: "/tmp/out", JSON: true, Text: false, CSV: true}
	now := time.Date(2026, 7, 31, 9, 5, 3, 0, time.UTC)

	got := resolveOutputs(results, now, "workstation1")

	if _, ok := got["text"]; ok {
		t.Errorf("resolveOutputs() included disabled text format: %v", got)
	}
	wantJSON := "/tmp/out/workstation1-20260731-090503.json"
	if got["json"] != wantJSON {
		t.Errorf("resolveOutputs()[json] = %q, want %q", got["json"], wantJSON)
	}
	wantCSV := "/tmp/out/workstation1-20260731-090503.csv"
	if got["csv"] != wantCSV {
		t.Errorf("resolveOutputs()[csv] = %q, want %q", got["csv"], wantCSV)
	}
}

func TestResolveFullDocument(t *testing.T) {
	orig := hostOS
	defer func() { hostOS = orig }()
	hostOS = "linux"

	r := defaultRaw()
	r.IncludeFiles.StartDirs.Linux = []string{t.TempDir()}

	extractors := extract.NewRegistry(nil)
	cfg, err := Resolve(r, Overrides{MaxProcs: 1}, extractors, time.Now(), "host")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.MaxProcs != 1 {
		t.Errorf("MaxProcs = %d, want 1", cfg.MaxProcs)
	}
	if cfg.MaxFilesScanProcs != 1 {
		t.Errorf("MaxFilesScanProcs = %d, want 1", cfg.MaxFilesScanProcs)
	}
	if len(cfg.DataHandlers) == 0 {
		t.Error("DataHandlers is empty")
	}
	if len(cfg.Outputs) != 1 || cfg.Outputs["json"] == "" {
		t.Errorf("Outputs = %v, want only json set", cfg.Outputs)
	}
}

func TestResolveRejectsMissingStartDir(t *testing.T) {
	orig := hostOS
	defer func() { hostOS = orig }()
	hostOS = "linux"

	r := defaultRaw()
	r.IncludeFiles.StartDirs.Linux = []string{"/no/such/path/should/exist"}

	extractors := extract.NewRegistry(nil)
	if _, err := Resolve(r, Overrides{}, extractors, time.Now(), "host"); err == nil {
		t.Fatal("Resolve() with a nonexistent start dir returned nil error")
	}
}
