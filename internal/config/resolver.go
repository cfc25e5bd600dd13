package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/detect"
	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

// Overrides carries the CLI flags that take precedence over the TOML
// file (spec.md §6 CLI surface).
type Overrides struct {
	MaxProcs          int // -p/--max-process, 0 = not set
	MaxFilesScanProcs int // not exposed on the CLI surface; 0 = default
}

// Resolve converts a decoded raw document into an immutable Config:
// substitutes "all" sentinels, picks the per-OS start/exclude dirs,
// drops unknown data handler names with a warning, and derives output
// file paths under results.path (spec.md §6 "Result file layout").
func Resolve(r raw, overrides Overrides, extractors *extract.Registry, now time.Time, hostname string) (*Config, error) {
	cfg := &Config{
		LocalFilesOnly: r.LocalFilesOnly,
		LogFile:        r.Logging.LogFile,
		LogLevel:       logging.ParseLevel(r.Logging.LogLevel),
	}

	cfg.DataHandlers = resolveDataHandlers(r.DataHandlers)

	resolvedStartDirs, err := resolveStartDirs(perOS(r.IncludeFiles.StartDirs))
	if err != nil {
		return nil, err
	}
	cfg.StartDirs = resolvedStartDirs

	cfg.ExcludeDirs = perOS(r.ExcludeDirs)

	cfg.FileExts = resolveExts(r.IncludeFiles.Ext, extractors)
	cfg.MimeTypes = resolveMimes(r.IncludeFiles.Mime, extractors)

	cfg.Outputs = resolveOutputs(r.Results, now, hostname)

	cfg.MaxProcs = runtime.NumCPU()
	if overrides.MaxProcs > 0 && overrides.MaxProcs < cfg.MaxProcs {
		cfg.MaxProcs = overrides.MaxProcs
	}
	cfg.MaxFilesScanProcs = 1
	if overrides.MaxFilesScanProcs > 0 {
		cfg.MaxFilesScanProcs = overrides.MaxFilesScanProcs
	}

	return cfg, nil
}

// perOS picks the slice matching runtime.GOOS (windows/linux/darwin).
func perOS(dirs perOSDirs) []string {
	switch hostOS {
	case "windows":
		return dirs.Windows
	case "darwin":
		return dirs.Darwin
	default:
		return dirs.Linux
	}
}

// resolveDataHandlers drops unknown detector names with a warning and
// keeps the configured order, per spec.md §6 ("Unknown dataHandlers
// names warn and are dropped"). A single "all" entry selects every known
// detector.
func resolveDataHandlers(names []string) []string {
	if len(names) == 1 && strings.EqualFold(names[0], "all") {
		return detect.Names()
	}
	known := make(map[string]struct{})
	for _, n := range detect.Names() {
		known[n] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := known[n]; !ok {
			fmt.Fprintf(os.Stderr, "config: unknown dataHandlers entry %q dropped\n", n)
			continue
		}
		out = append(out, n)
	}
	return out
}

// resolveStartDirs expands a Windows "all" sentinel to existing drive
// roots; any other value list is used as given. A non-"all" entry that
// does not exist is a fatal configuration error (spec.md §7).
func resolveStartDirs(dirs []string) ([]string, error) {
	if len(dirs) == 1 && strings.EqualFold(dirs[0], "all") {
		return existingDriveRoots(), nil
	}
	for _, d := range dirs {
		if _, err := os.Stat(d); err != nil {
			return nil, fmt.Errorf("start dir %q: %w", d, err)
		}
	}
	return dirs, nil
}

// existingDriveRoots probes A:\ through Z:\ and returns the ones that
// exist. On non-Windows hosts none of these paths exist, so this
// naturally yields an empty (but never nil) slice without a build tag.
func existingDriveRoots() []string {
	roots := []string{}
	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + `:\`
		if _, err := os.Stat(root); err == nil {
			roots = append(roots, root)
		}
	}
	return roots
}

// resolveExts substitutes an "all" sentinel with every extension the
// extractor registry supports, and lower-cases/normalizes the rest.
func resolveExts(exts []string, extractors *extract.Registry) map[string]struct{} {
	if len(exts) == 1 && strings.EqualFold(exts[0], "all") {
		exts = extractors.SupportedExts()
	}
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		out[strings.ToLower(e)] = struct{}{}
	}
	return out
}

// resolveMimes substitutes an "all" sentinel with every MIME type the
// extractor registry supports. An empty (non-"all") list disables MIME
// checking entirely, per spec.md §3 ("may be empty -> MIME check
// disabled").
func resolveMimes(mimes []string, extractors *extract.Registry) map[string]struct{} {
	if len(mimes) == 1 && strings.EqualFold(mimes[0], "all") {
		mimes = extractors.SupportedMimes()
	}
	out := make(map[string]struct{}, len(mimes))
	for _, m := range mimes {
		out[m] = struct{}{}
	}
	return out
}

// resolveOutputs derives the per-format output file path under
// results.path, per spec.md §6 ("Result file layout":
// <hostname>-YYYYMMDD-HHMMSS.{json|txt|csv}"). There is no intermediate
// "path" key ever stored alongside the format keys (spec.md §D.1).
func resolveOutputs(results resultsConfig, now time.Time, hostname string) map[string]string {
	stamp := fmt.Sprintf("%s-%s", hostname, now.Format("20060102-150405"))
	outputs := make(map[string]string)
	if results.JSON {
		outputs["json"] = filepath.Join(results.Path, stamp+".json")
	}
	if results.Text {
		outputs["text"] = filepath.Join(results.Path, stamp+".txt")
	}
	if results.CSV {
		outputs["csv"] = filepath.Join(results.Path, stamp+".csv")
	}
	return outputs
}
