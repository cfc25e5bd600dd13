package config

import (
	"github.com/kirkpatrickprice/piidigger-go/internal/detect"
	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
)

// defaultExcludeDirs mirrors the original's per-OS default exclude list
// (spec.md §C: "the full default exclude-dir list per OS").
var defaultExcludeDirsWindows = []string{
	`C:\Windows`, `C:\Program Files`, `C:\Program Files (x86)`,
}
var defaultExcludeDirsLinux = []string{"/proc", "/sys", "/dev", "/run"}
var defaultExcludeDirsDarwin = []string{"/System", "/Library", "/private"}

// defaultStartDirs mirrors the original's per-OS default start dirs.
// Windows uses "all" (expanded to existing drive roots at resolve time).
var defaultStartDirsWindows = []string{"all"}
var defaultStartDirsLinux = []string{"/home"}
var defaultStartDirsDarwin = []string{"/Users"}

// defaultRaw builds the built-in default configuration with every known
// extension, MIME type, and data handler spelled out explicitly (spec.md
// §C: "not just a bare skeleton"), mirroring piidigger.py's
// create_default_config.
func defaultRaw() raw {
	var r raw

	r.DataHandlers = detect.Names()
	r.LocalFilesOnly = true

	r.Results.Path = "."
	r.Results.JSON = true
	r.Results.Text = false
	r.Results.CSV = false

	extractors := extract.NewRegistry(nil)
	r.IncludeFiles.Ext = extractors.SupportedExts()
	r.IncludeFiles.Mime = extractors.SupportedMimes()

	r.IncludeFiles.StartDirs.Windows = defaultStartDirsWindows
	r.IncludeFiles.StartDirs.Linux = defaultStartDirsLinux
	r.IncludeFiles.StartDirs.Darwin = defaultStartDirsDarwin

	r.ExcludeDirs.Windows = defaultExcludeDirsWindows
	r.ExcludeDirs.Linux = defaultExcludeDirsLinux
	r.ExcludeDirs.Darwin = defaultExcludeDirsDarwin

	r.Logging.LogLevel = "INFO"
	r.Logging.LogFile = "piidigger.log"

	return r
}
