// Package config loads and resolves the TOML configuration file
// described in spec.md §6, merges CLI overrides, and produces the
// immutable config.Config the rest of the pipeline consumes.
//
// Grounded on AbdelazizMoustafa10m-Harvx's internal/config package split
// (raw decoded struct -> resolve step -> immutable Config), using
// github.com/BurntSushi/toml the way Harvx's loader.go does
// (toml.DecodeFile + meta.Undecoded() for unknown-key warnings), and on
// the teacher (dupedog)'s single New(...)-builds-immutable-struct
// pattern for the resolved Config itself.
package config

import (
	"runtime"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

// DefaultConfFile is the config filename used when -f/--conf-file is
// not given.
const DefaultConfFile = "piidigger.toml"

// perOSDirs is the windows/linux/darwin triple used for both startDirs
// and excludeDirs in the TOML schema (spec.md §6).
type perOSDirs struct {
	Windows []string `toml:"windows"`
	Linux   []string `toml:"linux"`
	Darwin  []string `toml:"darwin"`
}

type resultsConfig struct {
	Path string `toml:"path"`
	JSON bool   `toml:"json"`
	Text bool   `toml:"text"`
	CSV  bool   `toml:"csv"`
}

type includeFilesConfig struct {
	Ext       []string  `toml:"ext"`
	Mime      []string  `toml:"mime"`
	StartDirs perOSDirs `toml:"startDirs"`
}

type loggingConfig struct {
	LogLevel string `toml:"logLevel"`
	LogFile  string `toml:"logFile"`
}

// raw mirrors the TOML document shape of spec.md §6 exactly, before
// "all" substitution, per-OS resolution, or validation.
type raw struct {
	DataHandlers   []string           `toml:"dataHandlers"`
	LocalFilesOnly bool               `toml:"localFilesOnly"`
	Results        resultsConfig      `toml:"results"`
	IncludeFiles   includeFilesConfig `toml:"includeFiles"`
	ExcludeDirs    perOSDirs          `toml:"excludeDirs"`
	Logging        loggingConfig      `toml:"logging"`
}

// Config is the immutable, fully resolved configuration consumed by the
// pipeline, per spec.md §3.
type Config struct {
	DataHandlers []string

	StartDirs   []string
	ExcludeDirs []string

	FileExts  map[string]struct{}
	MimeTypes map[string]struct{}

	LocalFilesOnly bool

	Outputs map[string]string // format name -> output path

	LogFile  string
	LogLevel logging.Level

	MaxFilesScanProcs int // N1
	MaxProcs          int // N2
}

// hostOS is overridable in tests; defaults to the build's GOOS.
var hostOS = runtime.GOOS
