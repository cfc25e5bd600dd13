package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads and decodes the TOML file at path. A missing file is
// reported as-is (unwrapped) so callers can check os.IsNotExist and
// fall back to the built-in default (spec.md §7: "file missing -> warn
// and use default"); a TOML parse error is always fatal (invalidConfig).
func Load(path string) (raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return raw{}, err
	}
	defer func() { _ = f.Close() }()

	var r raw
	meta, err := toml.DecodeReader(f, &r)
	if err != nil {
		return raw{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)
	return r, nil
}

// warnUndecodedKeys reports unrecognized top-level/nested TOML keys.
// Printed directly to stderr since this runs before the LogManager
// exists (config is the first thing loaded at startup).
func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	fmt.Fprintf(os.Stderr, "config %s: unknown keys ignored: %s\n", source, strings.Join(keys, ", "))
}

// WriteDefault writes the built-in default configuration to path as TOML,
// for -c/--create-conf (spec.md §6).
func WriteDefault(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(defaultRaw())
}
