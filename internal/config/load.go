package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
)

// LoadAndResolve implements spec.md §7's configuration error policy end
// to end: reads confFile (or the built-in default when useDefault is
// set), falls back to the built-in default with a warning when the file
// is simply missing, and treats a TOML parse error or an unresolvable
// start dir as fatal. On success it returns the fully resolved,
// immutable Config the pipeline consumes.
func LoadAndResolve(confFile string, useDefault bool, overrides Overrides, extractors *extract.Registry, now time.Time, hostname string) (*Config, error) {
	var r raw
	switch {
	case useDefault:
		r = defaultRaw()
	default:
		loaded, err := Load(confFile)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "config %s not found, using built-in default\n", confFile)
				r = defaultRaw()
				break
			}
			return nil, err
		}
		r = loaded
	}

	return Resolve(r, overrides, extractors, now, hostname)
}
