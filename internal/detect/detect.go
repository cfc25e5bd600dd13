// Package detect implements the pluggable detector contract of spec.md
// §4.7/§6: a Detector consumes a text chunk and returns classified,
// already-redacted matches. Detectors are pure, thread-safe, and do no
// I/O, so implementing them as small stateless regex-based types matches
// every detector in the original Python source (pan.py, email.py) — there
// is no pack precedent for this kind of domain logic, so it is translated
// directly from the original algorithms rather than grounded on a library.
package detect

// Detector is a named, pure matching/redaction unit (spec.md §6).
type Detector interface {
	// Name is the dhName used as the key in Finding.matches and in
	// config.DataHandlers.
	Name() string
	// FindMatch returns subtype -> already-redacted strings found in
	// chunk. Returns an empty (not nil-valued) map when nothing matches.
	FindMatch(chunk string) map[string][]string
}

// Registry is an ordered, name-indexed set of enabled detectors. Order
// matters: spec.md §5 requires chunk-detector application in the order of
// config.DataHandlers.
type Registry struct {
	order []Detector
	byName map[string]Detector
}

// NewRegistry builds a Registry from all known detectors, keeping only
// those named in enabledNames, in enabledNames' order. Unknown names are
// skipped silently here (config.Resolve already warns about and drops
// them per spec.md §6).
func NewRegistry(enabledNames []string) *Registry {
	all := map[string]Detector{
		PANDetectorName:   NewPANDetector(),
		EmailDetectorName: NewEmailDetector(),
	}
	r := &Registry{byName: make(map[string]Detector)}
	for _, name := range enabledNames {
		d, ok := all[name]
		if !ok {
			continue
		}
		r.order = append(r.order, d)
		r.byName[name] = d
	}
	return r
}

// All returns the enabled detectors in deterministic application order.
func (r *Registry) All() []Detector { return r.order }

// Names returns every known detector name (for --list-datahandlers),
// regardless of which are currently enabled.
func Names() []string {
	return []string{PANDetectorName, EmailDetectorName}
}
