// Package extract implements the format Extractor contract of spec.md §6:
// each extractor claims a set of extensions/MIMEs and streams a file's
// text as a lazy sequence of whitespace-normalized TextChunks, shaped by
// a chunk.ContentHandler (spec.md §4.5/§4.6).
package extract

import (
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
)

// Handles describes the extensions and MIME types an extractor claims.
type Handles struct {
	Exts  []string
	Mimes []string
}

// Extractor streams a file's textual content as TextChunks. Chunks are
// passed as plain strings, which the dispatcher consumes directly
// (model.TextChunk is not used on this path), keeping this package
// import-light.
type Extractor interface {
	Handles() Handles
	// ReadFile streams chunks to yield. yield returning false means the
	// consumer has stopped early (cancellation); ReadFile should return
	// promptly. All file-open/format errors are logged and simply end
	// the stream (spec.md §4.6/§7).
	ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool)
}

// Registry maps a handler name to its Extractor and maintains the
// by-extension / by-MIME reverse indexes described in spec.md §9 ("Plugin
// registry without dynamic import"). First-registered-wins on a
// duplicate claim, with a warning logged through the supplied logger.
type Registry struct {
	byName   map[string]Extractor
	byExt    map[string]string // ext -> handler name
	byMime   map[string]string // mime -> handler name
	order    []string          // handler names in registration order
}

// NewRegistry builds the registry from the built-in extractors, in a
// fixed order so duplicate-claim resolution is deterministic.
func NewRegistry(logger *logging.Logger) *Registry {
	r := &Registry{
		byName: make(map[string]Extractor),
		byExt:  make(map[string]string),
		byMime: make(map[string]string),
	}
	builtins := []struct {
		name string
		ex   Extractor
	}{
		{"plaintext", NewPlaintextExtractor()},
		{"docx", NewDocxExtractor()},
		{"xlsx", NewXLSXExtractor()},
		{"xls", NewXLSExtractor()},
		{"pdf", NewPDFExtractor()},
	}
	for _, b := range builtins {
		r.register(b.name, b.ex, logger)
	}
	return r
}

func (r *Registry) register(name string, ex Extractor, logger *logging.Logger) {
	r.byName[name] = ex
	r.order = append(r.order, name)
	h := ex.Handles()
	for _, ext := range h.Exts {
		if existing, ok := r.byExt[ext]; ok {
			if logger != nil {
				logger.Warning("extractor %q: extension %q already claimed by %q, keeping first registration", name, ext, existing)
			}
			continue
		}
		r.byExt[ext] = name
	}
	for _, mime := range h.Mimes {
		if existing, ok := r.byMime[mime]; ok {
			if logger != nil {
				logger.Warning("extractor %q: mime %q already claimed by %q, keeping first registration", name, mime, existing)
			}
			continue
		}
		r.byMime[mime] = name
	}
}

// Resolve returns the handler name for (ext, mime), checking extension
// first then MIME, or "" if neither is claimed.
func (r *Registry) Resolve(ext, mime string) string {
	if name, ok := r.byExt[ext]; ok {
		return name
	}
	if mime != "" {
		if name, ok := r.byMime[mime]; ok {
			return name
		}
	}
	return ""
}

// Get returns the Extractor registered under name.
func (r *Registry) Get(name string) (Extractor, bool) {
	ex, ok := r.byName[name]
	return ex, ok
}

// SupportedExts returns every extension claimed by any extractor, for
// "all" substitution in config (spec.md §6) and --list-filetypes.
func (r *Registry) SupportedExts() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// SupportedMimes returns every MIME type claimed by any extractor.
func (r *Registry) SupportedMimes() []string {
	mimes := make([]string, 0, len(r.byMime))
	for mime := range r.byMime {
		mimes = append(mimes, mime)
	}
	return mimes
}
