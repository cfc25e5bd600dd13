// Package model holds the value types shared across pipeline stages:
// FileRef, TextChunk, Finding, and the shared atomic Counters.
package model

import (
	"sort"
	"sync"
	"time"
)

// FileRef describes a file admitted by the FileFinder stage for extraction.
// Immutable once constructed.
type FileRef struct {
	FullPath    string
	Extension   string
	Size        int64
	MimeType    string
	HandlerName string
	Atime       time.Time
	Mtime       time.Time
}

// TextChunk is a whitespace-normalized text segment produced by an extractor.
type TextChunk string

// Finding aggregates the detector matches found in a single file.
// matches: detectorName -> subtype -> set of redacted strings.
type Finding struct {
	Filename string
	matches  map[string]map[string]map[string]struct{}
}

// NewFinding creates an empty Finding for the given file.
func NewFinding(filename string) *Finding {
	return &Finding{Filename: filename, matches: make(map[string]map[string]map[string]struct{})}
}

// Merge folds a detector's result (subtype -> redacted strings) into the
// finding under detectorName. Sets deduplicate automatically.
func (f *Finding) Merge(detectorName string, result map[string][]string) {
	if len(result) == 0 {
		return
	}
	bySubtype, ok := f.matches[detectorName]
	if !ok {
		bySubtype = make(map[string]map[string]struct{})
		f.matches[detectorName] = bySubtype
	}
	for subtype, values := range result {
		set, ok := bySubtype[subtype]
		if !ok {
			set = make(map[string]struct{})
			bySubtype[subtype] = set
		}
		for _, v := range values {
			set[v] = struct{}{}
		}
	}
}

// IsEmpty reports whether the finding has no matches at all.
func (f *Finding) IsEmpty() bool {
	return len(f.matches) == 0
}

// Count returns the total number of redacted strings across all
// detectors and subtypes (recursive sum over leaves, per §4.4).
func (f *Finding) Count() int {
	n := 0
	for _, bySubtype := range f.matches {
		for _, set := range bySubtype {
			n += len(set)
		}
	}
	return n
}

// Sorted returns the finding's matches as detectorName -> subtype -> sorted
// list of redacted strings, suitable for deterministic serialization.
func (f *Finding) Sorted() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(f.matches))
	for detectorName, bySubtype := range f.matches {
		inner := make(map[string][]string, len(bySubtype))
		for subtype, set := range bySubtype {
			list := make([]string, 0, len(set))
			for v := range set {
				list = append(list, v)
			}
			sort.Strings(list)
			inner[subtype] = list
		}
		out[detectorName] = inner
	}
	return out
}

// Counters holds the shared, atomic, per-counter-locked progress counters
// described in spec.md §3. Each counter has its own lock so unrelated
// counters never contend with one another.
type Counters struct {
	mu struct {
		dirsFound, dirsScanned     sync.Mutex
		filesFound, filesScanned   sync.Mutex
		bytesFound, bytesScanned   sync.Mutex
		totalResults               sync.Mutex
	}
	dirsFound, dirsScanned   uint64
	filesFound, filesScanned uint64
	bytesFound, bytesScanned uint64
	totalResults             uint64
}

// NewCounters returns a zeroed Counters.
func NewCounters() *Counters { return &Counters{} }

func (c *Counters) AddDirsFound(n uint64) {
	c.mu.dirsFound.Lock()
	c.dirsFound += n
	c.mu.dirsFound.Unlock()
}

func (c *Counters) AddDirsScanned(n uint64) {
	c.mu.dirsScanned.Lock()
	c.dirsScanned += n
	c.mu.dirsScanned.Unlock()
}

func (c *Counters) AddFilesFound(n uint64) {
	c.mu.filesFound.Lock()
	c.filesFound += n
	c.mu.filesFound.Unlock()
}

func (c *Counters) AddFilesScanned(n uint64) {
	c.mu.filesScanned.Lock()
	c.filesScanned += n
	c.mu.filesScanned.Unlock()
}

func (c *Counters) AddBytesFound(n uint64) {
	c.mu.bytesFound.Lock()
	c.bytesFound += n
	c.mu.bytesFound.Unlock()
}

func (c *Counters) AddBytesScanned(n uint64) {
	c.mu.bytesScanned.Lock()
	c.bytesScanned += n
	c.mu.bytesScanned.Unlock()
}

func (c *Counters) AddTotalResults(n uint64) {
	c.mu.totalResults.Lock()
	c.totalResults += n
	c.mu.totalResults.Unlock()
}

// Snapshot is an immutable point-in-time read of all counters, used by the
// Progress Reporter stage.
type Snapshot struct {
	DirsFound, DirsScanned     uint64
	FilesFound, FilesScanned   uint64
	BytesFound, BytesScanned   uint64
	TotalResults               uint64
}

func (c *Counters) Snapshot() Snapshot {
	c.mu.dirsFound.Lock()
	dirsFound := c.dirsFound
	c.mu.dirsFound.Unlock()

	c.mu.dirsScanned.Lock()
	dirsScanned := c.dirsScanned
	c.mu.dirsScanned.Unlock()

	c.mu.filesFound.Lock()
	filesFound := c.filesFound
	c.mu.filesFound.Unlock()

	c.mu.filesScanned.Lock()
	filesScanned := c.filesScanned
	c.mu.filesScanned.Unlock()

	c.mu.bytesFound.Lock()
	bytesFound := c.bytesFound
	c.mu.bytesFound.Unlock()

	c.mu.bytesScanned.Lock()
	bytesScanned := c.bytesScanned
	c.mu.bytesScanned.Unlock()

	c.mu.totalResults.Lock()
	totalResults := c.totalResults
	c.mu.totalResults.Unlock()

	return Snapshot{
		DirsFound: dirsFound, DirsScanned: dirsScanned,
		FilesFound: filesFound, FilesScanned: filesScanned,
		BytesFound: bytesFound, BytesScanned: bytesScanned,
		TotalResults: totalResults,
	}
}
