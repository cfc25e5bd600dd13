// Package finder implements the FileFinder stage (spec.md §4.3): N₁
// workers each pop a directory from dirsQ, enumerate its entries, admit
// files by size/locality/extension/MIME, and push a FileRef per
// admission onto filesQ.
//
// Grounded on the teacher's (dupedog) scanner.go file-admission half,
// split out from directory walking to match the two-stage topology
// spec.md requires (walker.Worker and finder.Worker were one
// os.ReadDir-driven goroutine in the teacher; here a shared dirsQ
// decouples them so either stage's worker count can vary independently).
package finder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/mimeutil"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

// Admission bundles the config knobs that decide whether an entry is an
// eligible file (spec.md §3 Config: fileExts, mimeTypes, localFilesOnly).
type Admission struct {
	FileExts       map[string]struct{}
	MimeTypes      map[string]struct{}
	LocalFilesOnly bool
	IsLocal        func(path string) bool
}

func (a Admission) mimeCheckEnabled() bool { return len(a.MimeTypes) > 0 }

// Worker returns one FileFinder worker. dirsQ is the shared directory
// input; filesQ receives one FileRef per admitted file, and a files
// sentinel from whichever worker in the cohort exits last (exit is
// shared via active, seeded at N₁).
func Worker(dirsQ *queue.Queue[string], filesQ *queue.Queue[*model.FileRef], admission Admission, extractors *extract.Registry, counters *model.Counters, active *procmgr.ExitCounter, logger *logging.Logger, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		for {
			dir, sentinel, ok := dirsQ.Pop()
			if !ok {
				if stop.IsSet() {
					dirsQ.Drain()
					finish(filesQ, active)
					return
				}
				continue
			}
			if sentinel {
				if active.Exit() {
					filesQ.PostSentinel()
				} else {
					dirsQ.PostSentinel()
				}
				return
			}
			if stop.IsSet() {
				continue
			}
			scanDir(dir, filesQ, admission, extractors, counters, logger)
		}
	}
}

func finish(filesQ *queue.Queue[*model.FileRef], active *procmgr.ExitCounter) {
	if active.Exit() {
		filesQ.PostSentinel()
	}
}

func scanDir(dir string, filesQ *queue.Queue[*model.FileRef], admission Admission, extractors *extract.Registry, counters *model.Counters, logger *logging.Logger) {
	counters.AddDirsScanned(1)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("finder: read %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if !isFile(entry) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Debug("finder: stat %s: %v", full, err)
			continue
		}
		if info.Size() == 0 {
			continue
		}
		if admission.LocalFilesOnly && admission.IsLocal != nil && !admission.IsLocal(full) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(full))
		mime := mimeutil.MimeOf(full)

		if !admitByExtOrMime(ext, mime, admission) {
			continue
		}

		handlerName := extractors.Resolve(ext, mime)
		if handlerName == "" {
			continue
		}

		ref := &model.FileRef{
			FullPath:    full,
			Extension:   ext,
			Size:        info.Size(),
			MimeType:    mime,
			HandlerName: handlerName,
			Atime:       info.ModTime(),
			Mtime:       info.ModTime(),
		}
		counters.AddFilesFound(1)
		counters.AddBytesFound(uint64(info.Size()))
		filesQ.Push(ref)
	}
}

// isFile reports whether entry is a plain file (not a directory, not a
// symlink to anything).
func isFile(entry os.DirEntry) bool {
	return !entry.IsDir() && entry.Type()&os.ModeSymlink == 0
}

// admitByExtOrMime applies spec.md §4.3 step 3: accept iff extension is
// in the configured set OR (MIME checking enabled AND MIME is in the
// configured set).
func admitByExtOrMime(ext, mime string, admission Admission) bool {
	if _, ok := admission.FileExts[ext]; ok {
		return true
	}
	if admission.mimeCheckEnabled() {
		if _, ok := admission.MimeTypes[mime]; ok {
			return true
		}
	}
	return false
}
