// Package walker implements the DirWalker stage (spec.md §4.2): a
// single breadth-first traversal from the configured start directories,
// honoring exclude-prefix patterns, posting every admitted directory
// (including the roots themselves) onto dirsQ for FileFinder to scan.
//
// Grounded on the teacher's (dupedog) scanner.go directory-walking
// half, generalized from a single recursive os.ReadDir pass into an
// explicit local BFS queue so cancellation can be polled between
// directories rather than only between top-level roots.
package walker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

// Worker returns the single DirWalker worker. dirsQ receives every
// admitted directory path, including the start directories. On
// exhaustion it posts the dirs sentinel once and returns.
func Worker(startDirs, excludeDirs []string, dirsQ *queue.Queue[string], counters *model.Counters, logger *logging.Logger, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		defer dirsQ.PostSentinel()

		var pending []string
		for _, root := range startDirs {
			pending = append(pending, root)
			counters.AddDirsFound(1)
			dirsQ.Push(root)
		}

		for len(pending) > 0 {
			if stop.IsSet() {
				dirsQ.Drain()
				return
			}
			dir := pending[0]
			pending = pending[1:]

			entries, err := os.ReadDir(dir)
			if err != nil {
				logger.Debug("walker: read %s: %v", dir, err)
				continue
			}
			for _, entry := range entries {
				if stop.IsSet() {
					dirsQ.Drain()
					return
				}
				// os.ReadDir reports symlink entries via Type(), not
				// IsDir(), so a symlink-to-directory is already
				// excluded here without a separate lstat check.
				if !entry.IsDir() {
					continue
				}
				full := filepath.Join(dir, entry.Name())
				if isExcluded(full, excludeDirs) {
					continue
				}
				pending = append(pending, full)
				counters.AddDirsFound(1)
				dirsQ.Push(full)
			}
		}
	}
}

// isExcluded reports whether full's case-insensitive form begins with
// any of excludeDirs's case-insensitive prefixes.
func isExcluded(full string, excludeDirs []string) bool {
	lower := strings.ToLower(full)
	for _, prefix := range excludeDirs {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
