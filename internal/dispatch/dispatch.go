// Package dispatch implements the Extractor Dispatcher stage (spec.md
// §4.4): N₂ workers each pop a FileRef, stream it through its resolved
// extractor, run every enabled detector over each chunk, aggregate the
// matches into a Finding, and post it to every result queue.
//
// Grounded on the teacher's (dupedog) verifier stage
// (internal/verifier/verifier.go): a worker pool pulling jobs off a
// shared channel, doing per-item work, and posting results onward, with
// a shared counter electing the worker responsible for closing the
// downstream channels.
package dispatch

import (
	"github.com/kirkpatrickprice/piidigger-go/internal/detect"
	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

// Deps bundles the registries and shared state a dispatcher worker needs.
// Active is the activeDispatchers counter of spec.md §5, seeded at N₂.
type Deps struct {
	Extractors *extract.Registry
	Detectors  *detect.Registry
	Counters   *model.Counters
	Active     *procmgr.ExitCounter
}

// Worker returns one Extractor Dispatcher worker. filesQ is the shared
// FileRef input queue; resultQs receives a posted Finding per file with
// non-empty matches, and a sentinel from whichever worker exits last.
func Worker(filesQ *queue.Queue[*model.FileRef], resultQs []*queue.Queue[*model.Finding], deps Deps, logger *logging.Logger, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		defer func() {
			if deps.Active.Exit() {
				for _, q := range resultQs {
					q.PostSentinel()
				}
			} else {
				filesQ.PostSentinel()
			}
		}()

		for {
			ref, sentinel, ok := filesQ.Pop()
			if !ok {
				if stop.IsSet() {
					filesQ.Drain()
					return
				}
				continue
			}
			if sentinel {
				return
			}
			if stop.IsSet() {
				continue
			}
			processFile(ref, resultQs, deps, logger)
		}
	}
}

// processFile streams ref through its resolved extractor, running every
// enabled detector over each chunk, and posts a Finding if anything
// matched.
func processFile(ref *model.FileRef, resultQs []*queue.Queue[*model.Finding], deps Deps, logger *logging.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unknown exception on file %s: %v", ref.FullPath, r)
		}
	}()

	extractor, ok := deps.Extractors.Get(ref.HandlerName)
	if !ok {
		logger.Error("dispatch: no extractor registered for handler %q (%s)", ref.HandlerName, ref.FullPath)
		return
	}

	finding := model.NewFinding(ref.FullPath)
	detectors := deps.Detectors.All()

	extractor.ReadFile(ref.FullPath, logger, func(chunk string) bool {
		for _, d := range detectors {
			result := d.FindMatch(chunk)
			if len(result) > 0 {
				finding.Merge(d.Name(), result)
			}
		}
		return true
	})

	deps.Counters.AddFilesScanned(1)
	deps.Counters.AddBytesScanned(uint64(ref.Size))

	if finding.IsEmpty() {
		return
	}
	deps.Counters.AddTotalResults(uint64(finding.Count()))
	for _, q := range resultQs {
		q.Push(finding)
	}
}
