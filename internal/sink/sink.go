// Package sink implements the Result Sinks stage (spec.md §4.8): each
// sink drains one queue.Queue[*model.Finding] until a sentinel arrives
// or cancellation is observed, and writes findings out in its own
// format. A sink that hits an unrecoverable (permission) error sets the
// shared stopEvent and exits; any other write error is logged and the
// sink continues with the next finding.
//
// Grounded on the teacher's (dupedog) deduper.Run() drain-loop shape
// (internal/deduper/deduper.go): a single goroutine pulling off a
// channel until closed, writing to an output as it goes.
package sink

import (
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

// Sink writes a Finding to its output. Implementations are not expected
// to be safe for concurrent use; each sink is driven by exactly one
// worker.
type Sink interface {
	// Write persists one non-empty finding. A non-nil error that
	// indicates the output is unusable (e.g. permission denied) should
	// be distinguishable via IsFatal so the worker can stop early.
	Write(f *model.Finding) error
	// Close flushes and releases any resources held by the sink.
	Close() error
}

// IsFatal reports whether err should halt this sink's worker rather than
// just being logged and skipped, per spec.md §7 ("PermissionError -> set
// stopEvent and exit; other errors -> log and continue").
func IsFatal(err error) bool {
	return isPermissionError(err)
}

// Worker drains q into sink until a sentinel arrives or stop is
// observed, applying the fatal/non-fatal error split above.
func Worker(q *queue.Queue[*model.Finding], s Sink, logger *logging.Logger, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		defer func() {
			if err := s.Close(); err != nil {
				logger.Error("sink: close: %v", err)
			}
		}()
		for {
			f, sentinel, ok := q.Pop()
			if !ok {
				if stop.IsSet() {
					drainSink(q, s, logger)
					return
				}
				continue
			}
			if sentinel {
				drainSink(q, s, logger)
				return
			}
			if f == nil || f.IsEmpty() {
				continue
			}
			if err := s.Write(f); err != nil {
				logger.Error("sink: write %s: %v", f.Filename, err)
				if IsFatal(err) {
					stop.Set()
					return
				}
			}
		}
	}
}

func drainSink(q *queue.Queue[*model.Finding], s Sink, logger *logging.Logger) {
	for {
		f, sentinel, ok := q.Pop()
		if !ok || sentinel {
			return
		}
		if f == nil || f.IsEmpty() {
			continue
		}
		if err := s.Write(f); err != nil {
			logger.Error("sink: write %s: %v", f.Filename, err)
		}
	}
}
