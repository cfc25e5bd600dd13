// Package progressreport implements the Progress Reporter stage
// (spec.md §2, §4's surrounding services): a single worker that
// periodically renders a status line from the shared Counters.
//
// Grounded on the teacher's (dupedog) internal/progress.Bar, which
// wraps github.com/schollz/progressbar in spinner mode for an
// indeterminate total; generalized from a one-shot Set/Finish API
// driven by the caller into a ticking worker that reads a
// model.Counters snapshot on its own schedule, since spec.md requires
// the reporter to be an independent pipeline stage rather than a helper
// called by other stages.
package progressreport

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
)

// tickInterval is how often the status line is refreshed.
const tickInterval = 500 * time.Millisecond

// Worker returns the single Progress Reporter worker. enabled=false
// makes it a no-op loop that still observes stop promptly.
func Worker(counters *model.Counters, enabled bool, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		if !enabled {
			waitForStop(stop)
			return
		}

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionThrottle(tickInterval),
		)
		defer func() { _ = bar.Finish() }()

		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for !stop.IsSet() {
			<-ticker.C
			bar.Describe(render(counters.Snapshot()))
			_ = bar.Add(1)
		}
	}
}

func waitForStop(stop *procmgr.StopEvent) {
	for !stop.IsSet() {
		time.Sleep(tickInterval)
	}
}

// render formats one status line from a Counters snapshot, mirroring
// the original's curses-free progress thread (spec.md §C).
func render(s model.Snapshot) string {
	return fmt.Sprintf(
		"dirs %d/%d  files %d/%d  bytes %s/%s  results %d",
		s.DirsScanned, s.DirsFound,
		s.FilesScanned, s.FilesFound,
		humanize.Bytes(s.BytesScanned), humanize.Bytes(s.BytesFound),
		s.TotalResults,
	)
}
