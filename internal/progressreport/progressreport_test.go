package progressreport

import (
	"strings"
	"testing"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
)

func TestRenderFormatsSnapshot(t *testing.T) {
	snap := model.Snapshot{
		DirsFound: 4, DirsScanned: 2,
		FilesFound: 10, FilesScanned: 6,
		BytesFound: 2048, BytesScanned: 1024,
		TotalResults: 3,
	}
	got := render(snap)
	for _, want := range []string{"dirs 2/4", "files 6/10", "results 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("render() = %q, want it to contain %q", got, want)
		}
	}
}

func TestWorkerDisabledExitsOnStop(t *testing.T) {
	counters := model.NewCounters()
	stop := &procmgr.StopEvent{}

	done := make(chan struct{})
	go func() {
		Worker(counters, false, stop)()
		close(done)
	}()

	stop.Set()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("disabled worker did not exit after stop was set")
	}
}

func TestWorkerEnabledExitsOnStop(t *testing.T) {
	counters := model.NewCounters()
	stop := &procmgr.StopEvent{}

	done := make(chan struct{})
	go func() {
		Worker(counters, true, stop)()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	stop.Set()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enabled worker did not exit after stop was set")
	}
}
