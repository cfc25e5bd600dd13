package walker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) error = %v", path, err)
	}
}

func drainDirs(t *testing.T, q *queue.Queue[string]) []string {
	t.Helper()
	var got []string
	for {
		v, sentinel, ok := q.Pop()
		if !ok {
			t.Fatal("timed out waiting for dirsQ entries")
		}
		if sentinel {
			return got
		}
		got = append(got, v)
	}
}

func TestWalkerWalksSubdirsAndExcludes(t *testing.T) {
	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "keep"))
	mustMkdirAll(t, filepath.Join(root, "skip"))
	mustMkdirAll(t, filepath.Join(root, "keep", "nested"))

	dirsQ := queue.New[string](16)
	counters := model.NewCounters()
	logger := logging.NewLogManager(logging.ERROR, 8).Logger("test")
	stop := &procmgr.StopEvent{}

	done := make(chan struct{})
	go func() {
		Worker([]string{root}, []string{filepath.Join(root, "skip")}, dirsQ, counters, logger, stop)()
		close(done)
	}()

	got := drainDirs(t, dirsQ)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("walker did not exit after posting sentinel")
	}

	want := map[string]bool{
		root: true,
		filepath.Join(root, "keep"):         true,
		filepath.Join(root, "keep", "nested"): true,
	}
	if len(got) != len(want) {
		t.Fatalf("walked dirs = %v, want exactly %v", got, want)
	}
	for _, d := range got {
		if !want[d] {
			t.Errorf("unexpected dir walked: %q", d)
		}
	}
	for d := range want {
		found := false
		for _, g := range got {
			if g == d {
				found = true
			}
		}
		if !found {
			t.Errorf("expected dir %q to be walked", d)
		}
	}

	snap := counters.Snapshot()
	if snap.DirsFound != uint64(len(want)) {
		t.Errorf("DirsFound = %d, want %d", snap.DirsFound, len(want))
	}
}

func TestIsExcludedCaseInsensitivePrefix(t *testing.T) {
	if !isExcluded(`C:\Windows\System32`, []string{`c:\windows`}) {
		t.Error("expected case-insensitive prefix match to exclude the dir")
	}
	if isExcluded("/home/user/docs", []string{"/proc"}) {
		t.Error("unrelated prefix incorrectly excluded the dir")
	}
}
