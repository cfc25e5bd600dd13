package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/config"
	"github.com/kirkpatrickprice/piidigger-go/internal/detect"
	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
	"github.com/kirkpatrickprice/piidigger-go/internal/pipeline"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
)

// scanOptions holds the CLI flags for the root (and only) command.
type scanOptions struct {
	confFile         string
	defaultConf      bool
	createConf       string
	maxProcess       int
	cpuCount         bool
	listDataHandlers bool
	listFileTypes    bool
	noProgress       bool
}

// runScan resolves configuration, handles the informational flags that
// exit early, and otherwise builds and runs the pipeline.
func runScan(opts *scanOptions) error {
	if opts.cpuCount {
		fmt.Println(runtime.NumCPU())
		return nil
	}

	extractors := extract.NewRegistry(nil)

	if opts.listDataHandlers {
		printSorted(detect.Names())
		return nil
	}
	if opts.listFileTypes {
		printSorted(extractors.SupportedExts())
		printSorted(extractors.SupportedMimes())
		return nil
	}

	if opts.createConf != "" {
		if err := config.WriteDefault(opts.createConf); err != nil {
			return err
		}
		return nil
	}

	hostname, _ := os.Hostname()
	cfg, err := config.LoadAndResolve(
		opts.confFile,
		opts.defaultConf,
		config.Overrides{MaxProcs: opts.maxProcess},
		extractors,
		time.Now(),
		hostname,
	)
	if err != nil {
		return &invalidConfigError{err: err}
	}

	stop := &procmgr.StopEvent{}
	installSignalHandler(stop)

	return pipeline.Run(cfg, !opts.noProgress, stop)
}

func printSorted(items []string) {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	fmt.Println(strings.Join(sorted, "\n"))
}

// installSignalHandler arranges for SIGINT/SIGTERM to set stop, per
// spec.md §5 ("External interrupt sets stopEvent").
func installSignalHandler(stop *procmgr.StopEvent) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		stop.Set()
	}()
}
