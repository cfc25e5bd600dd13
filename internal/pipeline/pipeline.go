// Package pipeline wires the DirWalker, FileFinder, Extractor
// Dispatcher, Result Sinks, and Log Collector stages together behind two
// independent ProcessManager instances (spec.md §4.1: "one for the log
// collector... and one for the data pipeline"), runs the Progress
// Reporter under a third ProcessManager that is stopped once the data
// pipeline has been joined, and drives the shutdown sequence of spec.md §5.
//
// Grounded on the teacher's (dupedog) cmd/dupedog/dedupe.go runDedupe:
// build each stage, run it, drain errors as you go. Here the stages run
// concurrently instead of sequentially, so the wiring lives behind two
// ProcessManagers rather than sequential function calls.
package pipeline

import (
	"fmt"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/config"
	"github.com/kirkpatrickprice/piidigger-go/internal/detect"
	"github.com/kirkpatrickprice/piidigger-go/internal/dispatch"
	"github.com/kirkpatrickprice/piidigger-go/internal/extract"
	"github.com/kirkpatrickprice/piidigger-go/internal/finder"
	"github.com/kirkpatrickprice/piidigger-go/internal/localfs"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/kirkpatrickprice/piidigger-go/internal/model"
	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/progressreport"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
	"github.com/kirkpatrickprice/piidigger-go/internal/sink"
	"github.com/kirkpatrickprice/piidigger-go/internal/walker"
)

// queueCapacity is the generous bound spec.md §5 recommends (1000 items)
// to avoid deadlock during normal flow.
const queueCapacity = 1000

// gracePeriod bounds how long TerminateAll waits for the log collector
// to observe cancellation before giving up on it.
const gracePeriod = 5 * time.Second

// Run builds the full pipeline from cfg, executes it to completion (or
// until interrupted via stop), and returns once every stage and sink has
// been flushed and joined.
func Run(cfg *config.Config, showProgress bool, stop *procmgr.StopEvent) error {
	logMgr := logging.NewLogManager(cfg.LogLevel, queueCapacity)
	logPM := procmgr.New()
	logPM.Register("log-collector", 1, func(int) procmgr.Worker {
		return logging.Collector(logMgr, cfg.LogFile, stop)
	})
	logPM.Start()

	dataPM := procmgr.New()
	counters := model.NewCounters()

	extractors := extract.NewRegistry(logMgr.Logger("extract"))
	detectors := detect.NewRegistry(cfg.DataHandlers)

	sinks, err := buildSinks(cfg)
	if err != nil {
		logPM.TerminateAll(stop, gracePeriod)
		return err
	}
	resultQs := make([]*queue.Queue[*model.Finding], 0, len(sinks))
	for _, s := range sinks {
		resultQs = append(resultQs, s.queue)
	}

	// The progress reporter runs until progressStop is raised, which
	// happens once the data pipeline has been joined.
	progressStop := &procmgr.StopEvent{}
	progressPM := procmgr.New()
	progressPM.Register("progress", 1, func(int) procmgr.Worker {
		return progressreport.Worker(counters, showProgress, progressStop)
	})

	dirsQ := queue.New[string](queueCapacity)
	filesQ := queue.New[*model.FileRef](queueCapacity)

	dataPM.Register("walker", 1, func(int) procmgr.Worker {
		return walker.Worker(cfg.StartDirs, cfg.ExcludeDirs, dirsQ, counters, logMgr.Logger("walker"), stop)
	})

	finderActive := procmgr.NewExitCounter(cfg.MaxFilesScanProcs)
	admission := finder.Admission{
		FileExts:       cfg.FileExts,
		MimeTypes:      cfg.MimeTypes,
		LocalFilesOnly: cfg.LocalFilesOnly,
		IsLocal:        localfs.IsLocal,
	}
	dataPM.Register("finder", cfg.MaxFilesScanProcs, func(int) procmgr.Worker {
		return finder.Worker(dirsQ, filesQ, admission, extractors, counters, finderActive, logMgr.Logger("finder"), stop)
	})

	dispatchActive := procmgr.NewExitCounter(cfg.MaxProcs)
	deps := dispatch.Deps{
		Extractors: extractors,
		Detectors:  detectors,
		Counters:   counters,
		Active:     dispatchActive,
	}
	dataPM.Register("dispatch", cfg.MaxProcs, func(int) procmgr.Worker {
		return dispatch.Worker(filesQ, resultQs, deps, logMgr.Logger("dispatch"), stop)
	})

	for _, s := range sinks {
		s := s
		dataPM.Register("sink-"+s.name, 1, func(int) procmgr.Worker {
			return sink.Worker(s.queue, s.impl, logMgr.Logger("sink-"+s.name), stop)
		})
	}

	progressPM.Start()
	dataPM.Start()
	dataPM.Wait()
	progressStop.Set()
	progressPM.Wait()

	logMgr.Queue().PostSentinel()
	logPM.Wait()

	return nil
}

// namedSink pairs a sink implementation with the queue feeding it and a
// name for logging.
type namedSink struct {
	name  string
	impl  sink.Sink
	queue *queue.Queue[*model.Finding]
}

// buildSinks constructs one sink per enabled output format in cfg.Outputs.
func buildSinks(cfg *config.Config) ([]namedSink, error) {
	var sinks []namedSink
	for format, path := range cfg.Outputs {
		var impl sink.Sink
		switch format {
		case "json":
			impl = sink.NewJSONSink(path)
		case "text":
			s, err := sink.NewYAMLSink(path)
			if err != nil {
				return nil, fmt.Errorf("open text sink %s: %w", path, err)
			}
			impl = s
		case "csv":
			s, err := sink.NewCSVSink(path)
			if err != nil {
				return nil, fmt.Errorf("open csv sink %s: %w", path, err)
			}
			impl = s
		default:
			continue
		}
		sinks = append(sinks, namedSink{
			name:  format,
			impl:  impl,
			queue: queue.New[*model.Finding](queueCapacity),
		})
	}
	return sinks, nil
}
