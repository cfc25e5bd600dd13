// Package logging implements the Log Collector (spec.md §4.9): a single
// worker owns the log file, draining a shared queue of Records until a
// sentinel arrives or cancellation is observed. Every other worker holds
// a Logger whose sole sink is that queue, so the collector is the only
// writer ever touching the file (spec.md §5: "Per-worker loggers").
//
// Grounded on theweak1-file-maintenance's internal/logging.Logger
// (mutex-guarded shared logger, levels loaded once at startup) adapted so
// the sink is a queue instead of a direct file write, combined with the
// teacher's (dupedog) errCh-drain goroutine shape in
// cmd/dupedog/dedupe.go (drainErrors).
package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/kirkpatrickprice/piidigger-go/internal/procmgr"
	"github.com/kirkpatrickprice/piidigger-go/internal/queue"
)

// Level is a log severity, ordered least to most severe.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "WARNING", "warning", "WARN", "warn":
		return WARNING
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// Record is one log line, formatted by the collector as:
// "%Y-%m-%d %H:%M:%S,ms:[name]:LEVEL:message" per spec.md §4.9.
type Record struct {
	Level   Level
	Name    string
	When    time.Time
	Message string
}

func (r Record) format() string {
	return fmt.Sprintf("%s,%03d:[%s]:%s:%s",
		r.When.Format("2006-01-02 15:04:05"),
		r.When.Nanosecond()/1e6,
		r.Name,
		r.Level,
		r.Message,
	)
}

// LogManager hands out Loggers that all enqueue Records on the same
// shared queue, and owns the level filter applied before enqueueing.
type LogManager struct {
	q        *queue.Queue[Record]
	minLevel Level
}

// NewLogManager creates a LogManager with the given minimum level and
// queue capacity.
func NewLogManager(minLevel Level, capacity int) *LogManager {
	return &LogManager{q: queue.New[Record](capacity), minLevel: minLevel}
}

// Queue exposes the shared queue for the collector worker.
func (m *LogManager) Queue() *queue.Queue[Record] { return m.q }

// Logger returns a Logger bound to name that enqueues onto this manager's
// queue. Each worker should obtain its own Logger (spec.md §5).
func (m *LogManager) Logger(name string) *Logger {
	return &Logger{mgr: m, name: name}
}

// Logger is a per-worker handle that enqueues Records; it never writes to
// the file itself.
type Logger struct {
	mgr  *LogManager
	name string
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.mgr.minLevel {
		return
	}
	l.mgr.q.Push(Record{
		Level:   level,
		Name:    l.name,
		When:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *Logger) Debug(format string, args ...any)   { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.log(INFO, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.log(WARNING, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.log(ERROR, format, args...) }

// Collector drains the LogManager's queue into logPath until a sentinel
// arrives or stop is observed, per spec.md §4.9 and §5 ("Shutdown
// sequence ... post a sentinel to the log queue, then join the log
// collector"). On cancel it sleeps ~2s to let stragglers enqueue, then
// drains the rest.
func Collector(mgr *LogManager, logPath string, stop *procmgr.StopEvent) procmgr.Worker {
	return func() {
		f, err := os.Create(logPath) // mode=truncate at startup, per spec.md §6
		if err != nil {
			// Nothing else can log this failure meaningfully; drop to stderr.
			fmt.Fprintf(os.Stderr, "log collector: cannot open %s: %v\n", logPath, err)
			f = nil
		}
		if f != nil {
			defer func() { _ = f.Close() }()
		}

		write := func(r Record) {
			if f == nil {
				return
			}
			_, _ = fmt.Fprintln(f, r.format())
		}

		for {
			rec, sentinel, ok := mgr.q.Pop()
			if !ok {
				if stop.IsSet() {
					time.Sleep(2 * time.Second)
					drainRemaining(mgr.q, write)
					return
				}
				continue
			}
			if sentinel {
				drainRemaining(mgr.q, write)
				return
			}
			write(rec)
		}
	}
}

// drainRemaining flushes whatever is already buffered in the queue
// without blocking further, used at shutdown.
func drainRemaining(q *queue.Queue[Record], write func(Record)) {
	for {
		rec, sentinel, ok := q.Pop()
		if !ok || sentinel {
			return
		}
		write(rec)
	}
}
