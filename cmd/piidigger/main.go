package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

const (
	exitOK            = 0
	exitInvalidConfig = 2
	exitUnknown       = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := &scanOptions{}

	root := &cobra.Command{
		Use:     "piidigger",
		Short:   "Scan a filesystem for files that may contain PII",
		Version: version + " (" + commit + ")",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runScan(opts)
		},
	}

	root.Flags().StringVarP(&opts.confFile, "conf-file", "f", "piidigger.toml", "path to the TOML configuration file")
	root.Flags().BoolVarP(&opts.defaultConf, "default-conf", "d", false, "use the built-in default configuration")
	root.Flags().StringVarP(&opts.createConf, "create-conf", "c", "", "write the default configuration to PATH and exit")
	root.Flags().IntVarP(&opts.maxProcess, "max-process", "p", 0, "override the dispatcher pool size (capped at CPU count)")
	root.Flags().BoolVar(&opts.cpuCount, "cpu-count", false, "print the detected CPU count and exit")
	root.Flags().BoolVar(&opts.listDataHandlers, "list-datahandlers", false, "print known detector names and exit")
	root.Flags().BoolVar(&opts.listFileTypes, "list-filetypes", false, "print known extensions and MIME types and exit")
	root.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress status line")

	exitCode := exitOK
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		exitCode = exitCodeFor(err)
	}
	return exitCode
}

func exitCodeFor(err error) int {
	if _, ok := err.(*invalidConfigError); ok {
		return exitInvalidConfig
	}
	return exitUnknown
}

// invalidConfigError marks an error that should map to exitInvalidConfig
// (spec.md §6: TOML parse error or non-existent start dir -> exit 2).
type invalidConfigError struct{ err error }

func (e *invalidConfigError) Error() string { return e.err.Error() }
func (e *invalidConfigError) Unwrap() error { return e.err }
