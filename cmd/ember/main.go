package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/version"
)

// errReported means the failure was already printed as diagnostics.
var errReported = errors.New("errors reported")

// newRootCmd builds the command tree. The returned finish flushes tracing
// and must run after Execute, whether it failed or not. Tests build a fresh
// tree per case.
func newRootCmd() (*cobra.Command, func()) {
	var cleanups []func()
	root := &cobra.Command{
		Use:           "ember",
		Short:         "Ember scripting language toolchain",
		Long:          `Ember lexes, parses and interprets small scripts of assignments, calls and if statements`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProfiling)
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTracing)
			return nil
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	flags.String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	flags.String("trace", "", "write trace events to a file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 1024, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0*time.Second, "heartbeat interval for long runs (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newRunCmd(),
		newReplCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	finish := func() {
		// в обратном порядке: сначала трассировка, потом профили
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "ember:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
