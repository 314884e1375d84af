package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/observ"
	"ember/internal/source"
)

type globalOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	pathMode       diagfmt.PathMode
}

func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, cmd.ErrOrStderr())
	if err != nil {
		return globalOptions{}, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return globalOptions{}, fmt.Errorf("--max-diagnostics must not be negative")
	}
	diagFormat, err := flags.GetString("diag-format")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	diagFormat = strings.ToLower(strings.TrimSpace(diagFormat))
	switch diagFormat {
	case "pretty", "short", "json":
	default:
		return globalOptions{}, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", diagFormat)
	}
	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return globalOptions{}, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathModeStr)
	}
	return globalOptions{
		color:          useColor,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		diagFormat:     diagFormat,
		pathMode:       pathMode,
	}, nil
}

// resolveColor maps --color to a decision; auto colours terminals only.
func resolveColor(value string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

func (g globalOptions) newTimer() *observ.Timer {
	if !g.timings {
		return nil
	}
	return observ.NewTimer()
}

// reportDiagnostics prints the bag to w in the --diag-format layout and
// turns errors into errReported.
func (g globalOptions) reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	switch g.diagFormat {
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{PathMode: g.pathMode, IncludeNotes: true}); err != nil {
			return err
		}
	case "short":
		fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, true))
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: g.color, PathMode: g.pathMode, ShowNotes: true, Context: 1})
	}
	if bag.HasErrors() {
		return errReported
	}
	return nil
}

func (g globalOptions) printTimings(w io.Writer, t *observ.Timer) {
	if t == nil {
		return
	}
	fmt.Fprint(w, t.Summary())
}
