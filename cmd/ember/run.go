package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/driver"
	"ember/internal/project"
	"ember/internal/source"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.em|dir|-]",
		Short: "Run an ember script, a directory of scripts or stdin",
		Long: `Run executes a script. A directory runs every *.em file below it
concurrently, "-" reads the script from stdin. Without an argument the
[run].main entry of the nearest ember.toml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
	cmd.Flags().Bool("eager-logic", false, "evaluate both operands of && and ||")
	cmd.Flags().Int("jobs", 0, "max scripts run in parallel for directories (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Out:            cmd.OutOrStdout(),
		Timer:          g.newTimer(),
	}
	errOut := cmd.ErrOrStderr()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, found, err := project.Load(wd)
	if err != nil {
		return reportError(g, errOut, err)
	}

	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	if found {
		opts.Vars = manifest.Config.Vars
		opts.EagerLogic = manifest.Config.Run.EagerLogic
		opts.Jobs = manifest.Config.Run.Jobs
		if target == "" {
			if target, _, err = manifest.MainPath(); err != nil {
				return reportError(g, errOut, err)
			}
		}
	} else if target == "" {
		return fmt.Errorf("no %s found; pass a script or run 'ember init'", project.ManifestName)
	}

	if cmd.Flags().Changed("eager-logic") {
		if opts.EagerLogic, err = cmd.Flags().GetBool("eager-logic"); err != nil {
			return fmt.Errorf("failed to get eager-logic flag: %w", err)
		}
	}
	if cmd.Flags().Changed("jobs") {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if opts.Jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
	}
	defer g.printTimings(errOut, opts.Timer)

	if target == "-" {
		src, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res := driver.RunSource(cmd.Context(), "<stdin>", string(src), opts)
		return finishRun(cmd, g, res.Bag, res.FileSet)
	}

	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		return runDirectory(cmd, g, target, mode, opts)
	}

	res, err := driver.Run(cmd.Context(), target, opts)
	if err != nil {
		return reportError(g, errOut, err)
	}
	return finishRun(cmd, g, res.Bag, res.FileSet)
}

func finishRun(cmd *cobra.Command, g globalOptions, bag *diag.Bag, fs *source.FileSet) error {
	if err := g.reportDiagnostics(cmd.ErrOrStderr(), bag, fs); err != nil {
		dumpRing(cmd)
		return err
	}
	return nil
}

// reportError prints a failure that happened before any source was read.
func reportError(g globalOptions, w io.Writer, err error) error {
	bag := diag.NewBag(g.maxDiagnostics)
	bag.Add(diag.FromError(err))
	return g.reportDiagnostics(w, bag, source.NewFileSet())
}

func runDirectory(cmd *cobra.Command, g globalOptions, dir string, mode uiMode, opts driver.Options) error {
	dir = filepath.Clean(dir)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var (
		fileSet *source.FileSet
		results []driver.FileResult
		err     error
	)
	if !g.quiet && shouldUseTUI(mode, out) {
		files, listErr := driver.ListScripts(dir)
		if listErr != nil {
			return reportError(g, errOut, listErr)
		}
		fileSet, results, err = runDirWithUI(cmd.Context(), out, dir, files, opts)
	} else {
		fileSet, results, err = driver.RunDir(cmd.Context(), dir, opts)
	}
	if len(results) == 0 && err == nil {
		if !g.quiet {
			fmt.Fprintf(errOut, "no %s scripts in %s\n", project.ScriptExt, dir)
		}
		return nil
	}

	all := diag.NewBag(g.maxDiagnostics)
	ran := 0
	for _, r := range results {
		if !r.Ran() {
			continue
		}
		ran++
		if !g.quiet {
			fmt.Fprintf(out, "==> %s <==\n", r.Path)
		}
		fmt.Fprint(out, r.Output)
		all.Merge(r.Bag)
	}
	// ошибки считаем ниже через driver.Failed
	_ = g.reportDiagnostics(errOut, all, fileSet)
	if err != nil {
		// прерванный прогон: печатаем то, что успело отработать
		return reportError(g, errOut, err)
	}

	failed := driver.Failed(results)
	if !g.quiet {
		fmt.Fprintf(errOut, "%d scripts, %d failed\n", ran, failed)
	}
	if failed > 0 {
		dumpRing(cmd)
		return errReported
	}
	return nil
}
