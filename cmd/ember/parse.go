package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.em",
		Short: "Parse an ember source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := driver.Options{MaxDiagnostics: g.maxDiagnostics, Timer: g.newTimer()}
	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	defer g.printTimings(cmd.ErrOrStderr(), opts.Timer)
	if err := g.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		dumpRing(cmd)
		return err
	}

	if format == "json" {
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Stmts)
	}
	return diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Stmts)
}
