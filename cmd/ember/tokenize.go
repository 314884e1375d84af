package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.em",
		Short: "Tokenize an ember source file",
		Long:  `Tokenize breaks an ember source file into its tokens and prints them`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("trivia", false, "keep whitespace tokens")
	cmd.Flags().Bool("cache", false, "reuse tokens from the on-disk token cache")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	opts := driver.Options{MaxDiagnostics: g.maxDiagnostics, KeepWhitespace: trivia, Timer: g.newTimer()}
	if useCache {
		if opts.Cache, err = driver.OpenTokenCache("ember"); err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	defer g.printTimings(cmd.ErrOrStderr(), opts.Timer)
	if err := g.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Cached && !g.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "tokens loaded from cache")
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
