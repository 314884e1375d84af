package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ember/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new ember project",
		Long: `Initialize a new ember project by creating a project manifest (ember.toml)
and an entry script (main.em). Without an argument the current directory is
used; a name that does not exist yet becomes a new directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	g, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	created, err := project.Scaffold(target)
	if err != nil {
		return err
	}
	if g.quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	for _, path := range created {
		if rel, relErr := filepath.Rel(wd, path); relErr == nil {
			path = rel
		}
		fmt.Fprintf(out, "created %s\n", filepath.ToSlash(path))
	}
	fmt.Fprintln(out, "next: ember run")
	return nil
}
