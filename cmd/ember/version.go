package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/version"
)

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show ember build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			full, err := cmd.Flags().GetBool("full")
			if err != nil {
				return fmt.Errorf("failed to get full flag: %w", err)
			}
			info := version.Current()
			if !full {
				info.GitCommit, info.BuildDate = "", ""
			}

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versionPayload{Tool: "ember", Info: info})
			case "pretty":
				g, err := readGlobalOptions(cmd)
				if err != nil {
					return err
				}
				renderVersionPretty(cmd.OutOrStdout(), info, g.color)
				return nil
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("full", false, "include commit and build date")
	return cmd
}

func renderVersionPretty(w io.Writer, info version.Info, useColor bool) {
	fmt.Fprintf(w, "ember %s\n", version.Colorize(info.Version, useColor))
	if info.GitCommit != "" {
		fmt.Fprintf(w, "  commit: %s\n", info.GitCommit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(w, "  built:  %s\n", info.BuildDate)
	}
}
