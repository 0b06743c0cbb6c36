package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cukereport version %s\n", Version)
			if verbose {
				fmt.Fprintf(out, "  git commit: %s\n", GitCommit)
				fmt.Fprintf(out, "  build date: %s\n", BuildDate)
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include commit and build date")
	return cmd
}
