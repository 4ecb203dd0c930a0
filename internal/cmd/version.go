package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// skips config loading
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "parallel-recolor %s\n", a.info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", a.info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", a.info.GitCommit)
			return nil
		},
	}
}
