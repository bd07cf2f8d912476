package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comrob/build123things/pkg/partlib"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list buildable part families and assemblies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "part families:")
			for _, name := range a.registry.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "assemblies:")
			for _, name := range partlib.AssemblyNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}
